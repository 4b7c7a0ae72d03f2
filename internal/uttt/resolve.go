package uttt

// Lines are scanned rows first, then columns, then diagonals.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Resolve classifies a 3x3 grid.
//
// The first fully owned line decides the winner. Without a winner the grid is a
// stalemate only when no line can still be completed by either player; a line can
// still be completed by P when every marked cell in it is P's and one cell is empty.
func Resolve(grid [BoardSize]Mark) Outcome {
	for _, line := range Lines {
		a, b, c := grid[line[0]], grid[line[1]], grid[line[2]]
		if a != Empty && a == b && b == c {
			return WonBy(Player(a))
		}
	}

	for _, line := range Lines {
		if lineOpen(grid, line) {
			return Outcome{Result: Undecided}
		}
	}

	return Outcome{Result: Stalemate}
}

// lineOpen reports whether some player can still complete line.
func lineOpen(grid [BoardSize]Mark, line [3]int) bool {
	owner := Empty
	hasEmpty := false

	for _, idx := range line {
		switch cell := grid[idx]; {
		case cell == Empty:
			hasEmpty = true
		case owner == Empty:
			owner = cell
		case owner != cell:
			return false
		}
	}

	return hasEmpty
}

// metaGrid maps local statuses onto marks. Undecided and stalemated boards count as empty.
func metaGrid(boards [BoardSize]LocalBoard) [BoardSize]Mark {
	var grid [BoardSize]Mark
	for i, board := range boards {
		if board.Status.Result == Won {
			grid[i] = board.Status.Winner.Mark()
		}
	}
	return grid
}
