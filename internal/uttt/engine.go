package uttt

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
)

// State is the whole game. It is a value: a copy is an independent snapshot.
type State struct {
	Boards   [BoardSize]LocalBoard `json:"boards"`
	Turn     Player                `json:"turn"`
	Playable BoardSet              `json:"playable"`
	Status   GameStatus            `json:"status"`
}

// NewState returns a fresh game whose first move must be played in board opening.
func NewState(opening int) (State, error) {
	if opening < 0 || opening >= BoardSize {
		return State{}, fmt.Errorf("%w: opening board %d", apperror.ErrIllegalBoard, opening)
	}

	return State{
		Turn:     First,
		Playable: NewBoardSet(opening),
	}, nil
}

// IsOver reports whether the game has left InProgress.
func (s State) IsOver() bool {
	return s.Status.Decided()
}

// LegalMoves returns every legal move in ascending (board, cell) order.
func LegalMoves(state State) []Move {
	if state.IsOver() {
		return []Move{}
	}

	return candidateMoves(View(state))
}

// ValidateMove returns the error ApplyMove would fail with, or nil.
func ValidateMove(state State, move Move) error {
	if state.IsOver() {
		return apperror.ErrGameOver
	}

	if !state.Playable.Has(move.Board) {
		return fmt.Errorf("%w: board %d", apperror.ErrIllegalBoard, move.Board)
	}

	if move.Cell < 0 || move.Cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, move.Cell)
	}

	if state.Boards[move.Board].Cells[move.Cell] != Empty {
		return fmt.Errorf("%w: board %d cell %d", apperror.ErrCellOccupied, move.Board, move.Cell)
	}

	return nil
}

// ApplyMove places the current player's mark and recomputes all derived state.
// On error the returned state is the input state.
func ApplyMove(state State, move Move) (State, error) {
	if err := ValidateMove(state, move); err != nil {
		return state, err
	}

	next := state

	local := &next.Boards[move.Board]
	local.Cells[move.Cell] = next.Turn.Mark()
	local.Status = Resolve(local.Cells)

	next.Playable = nextPlayable(next.Boards, move.Cell)
	next.Status = Resolve(metaGrid(next.Boards))

	// nowhere left to play
	if !next.Status.Decided() && next.Playable.Empty() {
		next.Status = Outcome{Result: Stalemate}
	}

	if next.Status.Decided() {
		next.Playable = 0
		return next, nil
	}

	next.Turn = next.Turn.Opponent()

	return next, nil
}

// nextPlayable applies the cascade rule: the cell just played names the opponent's board,
// unless that board is resolved, in which case every undecided board is open.
func nextPlayable(boards [BoardSize]LocalBoard, target int) BoardSet {
	if !boards[target].Status.Decided() {
		return NewBoardSet(target)
	}

	var open BoardSet
	for i, board := range boards {
		if !board.Status.Decided() {
			open = open.With(i)
		}
	}

	return open
}
