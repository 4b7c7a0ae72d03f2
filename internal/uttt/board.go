// Package uttt is the Ultimate Tic-Tac-Toe rules engine.
//
// Boards and cells are numbered 0-8 in row-major order over a 3x3 layout:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The same numbering names a local board inside the global board and a cell inside
// a local board. All functions are pure: they take a State value and return a new one.
package uttt

import (
	"fmt"
)

// BoardSize is the number of cells in a local board and of local boards in the global board.
const BoardSize = 9

// Player is one of the two sides. First always moves first.
type Player uint8

const (
	First Player = iota + 1
	Second
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == First {
		return Second
	}
	return First
}

// Mark returns the cell content placed by p.
func (p Player) Mark() Mark {
	return Mark(p)
}

func (p Player) String() string {
	return Mark(p).String()
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	var m Mark
	if err := m.UnmarshalText(text); err != nil {
		return err
	}

	*p = Player(m)

	return nil
}

// Mark is the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*m = Empty
	case "X":
		*m = X
	case "O":
		*m = O
	default:
		return fmt.Errorf("unknown mark %q", text)
	}

	return nil
}

// Result is the resolution of a 3x3 grid.
type Result uint8

const (
	Undecided Result = iota
	Won
	Stalemate
)

// InProgress is Undecided seen from the global board.
const InProgress = Undecided

func (r Result) String() string {
	switch r {
	case Won:
		return "won"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ongoing", "":
		*r = Undecided
	case "won":
		*r = Won
	case "stalemate":
		*r = Stalemate
	default:
		return fmt.Errorf("unknown result %q", text)
	}

	return nil
}

// Outcome is a Result plus the winner when the Result is Won.
type Outcome struct {
	Result Result `json:"result"`
	Winner Player `json:"winner,omitempty"`
}

// LocalStatus is the Outcome of a local board.
type LocalStatus = Outcome

// GameStatus is the Outcome of the meta-board.
type GameStatus = Outcome

// WonBy returns the Outcome of a grid won by p.
func WonBy(p Player) Outcome {
	return Outcome{Result: Won, Winner: p}
}

// Decided reports whether the grid can no longer change.
func (o Outcome) Decided() bool {
	return o.Result != Undecided
}

func (o Outcome) String() string {
	if o.Result == Won {
		return "won by " + o.Winner.String()
	}
	return o.Result.String()
}

// LocalBoard is one of the nine 3x3 sub-grids.
type LocalBoard struct {
	Cells  [BoardSize]Mark `json:"cells"`
	Status LocalStatus     `json:"status"`
}

// Move is a proposed placement.
type Move struct {
	Board int `json:"board"`
	Cell  int `json:"cell"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Board, m.Cell)
}
