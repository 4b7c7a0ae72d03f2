package uttt

import (
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
)

// Agent chooses a move from a read-only view of the game.
//
// The returned move must be one of LegalMoves for the equivalent state. Callers still
// pass it through ApplyMove and treat a rejection as a bug in the agent.
type Agent interface {
	SelectMove(boards [BoardSize][BoardSize]Mark, statuses [BoardSize]LocalStatus, playable BoardSet) (Move, error)
}

// View splits a state into the arguments an Agent receives.
func View(state State) ([BoardSize][BoardSize]Mark, [BoardSize]LocalStatus, BoardSet) {
	var (
		boards   [BoardSize][BoardSize]Mark
		statuses [BoardSize]LocalStatus
	)

	for i, board := range state.Boards {
		boards[i] = board.Cells
		statuses[i] = board.Status
	}

	return boards, statuses, state.Playable
}

func candidateMoves(boards [BoardSize][BoardSize]Mark, statuses [BoardSize]LocalStatus, playable BoardSet) []Move {
	moves := make([]Move, 0, playable.Len()*BoardSize)

	for _, b := range playable.Indices() {
		if statuses[b].Decided() {
			continue
		}

		for c, mark := range boards[b] {
			if mark == Empty {
				moves = append(moves, Move{Board: b, Cell: c})
			}
		}
	}

	return moves
}

// RandomAgent picks uniformly among the legal moves. It is safe for concurrent use.
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{
		rng: rand.New(rand.NewSource(seed)), //nolint: gosec // move choice, not security
	}
}

func (that *RandomAgent) SelectMove(boards [BoardSize][BoardSize]Mark, statuses [BoardSize]LocalStatus, playable BoardSet) (Move, error) {
	moves := candidateMoves(boards, statuses, playable)
	if len(moves) == 0 {
		return Move{}, apperror.ErrNoAvailableMoves
	}

	that.mu.Lock()
	idx := that.rng.Intn(len(moves))
	that.mu.Unlock()

	return moves[idx], nil
}
