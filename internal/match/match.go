// Package match plays complete games between two agents.
package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

// Result is a finished (or interrupted) game.
type Result struct {
	State uttt.State
	Moves []uttt.Move
}

// Run plays state to the end. agents[0] plays X, agents[1] plays O.
// Every agent move goes through ApplyMove; a rejected move aborts the match.
// The context is checked between moves, so an agent that never returns is not interrupted.
func Run(ctx context.Context, state uttt.State, agents [2]uttt.Agent, logger *slog.Logger) (Result, error) {
	log := logger.With("method", "match.Run")

	result := Result{State: state}

	for !result.State.IsOver() {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("match interrupted after %d moves: %w", len(result.Moves), err)
		}

		player := result.State.Turn

		move, err := agents[player-1].SelectMove(uttt.View(result.State))
		if err != nil {
			return result, fmt.Errorf("player %s failed to select a move: %w", player, err)
		}

		next, err := uttt.ApplyMove(result.State, move)
		if err != nil {
			return result, fmt.Errorf("%w: player %s played %s: %w", apperror.ErrAgentIllegalMove, player, move, err)
		}

		log.Debug("move played", "player", player.String(), "move", move.String())

		result.State = next
		result.Moves = append(result.Moves, move)
	}

	log.Debug("match finished", "result", result.State.Status.String(), "moves", len(result.Moves))

	return result, nil
}

// Tally counts outcomes over many matches.
type Tally struct {
	Games      int
	XWins      int
	OWins      int
	Stalemates int
}

func (that *Tally) Add(status uttt.GameStatus) {
	that.Games++

	switch {
	case status == uttt.WonBy(uttt.First):
		that.XWins++
	case status == uttt.WonBy(uttt.Second):
		that.OWins++
	case status.Result == uttt.Stalemate:
		that.Stalemates++
	}
}

func (that Tally) String() string {
	return fmt.Sprintf("games=%d X=%d O=%d stalemate=%d", that.Games, that.XWins, that.OWins, that.Stalemates)
}
