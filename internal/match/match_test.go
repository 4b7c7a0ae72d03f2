package match

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

var testLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

// fixedAgent always plays the same move.
type fixedAgent struct {
	move uttt.Move
	err  error
}

func (that fixedAgent) SelectMove(_ [uttt.BoardSize][uttt.BoardSize]uttt.Mark, _ [uttt.BoardSize]uttt.LocalStatus, _ uttt.BoardSet) (uttt.Move, error) {
	return that.move, that.err
}

func TestRun_PlaysToTheEnd(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		// Given: two random agents and a fresh game
		state, err := uttt.NewState(int(seed % uttt.BoardSize))
		require.NoError(t, err)

		agents := [2]uttt.Agent{uttt.NewRandomAgent(seed), uttt.NewRandomAgent(seed + 100)}

		// When: the match is run
		result, err := Run(context.Background(), state, agents, testLogger)

		// Then: it ends, and replaying the moves gives the same state
		require.NoError(t, err)
		require.True(t, result.State.IsOver())
		assert.LessOrEqual(t, len(result.Moves), uttt.BoardSize*uttt.BoardSize)

		replay := state
		for _, move := range result.Moves {
			replay, err = uttt.ApplyMove(replay, move)
			require.NoError(t, err)
		}
		assert.Equal(t, result.State, replay)
	}
}

func TestRun_RejectsIllegalAgentMove(t *testing.T) {
	// Given: X plays outside the opening board
	state, err := uttt.NewState(4)
	require.NoError(t, err)

	agents := [2]uttt.Agent{fixedAgent{move: uttt.Move{Board: 0, Cell: 0}}, uttt.NewRandomAgent(1)}

	// When: the match is run
	result, err := Run(context.Background(), state, agents, testLogger)

	// Then: the match stops before the move with an agent error
	require.ErrorIs(t, err, apperror.ErrAgentIllegalMove)
	require.ErrorIs(t, err, apperror.ErrIllegalBoard)
	assert.Empty(t, result.Moves)
	assert.Equal(t, state, result.State)
}

func TestRun_AgentFailure(t *testing.T) {
	// Given: O gives up on its first move
	errResign := errors.New("resign")

	state, err := uttt.NewState(4)
	require.NoError(t, err)

	agents := [2]uttt.Agent{uttt.NewRandomAgent(1), fixedAgent{err: errResign}}

	// When: the match is run
	result, err := Run(context.Background(), state, agents, testLogger)

	// Then: X's move is kept and the agent error is returned
	require.ErrorIs(t, err, errResign)
	assert.Len(t, result.Moves, 1)
}

func TestRun_Cancelled(t *testing.T) {
	// Given: a cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := uttt.NewState(4)
	require.NoError(t, err)

	agents := [2]uttt.Agent{uttt.NewRandomAgent(1), uttt.NewRandomAgent(2)}

	// When: the match is run
	result, err := Run(ctx, state, agents, testLogger)

	// Then: no move is played
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Moves)
}

func TestTally(t *testing.T) {
	// Given: an empty tally
	var tally Tally

	// When: three outcomes are added
	tally.Add(uttt.WonBy(uttt.First))
	tally.Add(uttt.WonBy(uttt.Second))
	tally.Add(uttt.Outcome{Result: uttt.Stalemate})

	// Then: each is counted once
	assert.Equal(t, Tally{Games: 3, XWins: 1, OWins: 1, Stalemates: 1}, tally)
	assert.Equal(t, "games=3 X=1 O=1 stalemate=1", tally.String())
}
