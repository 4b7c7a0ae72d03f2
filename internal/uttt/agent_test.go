package uttt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
)

func TestView(t *testing.T) {
	// Given: a game where board 3 is won and board 0 has a mark
	state := State{Turn: Second, Playable: NewBoardSet(0, 5)}
	state.Boards[0].Cells[4] = X
	state.Boards[3] = wonBoard(First)

	// When: taking the agent view
	boards, statuses, playable := View(state)

	// Then: it mirrors the state
	assert.Equal(t, X, boards[0][4])
	assert.Equal(t, wonByXCells, boards[3])
	assert.Equal(t, WonBy(First), statuses[3])
	assert.Equal(t, NewBoardSet(0, 5), playable)

	// Then: changing the view does not reach the state
	boards[0][0] = O
	assert.Equal(t, Empty, state.Boards[0].Cells[0])
}

func TestRandomAgent_SelectMove(t *testing.T) {
	t.Run("Returns only legal moves", func(t *testing.T) {
		// Given: a game where only board 2 cells 5 and 7 are free
		state := State{Turn: First, Playable: NewBoardSet(2)}
		state.Boards[2].Cells = [9]Mark{x, o, x, o, x, e, o, e, o}
		agent := NewRandomAgent(1)

		for i := 0; i < 50; i++ {
			// When: asking the agent for a move
			move, err := agent.SelectMove(View(state))
			require.NoError(t, err)

			// Then: the move is one of the two free cells
			assert.Contains(t, []Move{{Board: 2, Cell: 5}, {Board: 2, Cell: 7}}, move)
			assert.NoError(t, ValidateMove(state, move))
		}
	})

	t.Run("Covers every legal move", func(t *testing.T) {
		// Given: a fresh game opening in board 0
		state, err := NewState(0)
		require.NoError(t, err)
		agent := NewRandomAgent(42)

		// When: sampling many moves
		seen := make(map[Move]bool)
		for i := 0; i < 500; i++ {
			move, err := agent.SelectMove(View(state))
			require.NoError(t, err)
			seen[move] = true
		}

		// Then: every cell of board 0 was chosen at least once
		assert.Len(t, seen, 9)
	})

	t.Run("Same seed gives the same moves", func(t *testing.T) {
		// Given: two agents with the same seed
		state, err := NewState(0)
		require.NoError(t, err)
		a, b := NewRandomAgent(99), NewRandomAgent(99)

		for i := 0; i < 20; i++ {
			// When: both pick a move
			moveA, errA := a.SelectMove(View(state))
			moveB, errB := b.SelectMove(View(state))

			// Then: the picks match
			require.NoError(t, errA)
			require.NoError(t, errB)
			require.Equal(t, moveA, moveB)
		}
	})

	t.Run("Skips decided boards in the playable set", func(t *testing.T) {
		// Given: a view that lists a won board as playable
		var (
			boards   [9][9]Mark
			statuses [9]LocalStatus
		)
		boards[1] = wonByXCells
		statuses[1] = WonBy(First)
		agent := NewRandomAgent(3)

		// When: the only playable board is decided
		_, err := agent.SelectMove(boards, statuses, NewBoardSet(1))

		// Then: ErrNoAvailableMoves is returned
		assert.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})

	t.Run("No playable board", func(t *testing.T) {
		// Given: a game that is over
		state := State{Status: WonBy(First)}
		agent := NewRandomAgent(3)

		// When: asking for a move
		_, err := agent.SelectMove(View(state))

		// Then: ErrNoAvailableMoves is returned
		assert.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}
