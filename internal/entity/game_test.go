package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

func newOngoingGame(t *testing.T, opening int) *Game {
	t.Helper()

	game, err := NewGame("123", PrivateType, opening)
	require.NoError(t, err)
	game.Status = StatusOngoing

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Creates a waiting game", func(t *testing.T) {
		// When: creating a game opening in board 4
		game, err := NewGame("123", PublicType, 4)
		require.NoError(t, err)

		// Then: it waits for players and First moves in board 4
		assert.Equal(t, "123", game.ID)
		assert.Equal(t, StatusWaiting, game.Status)
		assert.Equal(t, PublicType, game.Type)
		assert.Equal(t, uttt.First, game.Turn())
		assert.Equal(t, uttt.NewBoardSet(4), game.State.Playable)
		assert.Empty(t, game.History)
	})

	t.Run("Rejects an invalid opening board", func(t *testing.T) {
		// When: the opening board is out of range
		game, err := NewGame("123", PublicType, 10)

		// Then: ErrIllegalBoard is returned
		require.ErrorIs(t, err, apperror.ErrIllegalBoard)
		assert.Nil(t, game)
	})
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should return true
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		// Given: a game with StatusOngoing
		game := &Game{Status: StatusOngoing}

		// Then: it should return true
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		// Given: a game with StatusWaiting
		game := &Game{Status: StatusWaiting}

		// Then: it should return true
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameOver when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameOver)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.ErrorIs(t, err, apperror.ErrUnknownGameStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful turn", func(t *testing.T) {
		// Given: an ongoing game opening in board 4
		game := newOngoingGame(t, 4)

		// When: X plays cell 0 of board 4
		err := game.MakeTurn(uttt.First, uttt.Move{Board: 4, Cell: 0})
		require.NoError(t, err)

		// Then: the move is recorded and O must play in board 0
		assert.Equal(t, uttt.X, game.State.Boards[4].Cells[0])
		assert.Equal(t, uttt.Second, game.Turn())
		assert.Equal(t, uttt.NewBoardSet(0), game.State.Playable)
		assert.Equal(t, []uttt.Move{{Board: 4, Cell: 0}}, game.History)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, "", game.Winner())
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: an ongoing game where X is to move
		game := newOngoingGame(t, 4)
		before := *game

		// When: O tries to move
		err := game.MakeTurn(uttt.Second, uttt.Move{Board: 4, Cell: 1})

		// Then: ErrNotYourTurn is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, *game)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X took the center of the center board
		game := newOngoingGame(t, 4)
		require.NoError(t, game.MakeTurn(uttt.First, uttt.Move{Board: 4, Cell: 4}))
		state := game.State

		// When: O plays the same cell
		err := game.MakeTurn(uttt.Second, uttt.Move{Board: 4, Cell: 4})

		// Then: ErrCellOccupied is returned and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, state, game.State)
		assert.Len(t, game.History, 1)
	})

	t.Run("Error on board that is not playable", func(t *testing.T) {
		// Given: an ongoing game opening in board 4
		game := newOngoingGame(t, 4)

		// When: X plays in board 0
		err := game.MakeTurn(uttt.First, uttt.Move{Board: 0, Cell: 0})

		// Then: ErrIllegalBoard is returned
		assert.ErrorIs(t, err, apperror.ErrIllegalBoard)
	})

	t.Run("Error when game has not started", func(t *testing.T) {
		// Given: a waiting game
		game, err := NewGame("123", PrivateType, 4)
		require.NoError(t, err)

		// When: X tries to move
		err = game.MakeTurn(uttt.First, uttt.Move{Board: 4, Cell: 0})

		// Then: ErrGameIsNotStarted is returned
		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: X owns boards 0 and 1 and two cells of board 2's top row
		game := newOngoingGame(t, 2)
		game.State.Boards[0].Status = uttt.WonBy(uttt.First)
		game.State.Boards[1].Status = uttt.WonBy(uttt.First)
		game.State.Boards[2].Cells[0] = uttt.X
		game.State.Boards[2].Cells[1] = uttt.X

		// When: X completes board 2
		err := game.MakeTurn(uttt.First, uttt.Move{Board: 2, Cell: 2})
		require.NoError(t, err)

		// Then: the game is finished with X as the winner
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, "X", game.Winner())
		assert.Equal(t, uttt.Player(0), game.Turn())
		assert.Empty(t, game.LegalMoves())

		// Then: further moves are rejected
		err = game.MakeTurn(uttt.Second, uttt.Move{Board: 2, Cell: 3})
		assert.ErrorIs(t, err, apperror.ErrGameOver)
	})
}

func TestGame_Winner(t *testing.T) {
	t.Run("Stalemate is reported as a tie", func(t *testing.T) {
		game := &Game{State: uttt.State{Status: uttt.Outcome{Result: uttt.Stalemate}}}

		assert.Equal(t, PlayerTie, game.Winner())
	})

	t.Run("Second player wins", func(t *testing.T) {
		game := &Game{State: uttt.State{Status: uttt.WonBy(uttt.Second)}}

		assert.Equal(t, "O", game.Winner())
	})
}

func TestGame_Players(t *testing.T) {
	// Given: a game with a human and a bot
	human := &Player{ID: "p1", Mark: uttt.First, GameID: "123"}
	bot := NewBotPlayer("123", uttt.Second)
	game := &Game{ID: "123", Players: []*Player{human, bot}}

	// Then: players are found by id and the bot is recognised
	assert.Same(t, human, game.PlayerByID("p1"))
	assert.Nil(t, game.PlayerByID("nobody"))
	assert.Same(t, bot, game.Bot())
	assert.True(t, bot.IsBot())
	assert.False(t, human.IsBot())

	// When: the human leaves
	human.Leave()

	// Then: it is detached from the game
	assert.Empty(t, human.GameID)
	assert.Equal(t, uttt.Player(0), human.Mark)
}
