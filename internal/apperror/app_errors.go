package apperror

import "errors"

// rules engine.
var (
	ErrGameOver     = errors.New("game is already over")
	ErrIllegalBoard = errors.New("board is not playable")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")
)

var (
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrGameFull          = errors.New("game already has two players")
	ErrGameNotFound      = errors.New("game not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerNotInGame   = errors.New("player is not in this game")
	ErrAlreadyInGame     = errors.New("player is already in another game")
	ErrNoActiveGames     = errors.New("no active games")
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrAgentIllegalMove  = errors.New("agent returned an illegal move")
	ErrUnknownGameStatus = errors.New("unknown game status")
)
