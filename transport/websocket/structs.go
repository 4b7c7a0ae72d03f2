package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameJoin  = "game:join"
	actionGameTurn  = "game:turn"
	actionGameLeave = "game:leave"
	actionError     = "error"
)

const (
	gameStatusLeave       = "leave"
	gameStatusOpponentOut = "opponent_out"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Move   *uttt.Move     `json:"move,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// maskGame returns a copy of game without the session ids of its players.
func maskGame(game *entity.Game) *entity.Game {
	masked := *game
	masked.Players = nil
	return &masked
}
