package entity

import (
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

const botIDPrefix = "bot:"

type Player struct {
	ID     string      `json:"id"`
	Mark   uttt.Player `json:"mark,omitempty"`
	GameID string      `json:"game_id,omitempty"`
}

// NewBotPlayer seats a bot in gameID.
func NewBotPlayer(gameID string, mark uttt.Player) *Player {
	return &Player{
		ID:     botIDPrefix + gameID,
		Mark:   mark,
		GameID: gameID,
	}
}

func (that *Player) IsBot() bool {
	return strings.HasPrefix(that.ID, botIDPrefix)
}

// Leave detaches the player from its game.
func (that *Player) Leave() {
	that.GameID = ""
	that.Mark = 0
}
