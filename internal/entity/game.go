package entity

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerTie = "-"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

// Game is a match hosted by the server: the rules state plus who plays it.
type Game struct {
	ID      string      `json:"id"`
	State   uttt.State  `json:"state"`
	History []uttt.Move `json:"history,omitempty"`
	Status  string      `json:"status"`
	Players []*Player   `json:"players,omitempty"`
	Type    string      `json:"type,omitempty"`
}

func NewGame(id, gameType string, opening int) (*Game, error) {
	state, err := uttt.NewState(opening)
	if err != nil {
		return nil, fmt.Errorf("failed to create game state: %w", err)
	}

	return &Game{
		ID:     id,
		State:  state,
		Status: StatusWaiting,
		Type:   gameType,
	}, nil
}

// Winner returns "X", "O", PlayerTie for a stalemate, or "" while the game goes on.
func (that *Game) Winner() string {
	switch that.State.Status.Result {
	case uttt.Won:
		return that.State.Status.Winner.String()
	case uttt.Stalemate:
		return PlayerTie
	default:
		return ""
	}
}

// Turn returns the mark expected to move next, or 0 once the game is over.
func (that *Game) Turn() uttt.Player {
	if that.State.IsOver() {
		return 0
	}
	return that.State.Turn
}

func (that *Game) UpdateGameState() {
	if that.State.IsOver() {
		that.Status = StatusFinished
		return
	}

	that.Status = StatusOngoing
}

func (that *Game) MakeTurn(playerMark uttt.Player, move uttt.Move) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.State.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	next, err := uttt.ApplyMove(that.State, move)
	if err != nil {
		return fmt.Errorf("move %s rejected: %w", move, err)
	}

	that.State = next
	that.History = append(that.History, move)

	that.UpdateGameState()

	return nil
}

// LegalMoves returns the moves open to the player whose turn it is.
func (that *Game) LegalMoves() []uttt.Move {
	if !that.IsOngoing() {
		return []uttt.Move{}
	}
	return uttt.LegalMoves(that.State)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameOver
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) GetRandomMarks() (uttt.Player, uttt.Player) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return uttt.First, uttt.Second
	}
	return uttt.Second, uttt.First
}

// PlayerByID returns the seated player with id, or nil.
func (that *Game) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

// Bot returns the bot seated in the game, or nil.
func (that *Game) Bot() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}
