package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	agent uttt.Agent
}

// NewBotService - plays the bot seat of a game with agent.
func NewBotService(agent uttt.Agent) BotService {
	return &botService{
		agent: agent,
	}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	botPlayer := game.Bot()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	move, err := that.agent.SelectMove(uttt.View(game.State))
	if err != nil {
		return fmt.Errorf("bot failed to select move: %w", err)
	}

	if err = game.MakeTurn(botPlayer.Mark, move); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrAgentIllegalMove, err)
	}

	return nil
}
