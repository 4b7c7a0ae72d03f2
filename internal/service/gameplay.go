package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

const maxPlayers = 2

type GamePlayService interface {
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error)

	CurrentGame(ctx context.Context, player *entity.Player) (*entity.Game, error)
	GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)

	MakeTurn(ctx context.Context, playerID string, move uttt.Move) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger
	locks  *gameLocks

	playerService PlayerService
	gameService   GameService
	botService    BotService
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		locks:         newGameLocks(),
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
	}
}

// MakeTurn - applies the move of playerID and, in a bot game, the bot's reply. Players stay
// seated once the game ends, so a late move is answered with ErrGameOver.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, move uttt.Move) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrPlayerNotInGame
	}

	unlock := that.locks.Lock(player.GameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	seat := game.PlayerByID(player.ID)
	if seat == nil {
		return nil, apperror.ErrPlayerNotInGame
	}

	if err = game.MakeTurn(seat.Mark, move); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsWithBot() && game.IsOngoing() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// JoinGameByID - seats playerID as the second player of a waiting game.
func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == game.ID {
		return game, nil
	}

	_, err = that.CurrentGame(ctx, player)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrAlreadyInGame, player.GameID)
	case !errors.Is(err, apperror.ErrPlayerNotInGame):
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}

	if len(game.Players) >= maxPlayers || !game.IsWaiting() {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameFull, gameID)
	}

	player.GameID = game.ID
	player.Mark = game.Players[0].Mark.Opponent()
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	game.Status = entity.StatusOngoing
	game.Players = append(game.Players, player)
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.gameService.GetWaitingPublicGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get waiting public game: %w", err)
	}

	return that.JoinGameByID(ctx, game.ID, playerID)
}

// CurrentGame - returns the unfinished game player is seated in. A player whose game ended or
// expired is detached from it and ErrPlayerNotInGame is returned.
func (that *gamePlayService) CurrentGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if player.GameID == "" {
		return nil, apperror.ErrPlayerNotInGame
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		player.Leave()
		return nil, apperror.ErrPlayerNotInGame
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsFinished() {
		player.Leave()
		return nil, apperror.ErrPlayerNotInGame
	}

	return game, nil
}

// GetOrCreateGame - returns the current game of player, or opens a new one of gameType.
func (that *gamePlayService) GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	game, err := that.CurrentGame(ctx, player)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, apperror.ErrPlayerNotInGame) {
		return nil, err
	}

	game, err = that.createGame(ctx, player, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) createGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	game, updatedPlayer, err := that.gameService.CreateGame(ctx, player, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.playerService.UpdatePlayer(ctx, updatedPlayer); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if game.IsWithBot() {
		if err = that.addBotToGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to add bot to game: %w", err)
		}
	}

	return game, nil
}

func (that *gamePlayService) addBotToGame(ctx context.Context, game *entity.Game) error {
	playerMark, botMark := game.GetRandomMarks()

	human := game.Players[0]
	human.Mark = playerMark
	if err := that.playerService.UpdatePlayer(ctx, human); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	game.Players = append(game.Players, entity.NewBotPlayer(game.ID, botMark))
	game.Status = entity.StatusOngoing

	if botMark == uttt.First {
		if err := that.botService.MakeTurn(game); err != nil {
			return fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game with bot: %w", err)
	}

	return nil
}

// releasePlayers - frees the human players of game so they can start another one.
func (that *gamePlayService) releasePlayers(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "releasePlayers", "gameID", game.ID)

	for _, seat := range game.Players {
		if seat.IsBot() {
			continue
		}

		player := &entity.Player{ID: seat.ID}
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			log.Error("failed to update", "player", seat.ID, "error", err)
		}
	}
}

// CleanupGame - deletes game and frees its players.
func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "CleanupGame", "gameID", game.ID)

	unlock := that.locks.Lock(game.ID)
	defer unlock()

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	that.releasePlayers(ctx, game)
}
