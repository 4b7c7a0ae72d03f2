package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error)
	CreateOrJoinToPublicGame(ctx context.Context, playerID string) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)

	GetGameByID(ctx context.Context, gameID string) (*entity.Game, error)
	LegalMoves(ctx context.Context, gameID string) ([]uttt.Move, error)

	MakeTurn(ctx context.Context, playerID string, move uttt.Move) (*entity.Game, error)
	MakeTurnInGame(ctx context.Context, gameID, playerID string, move uttt.Move) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)
}

type playerService interface {
	CreatePlayer(ctx context.Context) (*entity.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameService interface {
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type gamePlayService interface {
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error)
	CurrentGame(ctx context.Context, player *entity.Player) (*entity.Game, error)
	GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)
	MakeTurn(ctx context.Context, playerID string, move uttt.Move) (*entity.Game, error)
}

type gameUseCase struct {
	playerService   playerService
	gameService     gameService
	gamePlayService gamePlayService
}

func NewGameUseCase(playerService playerService, gameService gameService, gamePlayService gamePlayService) GameUseCase {
	return &gameUseCase{
		playerService:   playerService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
	}
}

// GetOrCreatePlayer - returns the player with playerID, or a new player when playerID is empty.
func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	game, err := that.gamePlayService.GetOrCreateGame(ctx, player, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create game: %w", err)
	}

	return game, nil
}

// CreateOrJoinToPublicGame - joins the first waiting public game or opens a new one.
func (that *gameUseCase) CreateOrJoinToPublicGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	game, err := that.gamePlayService.CurrentGame(ctx, player)
	switch {
	case err == nil:
		return game, nil
	case !errors.Is(err, apperror.ErrPlayerNotInGame):
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}

	game, err = that.gamePlayService.JoinWaitingPublicGame(ctx, playerID)
	switch {
	case err == nil:
		return game, nil
	case errors.Is(err, apperror.ErrNoActiveGames), errors.Is(err, apperror.ErrGameFull):
		// nobody is waiting, or somebody else got there first
	default:
		return nil, fmt.Errorf("failed to join public game: %w", err)
	}

	game, err = that.gamePlayService.GetOrCreateGame(ctx, player, entity.PublicType)
	if err != nil {
		return nil, fmt.Errorf("failed to create public game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.JoinGameByID(ctx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// LegalMoves - returns the moves open to the player whose turn it is in gameID.
func (that *gameUseCase) LegalMoves(ctx context.Context, gameID string) ([]uttt.Move, error) {
	game, err := that.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return game.LegalMoves(), nil
}

// MakeTurn - plays move for playerID. A finished game keeps its players seated and stays
// readable until it expires.
func (that *gameUseCase) MakeTurn(ctx context.Context, playerID string, move uttt.Move) (*entity.Game, error) {
	game, err := that.gamePlayService.MakeTurn(ctx, playerID, move)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, nil
}

// MakeTurnInGame - like MakeTurn, but only when playerID is seated in gameID. A game that is
// over rejects the move with ErrGameOver before any seat check.
func (that *gameUseCase) MakeTurnInGame(ctx context.Context, gameID, playerID string, move uttt.Move) (*entity.Game, error) {
	game, err := that.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return nil, fmt.Errorf("failed to make turn in game %s: %w", gameID, err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if game.PlayerByID(playerID) == nil || player.GameID != gameID {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotInGame, gameID)
	}

	return that.MakeTurn(ctx, playerID, move)
}

// LeaveGame - abandons the current game of playerID and returns it as it was left.
func (that *gameUseCase) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrPlayerNotInGame
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	that.gamePlayService.CleanupGame(ctx, game)

	return game, nil
}
