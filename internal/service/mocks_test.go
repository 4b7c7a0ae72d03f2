package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

type mockPlayerRepo struct {
	mock.Mock
}

func (m *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) GetWaitingPublicGame(ctx context.Context) (*entity.Game, error) {
	args := m.Called(ctx)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPlayerService struct {
	mock.Mock
}

func (m *mockPlayerService) CreatePlayer(ctx context.Context) (*entity.Player, error) {
	args := m.Called(ctx)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (m *mockPlayerService) GetPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (m *mockPlayerService) UpdatePlayer(ctx context.Context, player *entity.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) CreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, *entity.Player, error) {
	args := m.Called(ctx, player, gameType)
	game, _ := args.Get(0).(*entity.Game)
	updated, _ := args.Get(1).(*entity.Player)
	return game, updated, args.Error(2)
}

func (m *mockGameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameService) DeleteGame(ctx context.Context, gameID string) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *mockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameService) GetWaitingPublicGame(ctx context.Context) (*entity.Game, error) {
	args := m.Called(ctx)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// scriptedAgent replays moves in order.
type scriptedAgent struct {
	moves []uttt.Move
	err   error
}

func (that *scriptedAgent) SelectMove(_ [uttt.BoardSize][uttt.BoardSize]uttt.Mark, _ [uttt.BoardSize]uttt.LocalStatus, _ uttt.BoardSet) (uttt.Move, error) {
	if that.err != nil {
		return uttt.Move{}, that.err
	}

	move := that.moves[0]
	that.moves = that.moves[1:]

	return move, nil
}
