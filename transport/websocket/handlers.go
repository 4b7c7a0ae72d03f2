package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

var (
	errPlayerRequired = errors.New("player is required")
	errGameRequired   = errors.New("game is required")
	errMoveRequired   = errors.New("move is required")
)

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return conn.sendError(msg.Action, err)
	}

	that.register(player.ID, conn)

	if player.GameID != "" {
		return that.handleExistingGame(ctx, msg, conn, player)
	}

	if err = conn.send(msg.Action, Payload{Player: player}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

// handleExistingGame - sends a reconnecting player the game it is seated in.
func (that *Server) handleExistingGame(ctx context.Context, msg *Message, conn *connection, player *entity.Player) error {
	log := that.logger.With("method", "handleExistingGame", "playerID", player.ID)

	game, err := that.gameUseCase.GetGameByID(ctx, player.GameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		// the game expired; the player is free again
		player.Leave()
		return conn.send(msg.Action, Payload{Player: player})
	}

	if err != nil {
		log.Error("failed to get game", "gameID", player.GameID, "error", err)
		return conn.sendError(msg.Action, err)
	}

	return conn.send(msg.Action, Payload{Player: player, Game: maskGame(game)})
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	if payloadReq.Player == nil {
		return conn.sendError(msg.Action, errPlayerRequired)
	}

	if payloadReq.Game == nil {
		return conn.sendError(msg.Action, errGameRequired)
	}

	playerID := payloadReq.Player.ID
	that.register(playerID, conn)

	var game *entity.Game

	switch payloadReq.Game.Type {
	case entity.PublicType:
		game, err = that.gameUseCase.CreateOrJoinToPublicGame(ctx, playerID)
	case entity.PrivateType, entity.WithBotType:
		game, err = that.gameUseCase.GetOrCreateGame(ctx, playerID, payloadReq.Game.Type)
	default:
		return conn.sendError(msg.Action, fmt.Errorf("unknown game type %q", payloadReq.Game.Type))
	}

	if err != nil {
		log.Error("failed to create game", "type", payloadReq.Game.Type, "error", err)
		return conn.sendError(msg.Action, err)
	}

	that.broadcast(msg.Action, game, "")

	log.Info("game ready", "gameID", game.ID, "playerID", playerID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	if payloadReq.Player == nil {
		return conn.sendError(msg.Action, errPlayerRequired)
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return conn.sendError(msg.Action, errGameRequired)
	}

	that.register(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID, "gameID", payloadReq.Game.ID)

	game, err := that.gameUseCase.JoinGameByID(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "error", err)
		return conn.sendError(msg.Action, err)
	}

	that.broadcast(msg.Action, game, "")

	log.Info("player joined game")

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	if payloadReq.Player == nil {
		return conn.sendError(msg.Action, errPlayerRequired)
	}

	if payloadReq.Move == nil {
		return conn.sendError(msg.Action, errMoveRequired)
	}

	that.register(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID, "move", payloadReq.Move.String())

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Move)
	if err != nil {
		log.Info("turn rejected", "error", err)
		return conn.sendError(msg.Action, err)
	}

	that.broadcast(msg.Action, game, "")

	if game.IsFinished() {
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner())
	}

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err)
	}

	if payloadReq.Player == nil {
		return conn.sendError(msg.Action, errPlayerRequired)
	}

	that.register(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.LeaveGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to leave game", "error", err)
		return conn.sendError(msg.Action, err)
	}

	that.broadcast(actionGameLeave, game, gameStatusLeave)

	log.Info("player left", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

// handleOpponentOut - abandons the game of a player that never came back and tells the others.
func (that *Server) handleOpponentOut(ctx context.Context, playerID string) {
	log := that.logger.With("method", "handleOpponentOut", "playerID", playerID)

	game, err := that.gameUseCase.LeaveGame(ctx, playerID)
	if errors.Is(err, apperror.ErrPlayerNotInGame) {
		return
	}

	if err != nil {
		log.Error("failed to abandon game", "error", err)
		return
	}

	if game.IsFinished() {
		log.Info("cleaned up finished game", "gameID", game.ID)
		return
	}

	remaining := *game
	remaining.Players = make([]*entity.Player, 0, len(game.Players))
	for _, player := range game.Players {
		if player.ID != playerID {
			remaining.Players = append(remaining.Players, player)
		}
	}

	that.broadcast(actionGameLeave, &remaining, gameStatusOpponentOut)

	log.Info("handled opponent out", "gameID", game.ID)
}
