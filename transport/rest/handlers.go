package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/uttt"
)

type gameUseCase interface {
	GetGameByID(ctx context.Context, gameID string) (*entity.Game, error)
	LegalMoves(ctx context.Context, gameID string) ([]uttt.Move, error)
	MakeTurnInGame(ctx context.Context, gameID, playerID string, move uttt.Move) (*entity.Game, error)
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func newHandlers(logger *slog.Logger, gameUseCase gameUseCase) *handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

type moveRequest struct {
	PlayerID string `json:"player_id"`
	Board    *int   `json:"board"`
	Cell     *int   `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, maskGame(game))
}

func (that *handlers) GetLegalMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := that.gameUseCase.LegalMoves(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, moves)
}

func (that *handlers) PostMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.PlayerID == "" || req.Board == nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player_id, board and cell are required"})
		return
	}

	move := uttt.Move{Board: *req.Board, Cell: *req.Cell}

	game, err := that.gameUseCase.MakeTurnInGame(r.Context(), chi.URLParam(r, "id"), req.PlayerID, move)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, maskGame(game))
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameOver), errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrIllegalBoard), errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrPlayerNotInGame):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func maskGame(game *entity.Game) *entity.Game {
	masked := *game
	masked.Players = nil
	return &masked
}
