package handlers

import (
	"context"
	"errors"
	"net/http"

	"hazard_duel/internal/domain"
	"hazard_duel/internal/http/middleware"
	"hazard_duel/internal/repository"
	"hazard_duel/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryReader is the read side of the game history repository.
type HistoryReader interface {
	GetByPlayer(ctx context.Context, playerID string, limit int) ([]*domain.GameHistory, error)
	GetPlayerStats(ctx context.Context, playerID string) (*repository.PlayerStats, error)
}

type Handler struct {
	Players *service.PlayerService
	Matches *service.MatchService
	Tokens  *service.TokenService
	History HistoryReader
	// Audit may be nil.
	Audit *service.AuditService
}

func NewHandler(players *service.PlayerService, matches *service.MatchService, tokens *service.TokenService, history HistoryReader) *Handler {
	return &Handler{
		Players: players,
		Matches: matches,
		Tokens:  tokens,
		History: history,
	}
}

// getPlayerID извлекает player_id из контекста Gin
func getPlayerID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.CtxPlayerID)
	return id, id != ""
}

// writeError maps domain errors to status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrGameNotFound), errors.Is(err, domain.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrGameFull), errors.Is(err, domain.ErrAlreadyJoined),
		errors.Is(err, domain.ErrGameOver), errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, domain.ErrCellRevealed), errors.Is(err, domain.ErrAwaitingOpponent):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrCellOutOfRange), errors.Is(err, domain.ErrUnknownPlayer),
		errors.Is(err, service.ErrInvalidName):
		status = http.StatusBadRequest
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
