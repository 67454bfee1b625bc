package handlers

import (
	"net/http"

	"hazard_duel/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	ctx := c.Request.Context()
	player, err := h.Players.Get(ctx, playerID)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.History.GetPlayerStats(ctx, playerID)
	if err != nil {
		logger.Warn("failed to load player stats", "player_id", playerID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         player.ID,
		"name":       player.Name,
		"created_at": player.CreatedAt,
		"stats":      stats,
	})
}

func (h *Handler) MyGames(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	ctx := c.Request.Context()
	games, err := h.History.GetByPlayer(ctx, playerID, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get games"})
		return
	}

	stats, _ := h.History.GetPlayerStats(ctx, playerID)

	c.JSON(http.StatusOK, gin.H{"games": games, "stats": stats})
}
