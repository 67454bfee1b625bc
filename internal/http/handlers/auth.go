package handlers

import (
	"net/http"
	"time"

	"hazard_duel/internal/domain"
	"hazard_duel/internal/logger"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Name string `json:"name"`
}

// Login registers or finds the player and issues a token, both in the body and
// as an HttpOnly cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	player, err := h.Players.Login(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	token, exp, err := h.Tokens.Generate(player)
	if err != nil {
		logger.Error("token generation failed", "player_id", player.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	h.Audit.LogWithRequest(c.Request.Context(), player.ID, domain.AuditActionLogin, domain.AuditCategoryAuth,
		c.ClientIP(), c.Request.UserAgent(), nil)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.Tokens.CookieName(),
		Value:    token,
		Path:     "/",
		Expires:  exp,
		MaxAge:   int(time.Until(exp).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp.UTC(),
		"player":     player,
	})
}
