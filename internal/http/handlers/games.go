package handlers

import (
	"net/http"
	"strconv"

	"hazard_duel/internal/domain"
	"hazard_duel/internal/game"
	"hazard_duel/internal/service"

	"github.com/gin-gonic/gin"
)

// GameResponse is what a player sees of a match. Hints are shown only for
// revealed cells until the game is over.
type GameResponse struct {
	ID             string       `json:"id"`
	Player1        string       `json:"player1"`
	Player2        *string      `json:"player2"`
	StartingPlayer int          `json:"startingPlayer"`
	WinnerPlayer   *int         `json:"winnerPlayer"`
	Board          domain.Board `json:"board"`
	Revealed       domain.Cells `json:"allCells"`
	Moves          int          `json:"moves"`
	Status         game.Status  `json:"status"`
	Seat           *int         `json:"seat"`
	YourTurn       bool         `json:"yourTurn"`
}

func newGameResponse(v *service.MatchView, playerID string) GameResponse {
	g := v.Game
	res := GameResponse{
		ID:             g.ID,
		Player1:        g.Player1ID,
		Player2:        g.Player2ID,
		StartingPlayer: g.StartingPlayer,
		WinnerPlayer:   g.WinnerPlayer,
		Moves:          len(g.Moves),
		Status:         v.Status,
	}
	if last := g.LastMove(); last != nil {
		res.Revealed = last.RevealedCells
	}

	for i := range g.Board {
		if v.Status.IsFinished() || res.Revealed[i] != domain.Empty {
			res.Board[i] = g.Board[i]
		}
	}

	if seat := g.Seat(playerID); seat >= 0 {
		res.Seat = &seat
		res.YourTurn = v.Status == game.TurnOf(seat)
	}
	return res
}

func (h *Handler) CreateGame(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	v, err := h.Matches.Create(c.Request.Context(), playerID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.Audit.LogGame(c.Request.Context(), playerID, domain.AuditActionGameCreate, v.Game.ID, c.ClientIP())
	c.JSON(http.StatusCreated, newGameResponse(v, playerID))
}

func (h *Handler) JoinGame(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	v, err := h.Matches.Join(c.Request.Context(), c.Param("id"), playerID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.Audit.LogGame(c.Request.Context(), playerID, domain.AuditActionGameJoin, v.Game.ID, c.ClientIP())
	c.JSON(http.StatusOK, newGameResponse(v, playerID))
}

func (h *Handler) GetGame(c *gin.Context) {
	playerID, _ := getPlayerID(c)

	v, err := h.Matches.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(v, playerID))
}

// CanMove reports whether the caller may reveal :cell right now. It does not
// play the move.
func (h *Handler) CanMove(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	cell, err := strconv.Atoi(c.Param("cell"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cell"})
		return
	}

	allowed, err := h.Matches.CanMove(c.Request.Context(), c.Param("id"), playerID, cell)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cell": cell, "canMove": allowed})
}
