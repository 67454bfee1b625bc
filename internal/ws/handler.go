package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hazard_duel/internal/domain"
	"hazard_duel/internal/http/middleware"
	"hazard_duel/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleStatus streams status changes of game :id. Must run behind middleware.JWT.
func HandleStatus(hub *Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		playerID := c.GetString(middleware.CtxPlayerID)
		gameID := c.Param("id")

		if _, err := hub.source.Get(c.Request.Context(), gameID); err != nil {
			if errors.Is(err, domain.ErrGameNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load game"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(playerID, gameID, conn, hub)
		// the request context ends with the handler; the stream outlives it
		if err := hub.Join(context.Background(), gameID, client); err != nil {
			logger.ForGame(gameID).Error("ws join failed", "error", err)
			msg, _ := json.Marshal(Message{Type: MsgError, Payload: ErrorPayload{Message: err.Error()}})
			_ = conn.WriteMessage(websocket.TextMessage, msg)
			_ = conn.Close()
			return
		}

		go client.Run()
	}
}
