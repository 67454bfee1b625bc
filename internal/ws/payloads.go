package ws

import "hazard_duel/internal/game"

// server → client
type StatusPayload struct {
	GameID string      `json:"game_id"`
	Status game.Status `json:"status"`
	Winner *int        `json:"winner"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
