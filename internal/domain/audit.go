package domain

import "time"

// AuditLog records a player action worth keeping outside the game snapshot.
type AuditLog struct {
	ID        int64          `db:"id" json:"id"`
	PlayerID  string         `db:"player_id" json:"player_id"`
	Action    string         `db:"action" json:"action"`
	Category  string         `db:"category" json:"category"`
	Details   map[string]any `db:"details" json:"details"`
	IP        string         `db:"ip" json:"ip,omitempty"`
	UserAgent string         `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Audit action categories
const (
	AuditCategoryAuth = "auth"
	AuditCategoryGame = "game"
)

// Audit actions
const (
	AuditActionLogin      = "login"
	AuditActionGameCreate = "game_create"
	AuditActionGameJoin   = "game_join"
)
