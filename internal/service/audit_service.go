package service

import (
	"context"

	"hazard_duel/internal/domain"
	"hazard_duel/internal/logger"
)

type AuditStore interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// AuditService writes the audit trail. Failures are logged, never returned.
// A nil *AuditService is a no-op.
type AuditService struct {
	repo AuditStore
}

func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// LogWithRequest creates an audit log with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, playerID, action, category, ip, userAgent string, details map[string]any) {
	if s == nil {
		return
	}
	log := &domain.AuditLog{
		PlayerID:  playerID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "player_id", playerID)
	}
}

// LogGame records a lobby action on gameID.
func (s *AuditService) LogGame(ctx context.Context, playerID, action, gameID, ip string) {
	s.LogWithRequest(ctx, playerID, action, domain.AuditCategoryGame, ip, "", map[string]any{"game_id": gameID})
}
