package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"hazard_duel/internal/domain"
	"hazard_duel/internal/logger"

	"github.com/google/uuid"
)

const maxNameLength = 32

var ErrInvalidName = errors.New("name must be 1-32 characters")

type PlayerStore interface {
	Create(ctx context.Context, p *domain.Player) error
	GetByID(ctx context.Context, id string) (*domain.Player, error)
	GetByName(ctx context.Context, name string) (*domain.Player, error)
}

type PlayerService struct {
	players PlayerStore
}

func NewPlayerService(players PlayerStore) *PlayerService {
	return &PlayerService{players: players}
}

// Login returns the player with name, registering it on first use.
func (s *PlayerService) Login(ctx context.Context, name string) (*domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrInvalidName
	}

	p, err := s.players.GetByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, err
	}

	p = &domain.Player{ID: uuid.NewString(), Name: name}
	if err := s.players.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("player registered", "player_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *PlayerService) Get(ctx context.Context, id string) (*domain.Player, error) {
	return s.players.GetByID(ctx, id)
}
