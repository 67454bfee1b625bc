package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"hazard_duel/internal/domain"
)

type memGames struct {
	mu    sync.Mutex
	games map[string]*domain.Game
	err   error
	saves int
}

func newMemGames() *memGames {
	return &memGames{games: make(map[string]*domain.Game)}
}

func (m *memGames) Save(_ context.Context, g *domain.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *memGames) Get(_ context.Context, id string) (*domain.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return g.Clone(), nil
}

type memCache struct {
	memGames
}

func newMemCache() *memCache {
	return &memCache{memGames{games: make(map[string]*domain.Game)}}
}

func (c *memCache) Set(ctx context.Context, g *domain.Game) error { return c.Save(ctx, g) }

func (c *memCache) Del(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.games, id)
	return nil
}

type memHistory struct {
	mu      sync.Mutex
	records []*domain.GameHistory
}

func (h *memHistory) Create(_ context.Context, gh *domain.GameHistory) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, gh)
	return nil
}

type memPlayers struct {
	byID map[string]*domain.Player
}

func (m *memPlayers) Create(_ context.Context, p *domain.Player) error {
	for _, existing := range m.byID {
		if existing.Name == p.Name {
			return errors.New("duplicate name")
		}
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memPlayers) GetByID(_ context.Context, id string) (*domain.Player, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPlayerNotFound
}

func (m *memPlayers) GetByName(_ context.Context, name string) (*domain.Player, error) {
	for _, p := range m.byID {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

func seededRand(seed uint64) func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewPCG(seed, seed+1)) }
}
