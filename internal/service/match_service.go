package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"hazard_duel/internal/domain"
	"hazard_duel/internal/game"
	"hazard_duel/internal/logger"

	"github.com/google/uuid"
)

type GameStore interface {
	Save(ctx context.Context, g *domain.Game) error
	Get(ctx context.Context, id string) (*domain.Game, error)
}

type SnapshotCache interface {
	Set(ctx context.Context, g *domain.Game) error
	Get(ctx context.Context, id string) (*domain.Game, error)
	Del(ctx context.Context, id string) error
}

type HistoryStore interface {
	Create(ctx context.Context, gh *domain.GameHistory) error
}

// StatusEvent is delivered to subscribers on every status transition.
type StatusEvent struct {
	GameID string      `json:"game_id"`
	Status game.Status `json:"status"`
	Winner *int        `json:"winner"`
}

// MatchView is a copy of a match safe to hand out.
type MatchView struct {
	Game   *domain.Game `json:"game"`
	Status game.Status  `json:"status"`
}

// Match - одна партия в памяти: движок и мьютекс, через который идут все вызовы
type Match struct {
	mu         sync.Mutex
	engine     *game.Engine
	lastActive time.Time
	watchers   int
	// evicted is set under mu when the match leaves the registry
	evicted bool
}

func (m *Match) view() *MatchView {
	return &MatchView{Game: m.engine.CurrentGame().Clone(), Status: m.engine.Status()}
}

// MatchService is the lobby around the engine: it creates and joins games,
// applies moves one at a time per match and persists snapshots.
type MatchService struct {
	games   GameStore
	cache   SnapshotCache
	history HistoryStore

	mu      sync.RWMutex
	matches map[string]*Match

	// newRand returns the randomness source for a new engine; nil means time-seeded
	newRand func() *rand.Rand
	now     func() time.Time
}

func NewMatchService(games GameStore, cache SnapshotCache, history HistoryStore) *MatchService {
	return &MatchService{
		games:   games,
		cache:   cache,
		history: history,
		matches: make(map[string]*Match),
		newRand: func() *rand.Rand { return nil },
		now:     time.Now,
	}
}

// Create starts a new game owned by playerID and waits for an opponent.
func (s *MatchService) Create(ctx context.Context, playerID string) (*MatchView, error) {
	e := game.NewEngine(s.newRand())
	g := e.CreateGame(playerID, nil)
	g.ID = uuid.NewString()
	e.LoadGame(g)
	e.SetStatus(game.WaitingForOpponent)

	if err := s.persist(ctx, g); err != nil {
		return nil, err
	}

	m := &Match{engine: e, lastActive: s.now()}
	s.mu.Lock()
	s.matches[g.ID] = m
	ActiveMatches.Set(float64(len(s.matches)))
	s.mu.Unlock()

	GamesCreated.Inc()
	logger.ForGame(g.ID).Info("game created", "player_id", playerID, "starting_player", g.StartingPlayer)

	return m.view(), nil
}

// Join seats playerID as the second player and starts the first turn.
func (s *MatchService) Join(ctx context.Context, gameID, playerID string) (*MatchView, error) {
	m, err := s.lock(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	m.lastActive = s.now()

	g := m.engine.CurrentGame()
	if g.Player1ID == playerID || (g.Player2ID != nil && *g.Player2ID == playerID) {
		return nil, domain.ErrAlreadyJoined
	}
	if g.Player2ID != nil {
		return nil, domain.ErrGameFull
	}

	m.engine.SetStatus(game.Joining)
	p2 := playerID
	g.Player2ID = &p2
	g.UpdatedAt = s.now().UTC()
	m.engine.SetStatus(game.Starting)

	if err := s.persist(ctx, g); err != nil {
		g.Player2ID = nil
		m.engine.SetStatus(game.WaitingForOpponent)
		return nil, err
	}
	m.engine.LoadGame(g)

	GamesJoined.Inc()
	logger.ForGame(gameID).Info("game joined", "player_id", playerID, "status", m.engine.Status())

	return m.view(), nil
}

// Get returns the current state, resuming the match from storage if needed.
func (s *MatchService) Get(ctx context.Context, gameID string) (*MatchView, error) {
	m, err := s.lock(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	return m.view(), nil
}

// CanMove reports whether playerID may reveal cellID right now.
func (s *MatchService) CanMove(ctx context.Context, gameID, playerID string, cellID int) (bool, error) {
	m, err := s.lock(ctx, gameID)
	if err != nil {
		return false, err
	}
	defer m.mu.Unlock()
	seat := m.engine.CurrentGame().Seat(playerID)
	if seat < 0 {
		return false, domain.ErrNotParticipant
	}
	return m.engine.CanMove(seat, cellID), nil
}

// Move applies a move for playerID. Illegal moves return the engine's reason.
func (s *MatchService) Move(ctx context.Context, gameID, playerID string, cellID int) (*MatchView, error) {
	m, err := s.lock(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	m.lastActive = s.now()

	log := logger.ForGame(gameID)
	seat := m.engine.CurrentGame().Seat(playerID)
	if seat < 0 {
		return nil, domain.ErrNotParticipant
	}
	if err := m.engine.Validate(seat, cellID); err != nil {
		MovesRejected.WithLabelValues(err.Error()).Inc()
		log.Debug("move rejected", "player_id", playerID, "cell", cellID, "reason", err)
		return nil, err
	}

	// ход играется на копии; в движок попадает только сохранённый снимок
	staged := game.NewEngine(s.newRand())
	staged.LoadGame(m.engine.CurrentGame().Clone())
	g := staged.ApplyMove(seat, cellID)

	if err := s.persist(ctx, g); err != nil {
		log.Error("failed to persist move", "error", err)
		return nil, err
	}
	m.engine.LoadGame(g)
	MovesApplied.Inc()

	if m.engine.Status().IsFinished() {
		s.finish(ctx, g)
	}

	log.Debug("move applied", "player_id", playerID, "cell", cellID, "status", m.engine.Status())
	return m.view(), nil
}

func (s *MatchService) finish(ctx context.Context, g *domain.Game) {
	last := g.LastMove()
	reason, _ := game.FinishReasonOf(g.Board, *last)
	GamesFinished.WithLabelValues(string(reason)).Inc()

	for _, gh := range g.ToGameHistory(reason) {
		if err := s.history.Create(ctx, gh); err != nil {
			logger.ForGame(g.ID).Error("failed to record history", "player_id", gh.PlayerID, "error", err)
		}
	}
	logger.ForGame(g.ID).Info("game finished", "winner", *g.WinnerPlayer, "reason", reason, "moves", len(g.Moves))
}

// Subscribe calls fn on every status change of the game until the returned
// cancel func is called. fn runs under the match lock and must not block.
// The returned event is the status at subscription time; every call to fn
// comes after it.
func (s *MatchService) Subscribe(ctx context.Context, gameID string, fn func(StatusEvent)) (StatusEvent, func(), error) {
	m, err := s.lock(ctx, gameID)
	if err != nil {
		return StatusEvent{}, nil, err
	}
	defer m.mu.Unlock()

	current := StatusEvent{GameID: gameID, Status: m.engine.Status(), Winner: m.engine.CurrentGame().WinnerPlayer}
	m.watchers++
	id := m.engine.Subscribe(func(_, next game.Status) {
		ev := StatusEvent{GameID: gameID, Status: next}
		if w, ok := next.Winner(); ok {
			ev.Winner = &w
		}
		fn(ev)
	})

	var once sync.Once
	return current, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.engine.Unsubscribe(id)
			m.watchers--
			m.lastActive = s.now()
		})
	}, nil
}

// lock resolves gameID and returns its match with mu held. A match evicted
// between lookup and locking is resolved again.
func (s *MatchService) lock(ctx context.Context, gameID string) (*Match, error) {
	for {
		m, err := s.match(ctx, gameID)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		if !m.evicted {
			return m, nil
		}
		m.mu.Unlock()
	}
}

// match returns the in-memory match, resuming it from cache or database.
func (s *MatchService) match(ctx context.Context, gameID string) (*Match, error) {
	s.mu.RLock()
	m, ok := s.matches[gameID]
	s.mu.RUnlock()
	if ok {
		return m, nil
	}

	g, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	e := game.NewEngine(s.newRand())
	if g.Player2ID == nil {
		e.SetStatus(game.WaitingForOpponent)
	}
	e.LoadGame(g)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.matches[gameID]; ok {
		return existing, nil
	}
	m = &Match{engine: e, lastActive: s.now()}
	s.matches[gameID] = m
	ActiveMatches.Set(float64(len(s.matches)))

	logger.ForGame(gameID).Info("game resumed", "status", e.Status(), "moves", len(g.Moves))
	return m, nil
}

func (s *MatchService) load(ctx context.Context, gameID string) (*domain.Game, error) {
	g, err := s.cache.Get(ctx, gameID)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, domain.ErrGameNotFound) {
		logger.ForGame(gameID).Warn("snapshot cache read failed", "error", err)
	}

	g, err = s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, g); err != nil {
		logger.ForGame(gameID).Warn("snapshot cache write failed", "error", err)
	}
	return g, nil
}

func (s *MatchService) persist(ctx context.Context, g *domain.Game) error {
	if err := s.games.Save(ctx, g); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, g); err != nil {
		// старый снимок в кеше нельзя оставлять: load читает кеш раньше базы
		log := logger.ForGame(g.ID)
		log.Warn("snapshot cache write failed", "error", err)
		if err := s.cache.Del(ctx, g.ID); err != nil {
			log.Error("snapshot cache evict failed", "error", err)
		}
	}
	return nil
}

// EvictIdle drops matches idle for longer than maxIdle that nobody watches.
// Their snapshots stay in storage and are resumed on next access.
func (s *MatchService) EvictIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, m := range s.matches {
		m.mu.Lock()
		idle := m.watchers == 0 && now.Sub(m.lastActive) > maxIdle
		if idle {
			m.evicted = true
		}
		m.mu.Unlock()

		if idle {
			delete(s.matches, id)
			evicted++
		}
	}
	ActiveMatches.Set(float64(len(s.matches)))

	if evicted > 0 {
		logger.Info("evicted idle matches", "count", evicted)
	}
	return evicted
}

// StartCleanup runs EvictIdle every interval until ctx is done.
func (s *MatchService) StartCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.EvictIdle(maxIdle)
			}
		}
	}()
}
