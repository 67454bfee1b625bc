package game

import (
	"math/rand/v2"
	"time"

	"hazard_duel/internal/domain"
)

// Listener receives every status transition.
type Listener func(prev, next Status)

type subscription struct {
	id int
	fn Listener
}

// Engine owns the state of one match. It is not safe for concurrent use;
// callers serialize access per match.
type Engine struct {
	rng    *rand.Rand
	boards *BoardGenerator

	status Status
	game   *domain.Game

	subs    []subscription
	nextSub int
}

// NewEngine returns an idle engine; a nil rng is replaced by a time-seeded one.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32|1))
	}
	return &Engine{
		rng:    rng,
		boards: NewBoardGenerator(rng),
		status: SelectingPlayer,
	}
}

// CreateGame builds a fresh match with a random board and starting player.
// The game is not installed; pass it to LoadGame.
func (e *Engine) CreateGame(player1ID string, player2ID *string) *domain.Game {
	now := time.Now().UTC()
	return &domain.Game{
		Player1ID:      player1ID,
		Player2ID:      player2ID,
		StartingPlayer: e.rng.IntN(2),
		Board:          e.boards.Generate(),
		Moves:          []domain.Move{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// LoadGame installs g and derives the status from its contents. With no
// second player the status is left as is.
func (e *Engine) LoadGame(g *domain.Game) {
	e.game = g
	if g == nil || g.Player2ID == nil {
		return
	}

	if g.WinnerPlayer != nil {
		e.SetStatus(WinOf(*g.WinnerPlayer))
		return
	}

	if last := g.LastMove(); last != nil {
		e.SetStatus(Evaluate(g.Board, *last))
		return
	}

	e.SetStatus(TurnOf(g.StartingPlayer))
}

// Validate explains why a move is illegal, nil when it is allowed.
func (e *Engine) Validate(playerID, cellID int) error {
	g := e.game
	if g == nil {
		return domain.ErrNoActiveGame
	}
	if g.Player2ID == nil {
		return domain.ErrAwaitingOpponent
	}
	if g.WinnerPlayer != nil || e.status.IsFinished() {
		return domain.ErrGameOver
	}
	if playerID != 0 && playerID != 1 {
		return domain.ErrUnknownPlayer
	}
	if cellID < 0 || cellID >= domain.BoardSize {
		return domain.ErrCellOutOfRange
	}
	if e.status != TurnOf(playerID) {
		return domain.ErrNotYourTurn
	}
	if e.revealed()[cellID] != domain.Empty {
		return domain.ErrCellRevealed
	}
	return nil
}

func (e *Engine) CanMove(playerID, cellID int) bool {
	return e.Validate(playerID, cellID) == nil
}

// ApplyMove plays cellID for playerID. It returns nil with no game loaded and
// the unchanged game when the move is illegal.
func (e *Engine) ApplyMove(playerID, cellID int) *domain.Game {
	if e.game == nil {
		return nil
	}
	if !e.CanMove(playerID, cellID) {
		return e.game
	}

	cells := e.revealed()
	cells[cellID] = domain.PlayerSymbols[playerID]
	move := domain.Move{PlayerID: playerID, CellID: cellID, RevealedCells: cells}
	e.game.Moves = append(e.game.Moves, move)
	e.game.UpdatedAt = time.Now().UTC()

	next := Evaluate(e.game.Board, move)
	if winner, ok := next.Winner(); ok {
		e.game.WinnerPlayer = &winner
	}
	e.SetStatus(next)

	return e.game
}

// revealed returns a copy of the latest reveal snapshot.
func (e *Engine) revealed() domain.Cells {
	if last := e.game.LastMove(); last != nil {
		return last.RevealedCells
	}
	return domain.Cells{}
}

// SetStatus changes the status and notifies listeners. Writing the current
// value is a no-op.
func (e *Engine) SetStatus(s Status) {
	if s == e.status {
		return
	}
	prev := e.status
	e.status = s
	// listeners may unsubscribe while being notified
	for _, sub := range append([]subscription(nil), e.subs...) {
		sub.fn(prev, s)
	}
}

// Subscribe registers fn and returns an id for Unsubscribe.
func (e *Engine) Subscribe(fn Listener) int {
	e.nextSub++
	e.subs = append(e.subs, subscription{id: e.nextSub, fn: fn})
	return e.nextSub
}

func (e *Engine) Unsubscribe(id int) {
	for i, sub := range e.subs {
		if sub.id == id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

func (e *Engine) Status() Status { return e.status }

// CurrentGame returns the installed game or nil.
func (e *Engine) CurrentGame() *domain.Game { return e.game }

// LastMove returns the latest move of the installed game or nil.
func (e *Engine) LastMove() *domain.Move { return e.game.LastMove() }
