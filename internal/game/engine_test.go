package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"hazard_duel/internal/domain"
)

func newTestGame(hazard, starting int) *domain.Game {
	p2 := "bob"
	return &domain.Game{
		ID:             "g1",
		Player1ID:      "alice",
		Player2ID:      &p2,
		StartingPlayer: starting,
		Board:          GenerateWithHazard(hazard),
		Moves:          []domain.Move{},
	}
}

func newTestEngine() *Engine {
	return NewEngine(rand.New(rand.NewPCG(7, 11)))
}

func TestEngine_HazardScenario(t *testing.T) {
	e := newTestEngine()
	e.LoadGame(newTestGame(0, 0))

	if e.Status() != Player1Turn {
		t.Fatalf("status after load = %s; want Player1Turn", e.Status())
	}

	g := e.ApplyMove(0, 4)
	if e.Status() != Player2Turn {
		t.Fatalf("status after first move = %s; want Player2Turn", e.Status())
	}
	if g.WinnerPlayer != nil {
		t.Fatalf("unexpected winner after first move")
	}

	g = e.ApplyMove(1, 0)
	if e.Status() != Player1Win {
		t.Fatalf("status after hazard = %s; want Player1Win", e.Status())
	}
	if g.WinnerPlayer == nil || *g.WinnerPlayer != 0 {
		t.Fatalf("winner = %v; want 0", g.WinnerPlayer)
	}
	if len(g.Moves) != 2 {
		t.Fatalf("moves = %d; want 2", len(g.Moves))
	}
}

func TestEngine_ThreeInARow(t *testing.T) {
	e := newTestEngine()
	e.LoadGame(newTestGame(8, 0))

	plays := []struct{ player, cell int }{{0, 0}, {1, 3}, {0, 1}, {1, 4}, {0, 2}}
	var g *domain.Game
	for _, p := range plays {
		if !e.CanMove(p.player, p.cell) {
			t.Fatalf("CanMove(%d,%d) = false; status %s", p.player, p.cell, e.Status())
		}
		g = e.ApplyMove(p.player, p.cell)
	}

	if e.Status() != Player1Win {
		t.Fatalf("status = %s; want Player1Win", e.Status())
	}
	if g.WinnerPlayer == nil || *g.WinnerPlayer != 0 {
		t.Fatalf("winner = %v; want 0", g.WinnerPlayer)
	}
	if e.CanMove(1, 5) {
		t.Fatalf("move allowed after game over")
	}
}

func TestEngine_LoadFreshGameUsesStartingPlayer(t *testing.T) {
	for _, starting := range []int{0, 1} {
		e := newTestEngine()
		e.LoadGame(newTestGame(4, starting))
		if want := TurnOf(starting); e.Status() != want {
			t.Fatalf("starting %d: status = %s; want %s", starting, e.Status(), want)
		}
		if e.CanMove(1-starting, 0) {
			t.Fatalf("starting %d: other player may move first", starting)
		}
	}
}

func TestEngine_LoadResumesFromLastMove(t *testing.T) {
	src := newTestEngine()
	src.LoadGame(newTestGame(8, 1))
	src.ApplyMove(1, 0)
	src.ApplyMove(0, 4)
	saved := src.CurrentGame().Clone()

	e := newTestEngine()
	e.LoadGame(saved)
	if e.Status() != Player2Turn {
		t.Fatalf("status = %s; want Player2Turn", e.Status())
	}
	if e.LastMove().CellID != 4 {
		t.Fatalf("last move cell = %d; want 4", e.LastMove().CellID)
	}
}

func TestEngine_LoadFinishedGame(t *testing.T) {
	g := newTestGame(8, 0)
	w := 1
	g.WinnerPlayer = &w

	e := newTestEngine()
	e.LoadGame(g)
	if e.Status() != Player2Win {
		t.Fatalf("status = %s; want Player2Win", e.Status())
	}
}

func TestEngine_LoadWithoutOpponentKeepsStatus(t *testing.T) {
	g := newTestGame(8, 0)
	g.Player2ID = nil

	e := newTestEngine()
	e.SetStatus(WaitingForOpponent)
	e.LoadGame(g)

	if e.Status() != WaitingForOpponent {
		t.Fatalf("status = %s; want WaitingForOpponent", e.Status())
	}
	if err := e.Validate(0, 0); !errors.Is(err, domain.ErrAwaitingOpponent) {
		t.Fatalf("Validate = %v; want ErrAwaitingOpponent", err)
	}
}

func TestEngine_Validate(t *testing.T) {
	e := newTestEngine()
	e.LoadGame(newTestGame(8, 0))
	e.ApplyMove(0, 4)

	cases := []struct {
		name         string
		player, cell int
		want         error
	}{
		{"revealed cell", 1, 4, domain.ErrCellRevealed},
		{"wrong turn", 0, 1, domain.ErrNotYourTurn},
		{"out of range", 1, 9, domain.ErrCellOutOfRange},
		{"negative cell", 1, -1, domain.ErrCellOutOfRange},
		{"unknown player", 2, 1, domain.ErrUnknownPlayer},
		{"legal", 1, 1, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.Validate(tc.player, tc.cell)
			if !errors.Is(err, tc.want) || (tc.want == nil && err != nil) {
				t.Fatalf("Validate(%d,%d) = %v; want %v", tc.player, tc.cell, err, tc.want)
			}
			if got := e.CanMove(tc.player, tc.cell); got != (tc.want == nil) {
				t.Fatalf("CanMove(%d,%d) = %v", tc.player, tc.cell, got)
			}
		})
	}
}

func TestEngine_IllegalMoveLeavesGameUnchanged(t *testing.T) {
	e := newTestEngine()
	e.LoadGame(newTestGame(8, 0))
	e.ApplyMove(0, 4)

	g := e.ApplyMove(1, 4)
	if len(g.Moves) != 1 {
		t.Fatalf("moves = %d; want 1", len(g.Moves))
	}
	if e.Status() != Player2Turn {
		t.Fatalf("status = %s; want Player2Turn", e.Status())
	}
}

func TestEngine_NoGameLoaded(t *testing.T) {
	e := newTestEngine()
	if e.CanMove(0, 0) {
		t.Fatalf("CanMove without game = true")
	}
	if g := e.ApplyMove(0, 0); g != nil {
		t.Fatalf("ApplyMove without game = %v; want nil", g)
	}
	if err := e.Validate(0, 0); !errors.Is(err, domain.ErrNoActiveGame) {
		t.Fatalf("Validate = %v; want ErrNoActiveGame", err)
	}
	if e.LastMove() != nil {
		t.Fatalf("LastMove without game != nil")
	}
}

func TestEngine_RevealedCellsAreMonotonic(t *testing.T) {
	e := newTestEngine()
	e.LoadGame(newTestGame(8, 0))

	order := []int{4, 0, 1, 2, 6, 3, 5, 7}
	player := 0
	for _, cell := range order {
		if e.Status().IsFinished() {
			break
		}
		e.ApplyMove(player, cell)
		player = 1 - player
	}

	moves := e.CurrentGame().Moves
	for i := 1; i < len(moves); i++ {
		prev, cur := moves[i-1].RevealedCells, moves[i].RevealedCells
		for c := range prev {
			if prev[c] != domain.Empty && prev[c] != cur[c] {
				t.Fatalf("move %d changed revealed cell %d: %q -> %q", i, c, prev[c], cur[c])
			}
		}
		if cur[moves[i].CellID] != domain.PlayerSymbols[moves[i].PlayerID] {
			t.Fatalf("move %d did not reveal its own cell", i)
		}
	}
}

func TestEngine_CreateGame(t *testing.T) {
	e := newTestEngine()
	starts := map[int]int{}
	for i := 0; i < 100; i++ {
		g := e.CreateGame("alice", nil)
		if g.Player2ID != nil || g.WinnerPlayer != nil || len(g.Moves) != 0 {
			t.Fatalf("unexpected fresh game: %+v", g)
		}
		if HazardIndex(g.Board) < 0 {
			t.Fatalf("board has no hazard")
		}
		starts[g.StartingPlayer]++
	}
	if starts[0] == 0 || starts[1] == 0 {
		t.Fatalf("starting player never varies: %v", starts)
	}
	if e.CurrentGame() != nil {
		t.Fatalf("CreateGame must not install the game")
	}
}

func TestEngine_NotifiesOnlyOnChange(t *testing.T) {
	e := newTestEngine()

	var got []Status
	id := e.Subscribe(func(_, next Status) { got = append(got, next) })

	e.SetStatus(WaitingForOpponent)
	e.SetStatus(WaitingForOpponent)
	e.SetStatus(Joining)
	e.LoadGame(newTestGame(0, 0))
	e.LoadGame(newTestGame(0, 0))

	want := []Status{WaitingForOpponent, Joining, Player1Turn}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("notifications = %v; want %v", got, want)
		}
	}

	e.Unsubscribe(id)
	e.ApplyMove(0, 4)
	if len(got) != len(want) {
		t.Fatalf("notified after unsubscribe: %v", got)
	}
}

func TestEngine_UnsubscribeDuringNotify(t *testing.T) {
	e := newTestEngine()

	calls := 0
	var id int
	id = e.Subscribe(func(_, _ Status) {
		calls++
		e.Unsubscribe(id)
	})
	other := 0
	e.Subscribe(func(_, _ Status) { other++ })

	e.SetStatus(Joining)
	e.SetStatus(Starting)

	if calls != 1 || other != 2 {
		t.Fatalf("calls = %d, other = %d; want 1, 2", calls, other)
	}
}
