package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hazard_duel/internal/domain"
)

func TestPlayerService_Login(t *testing.T) {
	svc := NewPlayerService(&memPlayers{byID: map[string]*domain.Player{}})
	ctx := context.Background()

	p1, err := svc.Login(ctx, "  alice ")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p1.Name != "alice" || p1.ID == "" {
		t.Fatalf("unexpected player: %+v", p1)
	}

	p2, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if p2.ID != p1.ID {
		t.Fatalf("login registered a second player: %s != %s", p2.ID, p1.ID)
	}

	got, err := svc.Get(ctx, p1.ID)
	if err != nil || got.Name != "alice" {
		t.Fatalf("get = %+v, %v", got, err)
	}
}

func TestPlayerService_LoginInvalidName(t *testing.T) {
	svc := NewPlayerService(&memPlayers{byID: map[string]*domain.Player{}})

	for _, name := range []string{"", "   ", strings.Repeat("x", 33)} {
		if _, err := svc.Login(context.Background(), name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Login(%q) = %v; want ErrInvalidName", name, err)
		}
	}
}
