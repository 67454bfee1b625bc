package game

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"hazard_duel/internal/domain"
)

func TestGenerateWithHazard_AllPositions(t *testing.T) {
	for hazard := 0; hazard < domain.BoardSize; hazard++ {
		t.Run(strconv.Itoa(hazard), func(t *testing.T) {
			b := mustBoard(t, hazard)
			assertValidBoard(t, b, hazard)
		})
	}
}

func TestGenerateWithHazard_Corner(t *testing.T) {
	want := domain.Board{"M", "1", "2", "1", "2", "3", "2", "3", "4"}
	if got := mustBoard(t, 0); got != want {
		t.Fatalf("GenerateWithHazard(0) = %v; want %v", got, want)
	}
}

func TestGenerateWithHazard_Centre(t *testing.T) {
	want := domain.Board{"2", "1", "2", "1", "M", "1", "2", "1", "2"}
	if got := mustBoard(t, 4); got != want {
		t.Fatalf("GenerateWithHazard(4) = %v; want %v", got, want)
	}
}

func TestGenerateWithHazard_OutOfRange(t *testing.T) {
	for _, hazard := range []int{-1, 9, 100} {
		b, err := GenerateWithHazard(hazard)
		if !errors.Is(err, domain.ErrCellOutOfRange) {
			t.Fatalf("GenerateWithHazard(%d) err = %v; want ErrCellOutOfRange", hazard, err)
		}
		if b != (domain.Board{}) {
			t.Fatalf("GenerateWithHazard(%d) = %v; want empty board", hazard, b)
		}
	}
}

func TestBoardGenerator_Generate(t *testing.T) {
	gen := NewBoardGenerator(rand.New(rand.NewPCG(1, 2)))
	seen := make(map[int]bool)

	for i := 0; i < 500; i++ {
		b := gen.Generate()
		h := HazardIndex(b)
		if h < 0 {
			t.Fatalf("board without hazard: %v", b)
		}
		assertValidBoard(t, b, h)
		seen[h] = true
	}

	// every cell must be reachable as the hazard, including the last one
	for i := 0; i < domain.BoardSize; i++ {
		if !seen[i] {
			t.Errorf("hazard never placed at %d", i)
		}
	}
}

func mustBoard(t *testing.T, hazard int) domain.Board {
	t.Helper()
	b, err := GenerateWithHazard(hazard)
	if err != nil {
		t.Fatalf("GenerateWithHazard(%d): %v", hazard, err)
	}
	return b
}

func assertValidBoard(t *testing.T, b domain.Board, hazard int) {
	t.Helper()

	hazards := 0
	for i, v := range b {
		if v == domain.Hazard {
			hazards++
			if i != hazard {
				t.Fatalf("hazard at %d; want %d", i, hazard)
			}
			continue
		}
		want := abs(i/3-hazard/3) + abs(i%3-hazard%3)
		if v != strconv.Itoa(want) {
			t.Fatalf("cell %d = %q; want %d (board %v)", i, v, want, b)
		}
	}
	if hazards != 1 {
		t.Fatalf("expected exactly one hazard, got %d", hazards)
	}
}
