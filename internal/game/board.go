package game

import (
	"math/rand/v2"
	"strconv"
	"time"

	"hazard_duel/internal/domain"
)

const gridSide = 3

// BoardGenerator places the hazard and fills in the distance hints.
type BoardGenerator struct {
	rng *rand.Rand
}

// NewBoardGenerator returns a generator; a nil rng is replaced by a time-seeded one.
func NewBoardGenerator(rng *rand.Rand) *BoardGenerator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32|1))
	}
	return &BoardGenerator{rng: rng}
}

// Generate returns a board with one hazard chosen uniformly among all cells.
func (g *BoardGenerator) Generate() domain.Board {
	b, _ := GenerateWithHazard(g.rng.IntN(domain.BoardSize))
	return b
}

// GenerateWithHazard fills a board for a fixed hazard cell. A cell outside
// the board yields domain.ErrCellOutOfRange.
func GenerateWithHazard(hazard int) (domain.Board, error) {
	var b domain.Board
	if hazard < 0 || hazard >= domain.BoardSize {
		return b, domain.ErrCellOutOfRange
	}
	b[hazard] = domain.Hazard

	hr, hc := hazard/gridSide, hazard%gridSide
	stack := neighbours(hr, hc, nil)
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r, c := cell[0], cell[1]
		if r < 0 || r >= gridSide || c < 0 || c >= gridSide {
			continue
		}
		idx := r*gridSide + c
		if b[idx] != domain.Empty {
			continue
		}

		b[idx] = strconv.Itoa(abs(r-hr) + abs(c-hc))
		stack = neighbours(r, c, stack)
	}

	return b, nil
}

// HazardIndex returns the hazard position or -1 for a malformed board.
func HazardIndex(b domain.Board) int {
	for i, v := range b {
		if v == domain.Hazard {
			return i
		}
	}
	return -1
}

func neighbours(r, c int, stack [][2]int) [][2]int {
	return append(stack, [2]int{r - 1, c}, [2]int{r + 1, c}, [2]int{r, c - 1}, [2]int{r, c + 1})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
