package domain

import "time"

const (
	BoardSize = 9

	// Hazard marks the hidden cell; revealing it loses the game
	Hazard = "M"
	Empty  = ""
)

// PlayerSymbols - символ игрока по его номеру (0 или 1)
var PlayerSymbols = [2]string{"X", "O"}

// Board holds the hazard marker and the distance hints.
// Index i maps to row i/3, col i%3.
type Board [BoardSize]string

// Cells is a snapshot of uncovered cells: each holds the symbol of the player
// who uncovered it or Empty.
type Cells [BoardSize]string

// Move is a single turn together with the cumulative reveal state after it.
type Move struct {
	PlayerID      int   `json:"playerId"`
	CellID        int   `json:"cellId"`
	RevealedCells Cells `json:"allCells"`
}

// Game - снимок партии, достаточный для продолжения игры
type Game struct {
	ID             string  `json:"id"`
	Player1ID      string  `json:"player1"`
	Player2ID      *string `json:"player2"`
	StartingPlayer int     `json:"startingPlayer"`
	WinnerPlayer   *int    `json:"winnerPlayer"`
	Board          Board   `json:"board"`
	Moves          []Move  `json:"allMoves"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LastMove returns the most recent move or nil.
func (g *Game) LastMove() *Move {
	if g == nil || len(g.Moves) == 0 {
		return nil
	}
	return &g.Moves[len(g.Moves)-1]
}

// Seat returns 0 or 1 for a participant, -1 otherwise.
func (g *Game) Seat(playerID string) int {
	switch {
	case g.Player1ID == playerID:
		return 0
	case g.Player2ID != nil && *g.Player2ID == playerID:
		return 1
	default:
		return -1
	}
}

// Opponent returns the other participant's id, empty if none joined yet.
func (g *Game) Opponent(playerID string) string {
	switch g.Seat(playerID) {
	case 0:
		if g.Player2ID != nil {
			return *g.Player2ID
		}
	case 1:
		return g.Player1ID
	}
	return ""
}

// Clone returns a deep copy so callers can hand snapshots out without sharing
// the engine's move slice.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	if g.Player2ID != nil {
		p2 := *g.Player2ID
		c.Player2ID = &p2
	}
	if g.WinnerPlayer != nil {
		w := *g.WinnerPlayer
		c.WinnerPlayer = &w
	}
	c.Moves = append([]Move(nil), g.Moves...)
	return &c
}
