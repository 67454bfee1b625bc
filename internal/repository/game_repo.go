package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hazard_duel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameRepository struct {
	db *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

// Save upserts the full snapshot. Status is never stored; it is derived on load.
func (r *GameRepository) Save(ctx context.Context, g *domain.Game) error {
	snapshot, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.ID, err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO games (id, player1_id, player2_id, winner_player, snapshot, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE
		 SET player2_id = EXCLUDED.player2_id,
		     winner_player = EXCLUDED.winner_player,
		     snapshot = EXCLUDED.snapshot,
		     updated_at = EXCLUDED.updated_at`,
		g.ID,
		g.Player1ID,
		g.Player2ID,
		g.WinnerPlayer,
		snapshot,
		g.CreatedAt,
		g.UpdatedAt,
	)
	return err
}

func (r *GameRepository) Get(ctx context.Context, id string) (*domain.Game, error) {
	var snapshot []byte
	err := r.db.QueryRow(ctx, `SELECT snapshot FROM games WHERE id = $1`, id).Scan(&snapshot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	var g domain.Game
	if err := json.Unmarshal(snapshot, &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &g, nil
}

// ListByPlayer returns the player's most recently updated games
func (r *GameRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]*domain.Game, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT snapshot
		 FROM games
		 WHERE player1_id = $1 OR player2_id = $1
		 ORDER BY updated_at DESC
		 LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Game
	for rows.Next() {
		var snapshot []byte
		if err := rows.Scan(&snapshot); err != nil {
			return nil, err
		}
		var g domain.Game
		if err := json.Unmarshal(snapshot, &g); err != nil {
			return nil, err
		}
		res = append(res, &g)
	}

	return res, rows.Err()
}
