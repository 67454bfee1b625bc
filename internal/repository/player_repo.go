package repository

import (
	"context"
	"errors"

	"hazard_duel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO players (id, name)
		 VALUES ($1, $2)
		 RETURNING created_at`,
		p.ID,
		p.Name,
	).Scan(&p.CreatedAt)
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM players WHERE id = $1`, id)
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM players WHERE name = $1`, name)
}

func (r *PlayerRepository) getOne(ctx context.Context, query string, arg string) (*domain.Player, error) {
	var p domain.Player
	err := r.db.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
