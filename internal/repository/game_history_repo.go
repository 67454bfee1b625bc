package repository

import (
	"context"

	"hazard_duel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameHistoryRepository struct {
	db *pgxpool.Pool
}

func NewGameHistoryRepository(db *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{db: db}
}

// Create сохраняет запись игры в историю. Повторная запись той же партии игнорируется.
func (r *GameHistoryRepository) Create(ctx context.Context, gh *domain.GameHistory) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO game_history (game_id, player_id, opponent_id, result, reason, moves)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (game_id, player_id) DO NOTHING
		 RETURNING id, created_at`,
		gh.GameID,
		gh.PlayerID,
		gh.OpponentID,
		gh.Result,
		gh.Reason,
		gh.Moves,
	).Scan(&gh.ID, &gh.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil
	}
	return err
}

// GetByPlayer возвращает историю игр игрока
func (r *GameHistoryRepository) GetByPlayer(ctx context.Context, playerID string, limit int) ([]*domain.GameHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, game_id, player_id, opponent_id, result, reason, moves, created_at
		 FROM game_history
		 WHERE player_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.GameHistory
	for rows.Next() {
		var gh domain.GameHistory
		if err := rows.Scan(
			&gh.ID, &gh.GameID, &gh.PlayerID, &gh.OpponentID,
			&gh.Result, &gh.Reason, &gh.Moves, &gh.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &gh)
	}

	return result, rows.Err()
}

// PlayerStats - статистика игрока
type PlayerStats struct {
	PlayerID     string `json:"player_id"`
	TotalGames   int    `json:"total_games"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HazardLosses int    `json:"hazard_losses"`
}

func (r *GameHistoryRepository) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	stats := &PlayerStats{PlayerID: playerID}

	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) as total_games,
			COUNT(*) FILTER (WHERE result = 'win') as wins,
			COUNT(*) FILTER (WHERE result = 'lose') as losses,
			COUNT(*) FILTER (WHERE result = 'lose' AND reason = 'hazard') as hazard_losses
		 FROM game_history
		 WHERE player_id = $1`,
		playerID,
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses, &stats.HazardLosses)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
