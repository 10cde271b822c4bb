package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

// ScoreRepo keeps searched root scores in the root_scores table.
type ScoreRepo struct {
	DB *sql.DB
}

func NewScoreRepo(db *sql.DB) *ScoreRepo {
	return &ScoreRepo{DB: db}
}

func (r *ScoreRepo) Get(ctx context.Context, key string) ([]bot.ColumnScore, bool, error) {
	var raw []byte
	query := `UPDATE root_scores SET hits = hits + 1 WHERE cache_key = $1 RETURNING scores`
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read root scores: %w", err)
	}

	scores, err := decodeScores(raw)
	if err != nil {
		return nil, false, err
	}
	return scores, true, nil
}

func (r *ScoreRepo) Set(ctx context.Context, key string, scores []bot.ColumnScore) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal root scores: %w", err)
	}

	query := `
	INSERT INTO root_scores (cache_key, scores)
	VALUES ($1, $2)
	ON CONFLICT (cache_key) DO UPDATE SET
		scores = EXCLUDED.scores,
		created_at = NOW();
	`
	if _, err := r.DB.ExecContext(ctx, query, key, raw); err != nil {
		return fmt.Errorf("failed to upsert root scores: %w", err)
	}
	return nil
}

func decodeScores(raw []byte) ([]bot.ColumnScore, error) {
	var scores []bot.ColumnScore
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode root scores: %w", err)
	}
	return scores, nil
}

// CleanupOldScores deletes entries older than daysToKeep days.
func (r *ScoreRepo) CleanupOldScores(ctx context.Context, daysToKeep int) (int64, error) {
	query := `DELETE FROM root_scores WHERE created_at < NOW() - make_interval(days => $1)`
	res, err := r.DB.ExecContext(ctx, query, daysToKeep)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old root scores: %w", err)
	}
	return res.RowsAffected()
}
