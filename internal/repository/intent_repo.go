package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IntentRepository struct {
	pool *pgxpool.Pool
}

func NewIntentRepository(pool *pgxpool.Pool) *IntentRepository {
	return &IntentRepository{pool: pool}
}

// Add records a declared interest. Duplicate (user, intent) pairs are a
// silent no-op; the return value reports whether a row actually landed.
func (r *IntentRepository) Add(ctx context.Context, userID string, intent string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO user_intents (user_id, intent)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, intent) DO NOTHING`,
		userID, intent)
	if err != nil {
		return false, fmt.Errorf("add user intent: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
