package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	qb "github.com/lapenya/quiniela/internal/platform/querybuilder"
)

type registryInsertModel struct {
	Username  string `db:"username"`
	Round     int    `db:"round"`
	CreatedAt int64  `db:"created_at"`
}

// RegistryRepository is the duplicate-submission guard. Register is a single
// conditional insert against the (username, round) primary key, so exactly
// one of any set of concurrent claims wins.
type RegistryRepository struct {
	db *sqlx.DB
}

func NewRegistryRepository(db *sqlx.DB) *RegistryRepository {
	return &RegistryRepository{db: db}
}

func (r *RegistryRepository) Exists(ctx context.Context, username string, round int) (bool, error) {
	query, args, err := qb.Select("1").
		From("bet_registry").
		Where(
			qb.Eq("username", username),
			qb.Eq("round", round),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build registry exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check registry %s round %d: %w", username, round, err)
	}
	return true, nil
}

func (r *RegistryRepository) Register(ctx context.Context, username string, round int) (bool, error) {
	model := registryInsertModel{
		Username:  username,
		Round:     round,
		CreatedAt: time.Now().UTC().Unix(),
	}
	query, args, err := qb.InsertModel("bet_registry", model, "ON CONFLICT (username, round) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build registry insert query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("register %s round %d: %w", username, round, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("register rows affected: %w", err)
	}
	return affected > 0, nil
}

// Release drops a claim whose submission never reached the open slot, so the
// player can retry the round. Absent rows delete to nothing.
func (r *RegistryRepository) Release(ctx context.Context, username string, round int) error {
	const query = "DELETE FROM bet_registry WHERE username = $1 AND round = $2"
	if _, err := r.db.ExecContext(ctx, query, username, round); err != nil {
		return fmt.Errorf("release registry %s round %d: %w", username, round, err)
	}
	return nil
}
