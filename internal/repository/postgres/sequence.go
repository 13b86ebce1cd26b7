package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/repository"
)

type sequenceRepository struct {
	db *sql.DB
}

func NewSequenceRepository(db *sql.DB) repository.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the named counter atomically. Values are monotonic but
// gap-tolerant: a booking that fails after taking a number simply burns it.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO sequences (name, value) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
	          RETURNING value`
	var value int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	return value, err
}
