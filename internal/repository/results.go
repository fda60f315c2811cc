package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS match_results (
	id          BIGSERIAL PRIMARY KEY,
	room_id     TEXT NOT NULL,
	winner      TEXT NOT NULL DEFAULT '',
	draw        BOOLEAN NOT NULL DEFAULT FALSE,
	turns       INTEGER NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ResultRepository archives finished match outcomes.
type ResultRepository struct {
	db *DB
}

// NewResultRepository creates the repository and ensures its schema.
func NewResultRepository(ctx context.Context, db *DB) (*ResultRepository, error) {
	if _, err := db.pool.Exec(ctx, createResultsTable); err != nil {
		return nil, fmt.Errorf("ensure match_results table: %w", err)
	}
	return &ResultRepository{db: db}, nil
}

// RecordResult inserts one finished match. An empty winner with draw set
// records a double knockout.
func (r *ResultRepository) RecordResult(ctx context.Context, roomID, winnerID string, draw bool, turns int) error {
	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO match_results (room_id, winner, draw, turns) VALUES ($1, $2, $3, $4)`,
		roomID, winnerID, draw, turns,
	)
	if err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}

	r.db.logger.Debug("match result recorded",
		zap.String("room_id", roomID),
		zap.String("winner", winnerID),
		zap.Bool("draw", draw),
	)
	return nil
}
