package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store is the data access layer for command statistics.
type Store interface {
	// RecordCommand inserts one row for a dispatched command.
	RecordCommand(ctx context.Context, name string, group bool) error
	// CommandCount returns the total number of recorded commands.
	CommandCount(ctx context.Context) (int64, error)
	// TrimBefore deletes records older than cutoff and returns how many.
	TrimBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type sqlStore struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewStore creates a Store backed by the given database.
func NewStore(db *sqlx.DB, log *slog.Logger) Store {
	return &sqlStore{db: db, log: log.With("component", "store")}
}

func (s *sqlStore) RecordCommand(ctx context.Context, name string, group bool) error {
	kind := ChatKindPrivate
	if group {
		kind = ChatKindGroup
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO command_events (name, chat_kind, created_at) VALUES (?, ?, ?)`,
		name, kind, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record command: %w", err)
	}
	return nil
}

func (s *sqlStore) CommandCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM command_events`); err != nil {
		return 0, fmt.Errorf("failed to count commands: %w", err)
	}
	return count, nil
}

func (s *sqlStore) TrimBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM command_events WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to trim command events: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read trim result: %w", err)
	}
	s.log.DebugContext(ctx, "Trimmed command events", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}
