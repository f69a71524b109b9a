package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventStore is the persistence surface the handlers need.
type EventStore interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]Event, error)
	Add(ctx context.Context, event Event) error
}

// Store persists events in PostgreSQL through a shared connection pool.
// Individual connections are acquired and released per statement; the
// store itself is constructed once and injected into the server.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool for the given DSN and verifies it with
// a ping.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config error: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgx connect error: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgx ping error: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Init idempotently creates the events table.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY,
    date DATE NOT NULL,
    title TEXT NOT NULL,
    description TEXT
)
`)
	return err
}

// List returns all events ordered ascending by date.
func (s *Store) List(ctx context.Context) ([]Event, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, date, title, description
FROM events
ORDER BY date ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e    Event
			date time.Time
			desc *string
		)
		if err := rows.Scan(&e.ID, &date, &e.Title, &desc); err != nil {
			return nil, err
		}
		e.Date = date.Format(DateLayout)
		if desc != nil {
			e.Description = *desc
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Add inserts one event with the caller-supplied id. A duplicate id fails
// with the primary key violation, surfaced to clients as a generic 500.
func (s *Store) Add(ctx context.Context, event Event) error {
	date, err := time.Parse(DateLayout, event.Date)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO events (id, date, title, description)
VALUES ($1, $2, $3, $4)
`, event.ID, date, event.Title, event.Description)
	return err
}
