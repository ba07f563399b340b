// Package sqlstore implements storage.Storage on top of database/sql.
//
// Statements are built with squirrel so the same repository code runs on
// sqlite ("?" placeholders) and postgres ("$1" placeholders). The sqlite
// and postgres packages open the connection, create the tables and hand
// the *sql.DB to New.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Store is the SQL-backed storage.Storage.
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// New wraps an open connection pool. format must match the driver:
// sq.Question for sqlite, sq.Dollar for postgres.
func New(db *sql.DB, format sq.PlaceholderFormat) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// DB exposes the underlying pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) queryRow(ctx context.Context, b sq.Sqlizer) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.db.QueryRowContext(ctx, query, args...), nil
}

func (s *Store) query(ctx context.Context, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}
