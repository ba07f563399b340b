// Package postgres opens the PostgreSQL backend through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/aanand-mishra/alumnos-api/internal/storage/sqlstore"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cursos (
		id          SERIAL PRIMARY KEY,
		nombre      TEXT          NOT NULL,
		descripcion TEXT          NOT NULL DEFAULT '',
		duracion    INTEGER       NOT NULL DEFAULT 0,
		precio      NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS alumnos (
		id               SERIAL PRIMARY KEY,
		nombre           TEXT    NOT NULL,
		apellido         TEXT    NOT NULL,
		email            TEXT,
		fecha_nacimiento DATE,
		hace_deportes    BOOLEAN NOT NULL DEFAULT FALSE,
		id_curso         INTEGER NOT NULL REFERENCES cursos (id),
		imagen           TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alumnos_id_curso ON alumnos (id_curso)`,
}

// New connects to dsn, e.g.
// "host=localhost port=5432 user=postgres password=secret dbname=escuela sslmode=disable",
// verifies the connection and creates the tables if needed.
func New(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("postgres.New: create schema: %w", err)
		}
	}

	return sqlstore.New(db, sq.Dollar), nil
}
