// Package sqlite opens the SQLite backend.
//
// The blank import below registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/aanand-mishra/alumnos-api/internal/storage/sqlstore"

	_ "github.com/mattn/go-sqlite3"
)

// schema is idempotent and runs on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cursos (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre      TEXT    NOT NULL,
		descripcion TEXT    NOT NULL DEFAULT '',
		duracion    INTEGER NOT NULL DEFAULT 0,
		precio      REAL    NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS alumnos (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre           TEXT    NOT NULL,
		apellido         TEXT    NOT NULL,
		email            TEXT,
		fecha_nacimiento DATE,
		hace_deportes    BOOLEAN NOT NULL DEFAULT 0,
		id_curso         INTEGER NOT NULL REFERENCES cursos (id),
		imagen           TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alumnos_id_curso ON alumnos (id_curso)`,
}

// New opens the SQLite database at path (":memory:" works too), creates
// the tables if they do not exist yet and returns a ready-to-use store.
func New(ctx context.Context, path string) (*sqlstore.Store, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps an
	// in-memory database alive and shared across queries.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
		}
	}

	return sqlstore.New(db, sq.Question), nil
}

// dsn enables foreign keys on path, keeping any query parameters it
// already carries.
func dsn(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}
