// Package storage defines the repository contracts every database backend
// must satisfy. Services depend only on these interfaces, so a backend is
// chosen once in main.go (sqlite, postgres or memory) and tests can pass
// the in-memory one.
//
// Repositories issue single statements and apply no business rules. A
// lookup that matches nothing returns an error wrapping ErrNotFound; any
// driver error is wrapped and propagated unchanged.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/alumnos-api/internal/types"
)

// ErrNotFound is returned (wrapped) when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// AlumnoStorage is the alumnos repository.
type AlumnoStorage interface {
	// ListAlumnos returns every alumno joined with its curso, ordered by id.
	ListAlumnos(ctx context.Context) ([]types.Alumno, error)

	// GetAlumno fetches one alumno by primary key.
	GetAlumno(ctx context.Context, id int64) (types.Alumno, error)

	// CreateAlumno inserts a new row and returns it as stored.
	CreateAlumno(ctx context.Context, in types.AlumnoInput) (types.Alumno, error)

	// UpdateAlumno overwrites the row, keeping the previous value of every
	// field left nil in the input, and returns the stored result.
	UpdateAlumno(ctx context.Context, id int64, in types.AlumnoInput) (types.Alumno, error)

	// DeleteAlumno removes the row and returns what was deleted.
	DeleteAlumno(ctx context.Context, id int64) (types.Alumno, error)

	// ListAlumnosByCurso returns the alumnos of a curso ordered by
	// apellido, nombre.
	ListAlumnosByCurso(ctx context.Context, cursoID int64) ([]types.Alumno, error)

	// CountAlumnosByCurso counts the alumnos referencing a curso.
	CountAlumnosByCurso(ctx context.Context, cursoID int64) (int, error)
}

// CursoStorage is the cursos repository.
type CursoStorage interface {
	ListCursos(ctx context.Context) ([]types.Curso, error)
	GetCurso(ctx context.Context, id int64) (types.Curso, error)
	CreateCurso(ctx context.Context, in types.CursoInput) (types.Curso, error)
	UpdateCurso(ctx context.Context, id int64, in types.CursoInput) (types.Curso, error)
	DeleteCurso(ctx context.Context, id int64) (types.Curso, error)

	// ListCursosByDuracion returns cursos with min <= duracion <= max,
	// ordered by duracion.
	ListCursosByDuracion(ctx context.Context, min, max int) ([]types.Curso, error)
}

// Storage is a complete backend.
type Storage interface {
	AlumnoStorage
	CursoStorage

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection pool.
	Close() error
}
