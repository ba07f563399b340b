package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/aanand-mishra/alumnos-api/internal/storage"
	"github.com/aanand-mishra/alumnos-api/internal/types"
)

var cursoColumns = []string{"id", "nombre", "descripcion", "duracion", "precio"}

func scanCurso(row scanner, c *types.Curso) error {
	return row.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Duracion, &c.Precio)
}

func (s *Store) listCursos(ctx context.Context, op string, q sq.SelectBuilder) ([]types.Curso, error) {
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	cursos := make([]types.Curso, 0)
	for rows.Next() {
		var c types.Curso
		if err := scanCurso(rows, &c); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		cursos = append(cursos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}
	return cursos, nil
}

func (s *Store) ListCursos(ctx context.Context) ([]types.Curso, error) {
	return s.listCursos(ctx, "ListCursos",
		s.sb.Select(cursoColumns...).From("cursos").OrderBy("id"))
}

func (s *Store) ListCursosByDuracion(ctx context.Context, min, max int) ([]types.Curso, error) {
	return s.listCursos(ctx, "ListCursosByDuracion",
		s.sb.Select(cursoColumns...).
			From("cursos").
			Where("duracion BETWEEN ? AND ?", min, max).
			OrderBy("duracion", "id"))
}

func (s *Store) GetCurso(ctx context.Context, id int64) (types.Curso, error) {
	row, err := s.queryRow(ctx, s.sb.Select(cursoColumns...).From("cursos").Where(sq.Eq{"id": id}))
	if err != nil {
		return types.Curso{}, fmt.Errorf("GetCurso: %w", err)
	}
	var c types.Curso
	if err := scanCurso(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Curso{}, fmt.Errorf("curso %d: %w", id, storage.ErrNotFound)
		}
		return types.Curso{}, fmt.Errorf("GetCurso: scan: %w", err)
	}
	return c, nil
}

func (s *Store) CreateCurso(ctx context.Context, in types.CursoInput) (types.Curso, error) {
	c := storage.NewCurso(in)
	q := s.sb.Insert("cursos").
		Columns(cursoColumns[1:]...).
		Values(c.Nombre, c.Descripcion, c.Duracion, c.Precio).
		Suffix("RETURNING " + strings.Join(cursoColumns, ", "))

	row, err := s.queryRow(ctx, q)
	if err != nil {
		return types.Curso{}, fmt.Errorf("CreateCurso: %w", err)
	}
	var created types.Curso
	if err := scanCurso(row, &created); err != nil {
		return types.Curso{}, fmt.Errorf("CreateCurso: insert: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateCurso(ctx context.Context, id int64, in types.CursoInput) (types.Curso, error) {
	prev, err := s.GetCurso(ctx, id)
	if err != nil {
		return types.Curso{}, err
	}
	c := storage.MergeCurso(prev, in)

	q := s.sb.Update("cursos").
		Set("nombre", c.Nombre).
		Set("descripcion", c.Descripcion).
		Set("duracion", c.Duracion).
		Set("precio", c.Precio).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(cursoColumns, ", "))

	row, err := s.queryRow(ctx, q)
	if err != nil {
		return types.Curso{}, fmt.Errorf("UpdateCurso: %w", err)
	}
	var updated types.Curso
	if err := scanCurso(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Curso{}, fmt.Errorf("curso %d: %w", id, storage.ErrNotFound)
		}
		return types.Curso{}, fmt.Errorf("UpdateCurso: exec: %w", err)
	}
	return updated, nil
}

func (s *Store) DeleteCurso(ctx context.Context, id int64) (types.Curso, error) {
	q := s.sb.Delete("cursos").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(cursoColumns, ", "))

	row, err := s.queryRow(ctx, q)
	if err != nil {
		return types.Curso{}, fmt.Errorf("DeleteCurso: %w", err)
	}
	var deleted types.Curso
	if err := scanCurso(row, &deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Curso{}, fmt.Errorf("curso %d: %w", id, storage.ErrNotFound)
		}
		return types.Curso{}, fmt.Errorf("DeleteCurso: exec: %w", err)
	}
	return deleted, nil
}
