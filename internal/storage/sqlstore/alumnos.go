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

var alumnoColumns = []string{
	"id", "nombre", "apellido", "email", "fecha_nacimiento", "hace_deportes", "id_curso", "imagen",
}

func qualified(table string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = table + "." + c
	}
	return out
}

func scanAlumno(row scanner, a *types.Alumno, extra ...any) error {
	dest := []any{
		&a.ID,
		&a.Nombre,
		&a.Apellido,
		&a.Email,
		&a.FechaNacimiento,
		&a.HaceDeportes,
		&a.IDCurso,
		&a.Imagen,
	}
	return row.Scan(append(dest, extra...)...)
}

func (s *Store) ListAlumnos(ctx context.Context) ([]types.Alumno, error) {
	q := s.sb.
		Select(append(qualified("alumnos", alumnoColumns), "cursos.id", "cursos.nombre")...).
		From("alumnos").
		Join("cursos ON alumnos.id_curso = cursos.id").
		OrderBy("alumnos.id")

	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ListAlumnos: query: %w", err)
	}
	defer rows.Close()

	alumnos := make([]types.Alumno, 0)
	for rows.Next() {
		var a types.Alumno
		var curso types.CursoRef
		if err := scanAlumno(rows, &a, &curso.ID, &curso.Nombre); err != nil {
			return nil, fmt.Errorf("ListAlumnos: scan row: %w", err)
		}
		a.Curso = &curso
		alumnos = append(alumnos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAlumnos: rows iteration: %w", err)
	}
	return alumnos, nil
}

func (s *Store) GetAlumno(ctx context.Context, id int64) (types.Alumno, error) {
	row, err := s.queryRow(ctx, s.sb.Select(alumnoColumns...).From("alumnos").Where(sq.Eq{"id": id}))
	if err != nil {
		return types.Alumno{}, fmt.Errorf("GetAlumno: %w", err)
	}

	var a types.Alumno
	if err := scanAlumno(row, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Alumno{}, fmt.Errorf("alumno %d: %w", id, storage.ErrNotFound)
		}
		return types.Alumno{}, fmt.Errorf("GetAlumno: scan: %w", err)
	}
	return a, nil
}

func (s *Store) CreateAlumno(ctx context.Context, in types.AlumnoInput) (types.Alumno, error) {
	a := storage.NewAlumno(in)
	q := s.sb.Insert("alumnos").
		Columns(alumnoColumns[1:]...).
		Values(a.Nombre, a.Apellido, a.Email, a.FechaNacimiento, a.HaceDeportes, a.IDCurso, a.Imagen).
		Suffix("RETURNING " + strings.Join(alumnoColumns, ", "))

	row, err := s.queryRow(ctx, q)
	if err != nil {
		return types.Alumno{}, fmt.Errorf("CreateAlumno: %w", err)
	}
	var created types.Alumno
	if err := scanAlumno(row, &created); err != nil {
		return types.Alumno{}, fmt.Errorf("CreateAlumno: insert: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateAlumno(ctx context.Context, id int64, in types.AlumnoInput) (types.Alumno, error) {
	prev, err := s.GetAlumno(ctx, id)
	if err != nil {
		return types.Alumno{}, err
	}
	a := storage.MergeAlumno(prev, in)

	q := s.sb.Update("alumnos").
		SetMap(map[string]any{
			"nombre":           a.Nombre,
			"apellido":         a.Apellido,
			"email":            a.Email,
			"fecha_nacimiento": a.FechaNacimiento,
			"hace_deportes":    a.HaceDeportes,
			"id_curso":         a.IDCurso,
			"imagen":           a.Imagen,
		}).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(alumnoColumns, ", "))

	row, err := s.queryRow(ctx, q)
	if err != nil {
		return types.Alumno{}, fmt.Errorf("UpdateAlumno: %w", err)
	}
	var updated types.Alumno
	if err := scanAlumno(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Alumno{}, fmt.Errorf("alumno %d: %w", id, storage.ErrNotFound)
		}
		return types.Alumno{}, fmt.Errorf("UpdateAlumno: exec: %w", err)
	}
	return updated, nil
}

func (s *Store) DeleteAlumno(ctx context.Context, id int64) (types.Alumno, error) {
	q := s.sb.Delete("alumnos").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(alumnoColumns, ", "))

	row, err := s.queryRow(ctx, q)
	if err != nil {
		return types.Alumno{}, fmt.Errorf("DeleteAlumno: %w", err)
	}
	var deleted types.Alumno
	if err := scanAlumno(row, &deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Alumno{}, fmt.Errorf("alumno %d: %w", id, storage.ErrNotFound)
		}
		return types.Alumno{}, fmt.Errorf("DeleteAlumno: exec: %w", err)
	}
	return deleted, nil
}

func (s *Store) ListAlumnosByCurso(ctx context.Context, cursoID int64) ([]types.Alumno, error) {
	q := s.sb.Select(alumnoColumns...).
		From("alumnos").
		Where(sq.Eq{"id_curso": cursoID}).
		OrderBy("apellido", "nombre")

	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ListAlumnosByCurso: query: %w", err)
	}
	defer rows.Close()

	alumnos := make([]types.Alumno, 0)
	for rows.Next() {
		var a types.Alumno
		if err := scanAlumno(rows, &a); err != nil {
			return nil, fmt.Errorf("ListAlumnosByCurso: scan row: %w", err)
		}
		alumnos = append(alumnos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAlumnosByCurso: rows iteration: %w", err)
	}
	return alumnos, nil
}

func (s *Store) CountAlumnosByCurso(ctx context.Context, cursoID int64) (int, error) {
	row, err := s.queryRow(ctx, s.sb.Select("COUNT(*)").From("alumnos").Where(sq.Eq{"id_curso": cursoID}))
	if err != nil {
		return 0, fmt.Errorf("CountAlumnosByCurso: %w", err)
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("CountAlumnosByCurso: scan: %w", err)
	}
	return n, nil
}
