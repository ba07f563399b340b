// Package memory is an in-process storage.Storage. It mirrors the SQL
// backends (ordering, fallback on update, ErrNotFound on miss) and is
// selected with storage.driver: memory.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aanand-mishra/alumnos-api/internal/storage"
	"github.com/aanand-mishra/alumnos-api/internal/types"
)

// Store keeps every row in maps guarded by a single mutex.
type Store struct {
	mu          sync.RWMutex
	alumnos     map[int64]types.Alumno
	cursos      map[int64]types.Curso
	nextAlumnos int64
	nextCursos  int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		alumnos: make(map[int64]types.Alumno),
		cursos:  make(map[int64]types.Curso),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, storage.ErrNotFound)
}

func (s *Store) ListAlumnos(context.Context) ([]types.Alumno, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Alumno, 0, len(s.alumnos))
	for _, a := range s.alumnos {
		c, ok := s.cursos[a.IDCurso]
		if !ok {
			continue
		}
		a.Curso = &types.CursoRef{ID: c.ID, Nombre: c.Nombre}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b types.Alumno) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *Store) GetAlumno(_ context.Context, id int64) (types.Alumno, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.alumnos[id]
	if !ok {
		return types.Alumno{}, notFound("alumno", id)
	}
	return a, nil
}

func (s *Store) CreateAlumno(_ context.Context, in types.AlumnoInput) (types.Alumno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.IDCurso != nil {
		if _, ok := s.cursos[*in.IDCurso]; !ok {
			return types.Alumno{}, fmt.Errorf("CreateAlumno: foreign key: curso %d does not exist", *in.IDCurso)
		}
	}
	s.nextAlumnos++
	a := storage.NewAlumno(in)
	a.ID = s.nextAlumnos
	s.alumnos[a.ID] = a
	return a, nil
}

func (s *Store) UpdateAlumno(_ context.Context, id int64, in types.AlumnoInput) (types.Alumno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.alumnos[id]
	if !ok {
		return types.Alumno{}, notFound("alumno", id)
	}
	a := storage.MergeAlumno(prev, in)
	s.alumnos[id] = a
	return a, nil
}

func (s *Store) DeleteAlumno(_ context.Context, id int64) (types.Alumno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alumnos[id]
	if !ok {
		return types.Alumno{}, notFound("alumno", id)
	}
	delete(s.alumnos, id)
	return a, nil
}

func (s *Store) ListAlumnosByCurso(_ context.Context, cursoID int64) ([]types.Alumno, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Alumno, 0)
	for _, a := range s.alumnos {
		if a.IDCurso == cursoID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b types.Alumno) int {
		return cmp.Or(cmp.Compare(a.Apellido, b.Apellido), cmp.Compare(a.Nombre, b.Nombre))
	})
	return out, nil
}

func (s *Store) CountAlumnosByCurso(_ context.Context, cursoID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.alumnos {
		if a.IDCurso == cursoID {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListCursos(context.Context) ([]types.Curso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Curso, 0, len(s.cursos))
	for _, c := range s.cursos {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b types.Curso) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *Store) ListCursosByDuracion(_ context.Context, min, max int) ([]types.Curso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Curso, 0)
	for _, c := range s.cursos {
		if c.Duracion >= min && c.Duracion <= max {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b types.Curso) int {
		return cmp.Or(cmp.Compare(a.Duracion, b.Duracion), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *Store) GetCurso(_ context.Context, id int64) (types.Curso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cursos[id]
	if !ok {
		return types.Curso{}, notFound("curso", id)
	}
	return c, nil
}

func (s *Store) CreateCurso(_ context.Context, in types.CursoInput) (types.Curso, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCursos++
	c := storage.NewCurso(in)
	c.ID = s.nextCursos
	s.cursos[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCurso(_ context.Context, id int64, in types.CursoInput) (types.Curso, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.cursos[id]
	if !ok {
		return types.Curso{}, notFound("curso", id)
	}
	c := storage.MergeCurso(prev, in)
	s.cursos[id] = c
	return c, nil
}

func (s *Store) DeleteCurso(_ context.Context, id int64) (types.Curso, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cursos[id]
	if !ok {
		return types.Curso{}, notFound("curso", id)
	}
	delete(s.cursos, id)
	return c, nil
}
