package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/alumnos-api/internal/storage"
	"github.com/aanand-mishra/alumnos-api/internal/types"
	"github.com/aanand-mishra/alumnos-api/internal/utils/validation"
)

// Cursos implements the curso use cases.
type Cursos struct {
	cursos   storage.CursoStorage
	alumnos  storage.AlumnoStorage
	validate *validator.Validate
}

// NewCursos returns the curso service. alumnos is used to refuse deleting
// a curso that still has alumnos.
func NewCursos(cursos storage.CursoStorage, alumnos storage.AlumnoStorage) *Cursos {
	return &Cursos{cursos: cursos, alumnos: alumnos, validate: newValidator()}
}

func (s *Cursos) GetAll(ctx context.Context) Result[[]types.Curso] {
	cursos, err := s.cursos.ListCursos(ctx)
	if err != nil {
		return internal[[]types.Curso](err)
	}
	return ok(cursos, "Cursos obtenidos exitosamente")
}

func (s *Cursos) GetByID(ctx context.Context, id string) Result[types.Curso] {
	cursoID, valid := validation.ParseID(id)
	if !valid {
		return fail[types.Curso](KindInvalidArgument, MsgCursoInvalidID)
	}
	res := s.find(ctx, cursoID)
	if res.Err != nil {
		return res
	}
	return ok(res.Data, "Curso obtenido exitosamente")
}

func (s *Cursos) Create(ctx context.Context, in types.CursoInput) Result[types.Curso] {
	in = normalizeCurso(in)
	if err := s.validate.Struct(in); err != nil {
		return fail[types.Curso](KindInvalidArgument, validationMessage(err))
	}

	created, err := s.cursos.CreateCurso(ctx, in)
	if err != nil {
		return internal[types.Curso](err)
	}
	return ok(created, "Curso creado exitosamente")
}

func (s *Cursos) Update(ctx context.Context, id string, in types.CursoInput) Result[types.Curso] {
	cursoID, valid := validation.ParseID(id)
	if !valid {
		return fail[types.Curso](KindInvalidArgument, MsgCursoInvalidID)
	}
	if res := s.find(ctx, cursoID); res.Err != nil {
		return res
	}

	in = normalizeCurso(in)
	if fields := presentFields(&in); len(fields) > 0 {
		if err := s.validate.StructPartial(in, fields...); err != nil {
			return fail[types.Curso](KindInvalidArgument, validationMessage(err))
		}
	}

	updated, err := s.cursos.UpdateCurso(ctx, cursoID, in)
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Curso](KindNotFound, MsgCursoNotFound)
	}
	if err != nil {
		return internal[types.Curso](err)
	}
	return ok(updated, "Curso actualizado exitosamente")
}

// Delete removes a curso with no alumnos assigned.
func (s *Cursos) Delete(ctx context.Context, id string) Result[types.Curso] {
	cursoID, valid := validation.ParseID(id)
	if !valid {
		return fail[types.Curso](KindInvalidArgument, MsgCursoInvalidID)
	}
	if res := s.find(ctx, cursoID); res.Err != nil {
		return res
	}

	n, err := s.alumnos.CountAlumnosByCurso(ctx, cursoID)
	if err != nil {
		return internal[types.Curso](err)
	}
	if n > 0 {
		return fail[types.Curso](KindInvalidArgument, MsgCursoHasAlumnos)
	}

	deleted, err := s.cursos.DeleteCurso(ctx, cursoID)
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Curso](KindNotFound, MsgCursoNotFound)
	}
	if err != nil {
		return internal[types.Curso](err)
	}
	return ok(deleted, "Curso eliminado exitosamente")
}

// GetByDuracion filters cursos by duration range. Both bounds are checked
// before storage is queried.
func (s *Cursos) GetByDuracion(ctx context.Context, minDuracion, maxDuracion string) Result[[]types.Curso] {
	lo, okMin := validation.ParseInt(minDuracion)
	hi, okMax := validation.ParseInt(maxDuracion)
	if !okMin || !okMax {
		return fail[[]types.Curso](KindInvalidArgument, MsgDuracionInvalid)
	}
	if lo > hi {
		return fail[[]types.Curso](KindInvalidArgument, MsgDuracionOutOfOrder)
	}

	cursos, err := s.cursos.ListCursosByDuracion(ctx, int(lo), int(hi))
	if err != nil {
		return internal[[]types.Curso](err)
	}
	return ok(cursos, "Cursos filtrados por duración obtenidos exitosamente")
}

func (s *Cursos) find(ctx context.Context, id int64) Result[types.Curso] {
	curso, err := s.cursos.GetCurso(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Curso](KindNotFound, MsgCursoNotFound)
	}
	if err != nil {
		return internal[types.Curso](fmt.Errorf("get curso %d: %w", id, err))
	}
	return ok(curso, "")
}

func normalizeCurso(in types.CursoInput) types.CursoInput {
	in.Nombre = trimmed(in.Nombre)
	in.Descripcion = trimmed(in.Descripcion)
	return in
}
