package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/alumnos-api/internal/storage"
	"github.com/aanand-mishra/alumnos-api/internal/types"
	"github.com/aanand-mishra/alumnos-api/internal/utils/validation"
)

// ImageRemover deletes a stored image given its public URL. It must
// refuse files that were not uploaded for ownerID.
type ImageRemover interface {
	RemoveOwned(url, ownerID string) error
}

// Alumnos implements the alumno use cases.
type Alumnos struct {
	alumnos  storage.AlumnoStorage
	cursos   storage.CursoStorage
	images   ImageRemover
	validate *validator.Validate
}

// NewAlumnos returns the alumno service. images may be nil, in which case
// deleting an alumno leaves its image on disk.
func NewAlumnos(alumnos storage.AlumnoStorage, cursos storage.CursoStorage, images ImageRemover) *Alumnos {
	return &Alumnos{
		alumnos:  alumnos,
		cursos:   cursos,
		images:   images,
		validate: newValidator(),
	}
}

func (s *Alumnos) GetAll(ctx context.Context) Result[[]types.Alumno] {
	alumnos, err := s.alumnos.ListAlumnos(ctx)
	if err != nil {
		return internal[[]types.Alumno](err)
	}
	return ok(alumnos, "Alumnos obtenidos exitosamente")
}

func (s *Alumnos) GetByID(ctx context.Context, id string) Result[types.Alumno] {
	alumnoID, valid := validation.ParseID(id)
	if !valid {
		return fail[types.Alumno](KindInvalidArgument, MsgAlumnoInvalidID)
	}
	res := s.find(ctx, alumnoID)
	if res.Err != nil {
		return res
	}
	return ok(res.Data, "Alumno obtenido exitosamente")
}

func (s *Alumnos) Create(ctx context.Context, in types.AlumnoInput) Result[types.Alumno] {
	in = normalizeAlumno(in)
	if err := s.validate.Struct(in); err != nil {
		return fail[types.Alumno](KindInvalidArgument, validationMessage(err))
	}
	if res := s.checkRefs(ctx, in); res.Err != nil {
		return res
	}

	created, err := s.alumnos.CreateAlumno(ctx, in)
	if err != nil {
		return internal[types.Alumno](err)
	}
	return ok(created, "Alumno creado exitosamente")
}

// Update applies the fields present in in. The alumno must exist before
// any field is validated.
func (s *Alumnos) Update(ctx context.Context, id string, in types.AlumnoInput) Result[types.Alumno] {
	alumnoID, valid := validation.ParseID(id)
	if !valid {
		return fail[types.Alumno](KindInvalidArgument, MsgAlumnoInvalidID)
	}
	if res := s.find(ctx, alumnoID); res.Err != nil {
		return res
	}

	in = normalizeAlumno(in)
	if fields := presentFields(&in); len(fields) > 0 {
		if err := s.validate.StructPartial(in, fields...); err != nil {
			return fail[types.Alumno](KindInvalidArgument, validationMessage(err))
		}
	}
	if res := s.checkRefs(ctx, in); res.Err != nil {
		return res
	}

	updated, err := s.alumnos.UpdateAlumno(ctx, alumnoID, in)
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Alumno](KindNotFound, MsgAlumnoNotFound)
	}
	if err != nil {
		return internal[types.Alumno](err)
	}
	return ok(updated, "Alumno actualizado exitosamente")
}

// Delete removes the alumno and then, best effort, its image. An imagen
// pointing at another alumno's upload is left alone.
func (s *Alumnos) Delete(ctx context.Context, id string) Result[types.Alumno] {
	alumnoID, valid := validation.ParseID(id)
	if !valid {
		return fail[types.Alumno](KindInvalidArgument, MsgAlumnoInvalidID)
	}

	deleted, err := s.alumnos.DeleteAlumno(ctx, alumnoID)
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Alumno](KindNotFound, MsgAlumnoNotFound)
	}
	if err != nil {
		return internal[types.Alumno](err)
	}

	if deleted.Imagen != nil && s.images != nil {
		if err := s.images.RemoveOwned(*deleted.Imagen, strconv.FormatInt(alumnoID, 10)); err != nil {
			slog.Warn("alumno image not removed", slog.Int64("id", alumnoID), slog.String("url", *deleted.Imagen), slog.String("error", err.Error()))
		}
	}
	return ok(deleted, "Alumno eliminado exitosamente")
}

// GetByGrupo lists the alumnos enrolled in a curso. An unknown curso
// yields an empty list.
func (s *Alumnos) GetByGrupo(ctx context.Context, grupoID string) Result[[]types.Alumno] {
	cursoID, valid := validation.ParseID(grupoID)
	if !valid {
		return fail[[]types.Alumno](KindInvalidArgument, MsgGrupoInvalidID)
	}

	alumnos, err := s.alumnos.ListAlumnosByCurso(ctx, cursoID)
	if err != nil {
		return internal[[]types.Alumno](err)
	}
	return ok(alumnos, "Alumnos del grupo obtenidos exitosamente")
}

// UpdateImagen points the alumno's imagen at url.
func (s *Alumnos) UpdateImagen(ctx context.Context, id string, url string) Result[types.Alumno] {
	alumnoID, valid := validation.ParseID(id)
	if !valid {
		return fail[types.Alumno](KindInvalidArgument, MsgAlumnoInvalidID)
	}
	if res := s.find(ctx, alumnoID); res.Err != nil {
		return res
	}

	updated, err := s.alumnos.UpdateAlumno(ctx, alumnoID, types.AlumnoInput{Imagen: &url})
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Alumno](KindNotFound, MsgAlumnoNotFound)
	}
	if err != nil {
		return internal[types.Alumno](err)
	}
	return ok(updated, "Imagen del alumno actualizada exitosamente")
}

func (s *Alumnos) find(ctx context.Context, id int64) Result[types.Alumno] {
	alumno, err := s.alumnos.GetAlumno(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Alumno](KindNotFound, MsgAlumnoNotFound)
	}
	if err != nil {
		return internal[types.Alumno](fmt.Errorf("get alumno %d: %w", id, err))
	}
	return ok(alumno, "")
}

// checkRefs validates the email format and that id_curso points at an
// existing curso. Both checks only run for fields that are present.
func (s *Alumnos) checkRefs(ctx context.Context, in types.AlumnoInput) Result[types.Alumno] {
	if in.Email != nil && !validation.IsEmail(*in.Email) {
		return fail[types.Alumno](KindInvalidArgument, MsgEmailInvalid)
	}
	if in.IDCurso == nil {
		return Result[types.Alumno]{Success: true}
	}

	_, err := s.cursos.GetCurso(ctx, *in.IDCurso)
	if errors.Is(err, storage.ErrNotFound) {
		return fail[types.Alumno](KindInvalidArgument, MsgCursoMissing)
	}
	if err != nil {
		return internal[types.Alumno](err)
	}
	return Result[types.Alumno]{Success: true}
}

func normalizeAlumno(in types.AlumnoInput) types.AlumnoInput {
	in.Nombre = trimmed(in.Nombre)
	in.Apellido = trimmed(in.Apellido)
	in.Email = trimmedOrNil(in.Email)
	in.Imagen = trimmedOrNil(in.Imagen)
	return in
}
