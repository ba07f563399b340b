// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/alumnos-api/internal/storage"
	"github.com/aanand-mishra/alumnos-api/internal/types"
)

func ptr[T any](v T) *T { return &v }

// Run exercises a fresh backend returned by newStore for each subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("CursoLifecycle", func(t *testing.T) { testCursoLifecycle(t, newStore(t)) })
	t.Run("CursosByDuracion", func(t *testing.T) { testCursosByDuracion(t, newStore(t)) })
	t.Run("AlumnoLifecycle", func(t *testing.T) { testAlumnoLifecycle(t, newStore(t)) })
	t.Run("AlumnosJoinedAndByCurso", func(t *testing.T) { testAlumnosJoined(t, newStore(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newStore(t)) })
}

func testCursoLifecycle(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	created, err := s.CreateCurso(ctx, types.CursoInput{
		Nombre:      ptr("Programación"),
		Descripcion: ptr("Introducción a Go"),
		Duracion:    ptr(12),
		Precio:      ptr(1500.5),
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Programación", created.Nombre)
	assert.Equal(t, 12, created.Duracion)
	assert.InDelta(t, 1500.5, created.Precio, 0.001)

	// Only precio is sent: every other field keeps its stored value.
	updated, err := s.UpdateCurso(ctx, created.ID, types.CursoInput{Precio: ptr(2000.0)})
	require.NoError(t, err)
	assert.Equal(t, "Programación", updated.Nombre)
	assert.Equal(t, "Introducción a Go", updated.Descripcion)
	assert.Equal(t, 12, updated.Duracion)
	assert.InDelta(t, 2000.0, updated.Precio, 0.001)

	got, err := s.GetCurso(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	// The update answers with the row as stored, including any rounding
	// the column applies.
	updated, err = s.UpdateCurso(ctx, created.ID, types.CursoInput{Precio: ptr(19.999)})
	require.NoError(t, err)
	got, err = s.GetCurso(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, got, updated)

	deleted, err := s.DeleteCurso(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.GetCurso(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testCursosByDuracion(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	for _, d := range []int{20, 4, 8, 12} {
		_, err := s.CreateCurso(ctx, types.CursoInput{Nombre: ptr("c"), Duracion: ptr(d)})
		require.NoError(t, err)
	}

	cursos, err := s.ListCursosByDuracion(ctx, 5, 12)
	require.NoError(t, err)
	require.Len(t, cursos, 2)
	assert.Equal(t, 8, cursos[0].Duracion)
	assert.Equal(t, 12, cursos[1].Duracion)

	all, err := s.ListCursos(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Less(t, all[0].ID, all[3].ID)
}

func testAlumnoLifecycle(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	curso, err := s.CreateCurso(ctx, types.CursoInput{Nombre: ptr("Matemática")})
	require.NoError(t, err)

	nacimiento := types.NewDate(time.Date(2005, 3, 14, 0, 0, 0, 0, time.UTC))
	sports := types.Flag(true)
	created, err := s.CreateAlumno(ctx, types.AlumnoInput{
		Nombre:          ptr("Ana"),
		Apellido:        ptr("Pérez"),
		Email:           ptr("ana@escuela.edu.ar"),
		FechaNacimiento: &nacimiento,
		HaceDeportes:    &sports,
		IDCurso:         &curso.ID,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Ana", created.Nombre)
	require.NotNil(t, created.Email)
	assert.Equal(t, "ana@escuela.edu.ar", *created.Email)
	require.NotNil(t, created.FechaNacimiento)
	assert.Equal(t, "2005-03-14", created.FechaNacimiento.String())
	assert.True(t, created.HaceDeportes)
	assert.Nil(t, created.Imagen)

	updated, err := s.UpdateAlumno(ctx, created.ID, types.AlumnoInput{Imagen: ptr("/static/alumnos/x.jpg")})
	require.NoError(t, err)
	assert.Equal(t, "Pérez", updated.Apellido)
	require.NotNil(t, updated.Imagen)
	assert.Equal(t, "/static/alumnos/x.jpg", *updated.Imagen)

	got, err := s.GetAlumno(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2005-03-14", got.FechaNacimiento.String())
	assert.Equal(t, updated.Imagen, got.Imagen)
	assert.True(t, got.HaceDeportes)
	assert.Equal(t, got, updated)

	n, err := s.CountAlumnosByCurso(ctx, curso.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	deleted, err := s.DeleteAlumno(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, updated.Imagen, deleted.Imagen)

	_, err = s.GetAlumno(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testAlumnosJoined(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a, err := s.CreateCurso(ctx, types.CursoInput{Nombre: ptr("Arte")})
	require.NoError(t, err)
	b, err := s.CreateCurso(ctx, types.CursoInput{Nombre: ptr("Biología")})
	require.NoError(t, err)

	for _, in := range []types.AlumnoInput{
		{Nombre: ptr("Zoe"), Apellido: ptr("Gómez"), IDCurso: &a.ID},
		{Nombre: ptr("Ana"), Apellido: ptr("Gómez"), IDCurso: &a.ID},
		{Nombre: ptr("Luis"), Apellido: ptr("Álvarez"), IDCurso: &b.ID},
	} {
		_, err := s.CreateAlumno(ctx, in)
		require.NoError(t, err)
	}

	all, err := s.ListAlumnos(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Zoe", all[0].Nombre)
	require.NotNil(t, all[0].Curso)
	assert.Equal(t, "Arte", all[0].Curso.Nombre)
	assert.Equal(t, "Biología", all[2].Curso.Nombre)

	byCurso, err := s.ListAlumnosByCurso(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byCurso, 2)
	assert.Equal(t, "Ana", byCurso[0].Nombre)
	assert.Equal(t, "Zoe", byCurso[1].Nombre)

	empty, err := s.ListAlumnosByCurso(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func testNotFound(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	_, err := s.GetAlumno(ctx, 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.UpdateAlumno(ctx, 404, types.AlumnoInput{Nombre: ptr("x")})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.DeleteAlumno(ctx, 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetCurso(ctx, 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.UpdateCurso(ctx, 404, types.CursoInput{Nombre: ptr("x")})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.DeleteCurso(ctx, 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, s.Ping(ctx))
}
