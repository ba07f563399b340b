package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/alumnos-api/internal/storage/memory"
	"github.com/aanand-mishra/alumnos-api/internal/types"
)

func ptr[T any](v T) *T { return &v }

// spyStore counts the calls that must never happen on invalid input.
type spyStore struct {
	*memory.Store
	getAlumno  int
	byDuracion int
}

func (s *spyStore) GetAlumno(ctx context.Context, id int64) (types.Alumno, error) {
	s.getAlumno++
	return s.Store.GetAlumno(ctx, id)
}

func (s *spyStore) ListCursosByDuracion(ctx context.Context, min, max int) ([]types.Curso, error) {
	s.byDuracion++
	return s.Store.ListCursosByDuracion(ctx, min, max)
}

type fakeRemover struct {
	removed []string
	owners  []string
	err     error
}

func (f *fakeRemover) RemoveOwned(url, ownerID string) error {
	f.removed = append(f.removed, url)
	f.owners = append(f.owners, ownerID)
	return f.err
}

func newServices(t *testing.T) (*Alumnos, *Cursos, *spyStore, *fakeRemover) {
	t.Helper()
	store := &spyStore{Store: memory.New()}
	images := &fakeRemover{}
	return NewAlumnos(store, store, images), NewCursos(store, store), store, images
}

func seedCurso(t *testing.T, cursos *Cursos) types.Curso {
	t.Helper()
	res := cursos.Create(context.Background(), types.CursoInput{
		Nombre:   ptr("Programación"),
		Duracion: ptr(10),
		Precio:   ptr(100.0),
	})
	require.True(t, res.Success, "%v", res.Err)
	return res.Data
}

func TestAlumnosCreate(t *testing.T) {
	alumnos, cursos, _, _ := newServices(t)
	ctx := context.Background()
	curso := seedCurso(t, cursos)

	res := alumnos.Create(ctx, types.AlumnoInput{
		Nombre:   ptr("  Ana "),
		Apellido: ptr("Pérez"),
		Email:    ptr("ana@escuela.edu.ar"),
		IDCurso:  &curso.ID,
	})
	require.True(t, res.Success, "%v", res.Err)
	assert.Equal(t, "Alumno creado exitosamente", res.Message)
	assert.Equal(t, "Ana", res.Data.Nombre)
	assert.Equal(t, curso.ID, res.Data.IDCurso)

	t.Run("missing apellido", func(t *testing.T) {
		res := alumnos.Create(ctx, types.AlumnoInput{Nombre: ptr("Ana"), IDCurso: &curso.ID})
		require.NotNil(t, res.Err)
		assert.Equal(t, KindInvalidArgument, res.Err.Kind)
		assert.Contains(t, res.Err.Message, "apellido")
	})

	t.Run("blank nombre", func(t *testing.T) {
		res := alumnos.Create(ctx, types.AlumnoInput{Nombre: ptr("   "), Apellido: ptr("P"), IDCurso: &curso.ID})
		require.NotNil(t, res.Err)
		assert.Equal(t, KindInvalidArgument, res.Err.Kind)
		assert.Contains(t, res.Err.Message, "nombre")
	})

	t.Run("bad email", func(t *testing.T) {
		res := alumnos.Create(ctx, types.AlumnoInput{
			Nombre: ptr("Ana"), Apellido: ptr("P"), Email: ptr("no-es-email"), IDCurso: &curso.ID,
		})
		require.NotNil(t, res.Err)
		assert.Equal(t, MsgEmailInvalid, res.Err.Message)
	})

	t.Run("empty email is dropped", func(t *testing.T) {
		res := alumnos.Create(ctx, types.AlumnoInput{
			Nombre: ptr("Ana"), Apellido: ptr("P"), Email: ptr(" "), IDCurso: &curso.ID,
		})
		require.True(t, res.Success, "%v", res.Err)
		assert.Nil(t, res.Data.Email)
	})

	t.Run("unknown curso", func(t *testing.T) {
		res := alumnos.Create(ctx, types.AlumnoInput{Nombre: ptr("Ana"), Apellido: ptr("P"), IDCurso: ptr(int64(99))})
		require.NotNil(t, res.Err)
		assert.Equal(t, KindInvalidArgument, res.Err.Kind)
		assert.Equal(t, MsgCursoMissing, res.Err.Message)
	})
}

func TestAlumnosInvalidIDNeverReachesStorage(t *testing.T) {
	alumnos, _, store, _ := newServices(t)
	ctx := context.Background()

	for _, id := range []string{"abc", "0", "-4", "1.5"} {
		res := alumnos.GetByID(ctx, id)
		require.NotNil(t, res.Err)
		assert.Equal(t, KindInvalidArgument, res.Err.Kind)
		assert.Equal(t, MsgAlumnoInvalidID, res.Err.Message)

		assert.Equal(t, MsgAlumnoInvalidID, alumnos.Update(ctx, id, types.AlumnoInput{}).Err.Message)
		assert.Equal(t, MsgAlumnoInvalidID, alumnos.Delete(ctx, id).Err.Message)
		assert.Equal(t, MsgAlumnoInvalidID, alumnos.UpdateImagen(ctx, id, "/static/alumnos/x.jpg").Err.Message)
	}
	assert.Zero(t, store.getAlumno)

	res := alumnos.GetByGrupo(ctx, "grupo")
	require.NotNil(t, res.Err)
	assert.Equal(t, MsgGrupoInvalidID, res.Err.Message)
}

func TestAlumnosNotFound(t *testing.T) {
	alumnos, _, _, _ := newServices(t)
	ctx := context.Background()

	for _, res := range []Result[types.Alumno]{
		alumnos.GetByID(ctx, "7"),
		alumnos.Update(ctx, "7", types.AlumnoInput{Nombre: ptr("x")}),
		alumnos.Delete(ctx, "7"),
		alumnos.UpdateImagen(ctx, "7", "/static/alumnos/x.jpg"),
	} {
		require.NotNil(t, res.Err)
		assert.Equal(t, KindNotFound, res.Err.Kind)
		assert.Equal(t, MsgAlumnoNotFound, res.Err.Message)
	}
}

func TestAlumnosUpdatePartial(t *testing.T) {
	alumnos, cursos, _, _ := newServices(t)
	ctx := context.Background()
	curso := seedCurso(t, cursos)

	created := alumnos.Create(ctx, types.AlumnoInput{
		Nombre: ptr("Ana"), Apellido: ptr("Pérez"), Email: ptr("ana@escuela.com"), IDCurso: &curso.ID,
	})
	require.True(t, created.Success)

	res := alumnos.Update(ctx, "1", types.AlumnoInput{Apellido: ptr("Gómez")})
	require.True(t, res.Success, "%v", res.Err)
	assert.Equal(t, "Ana", res.Data.Nombre)
	assert.Equal(t, "Gómez", res.Data.Apellido)
	require.NotNil(t, res.Data.Email)
	assert.Equal(t, "ana@escuela.com", *res.Data.Email)

	res = alumnos.Update(ctx, "1", types.AlumnoInput{Nombre: ptr("")})
	require.NotNil(t, res.Err)
	assert.Equal(t, KindInvalidArgument, res.Err.Kind)

	res = alumnos.Update(ctx, "1", types.AlumnoInput{IDCurso: ptr(int64(42))})
	require.NotNil(t, res.Err)
	assert.Equal(t, MsgCursoMissing, res.Err.Message)
}

func TestAlumnosDeleteRemovesImage(t *testing.T) {
	alumnos, cursos, _, images := newServices(t)
	ctx := context.Background()
	curso := seedCurso(t, cursos)

	require.True(t, alumnos.Create(ctx, types.AlumnoInput{Nombre: ptr("Ana"), Apellido: ptr("P"), IDCurso: &curso.ID}).Success)
	require.True(t, alumnos.Create(ctx, types.AlumnoInput{Nombre: ptr("Luis"), Apellido: ptr("R"), IDCurso: &curso.ID}).Success)

	img := alumnos.UpdateImagen(ctx, "1", "/static/alumnos/000001-x.jpg")
	require.True(t, img.Success, "%v", img.Err)
	assert.Equal(t, "/static/alumnos/000001-x.jpg", *img.Data.Imagen)

	res := alumnos.Delete(ctx, "1")
	require.True(t, res.Success, "%v", res.Err)
	assert.Equal(t, []string{"/static/alumnos/000001-x.jpg"}, images.removed)
	assert.Equal(t, []string{"1"}, images.owners)

	// A failing removal does not fail the delete.
	images.err = errors.New("disk gone")
	res = alumnos.Delete(ctx, "2")
	require.True(t, res.Success)
	assert.Len(t, images.removed, 1)
}

func TestAlumnosGetByGrupo(t *testing.T) {
	alumnos, cursos, _, _ := newServices(t)
	ctx := context.Background()
	curso := seedCurso(t, cursos)
	require.True(t, alumnos.Create(ctx, types.AlumnoInput{Nombre: ptr("Ana"), Apellido: ptr("P"), IDCurso: &curso.ID}).Success)

	res := alumnos.GetByGrupo(ctx, "1")
	require.True(t, res.Success)
	assert.Len(t, res.Data, 1)

	res = alumnos.GetByGrupo(ctx, "55")
	require.True(t, res.Success)
	assert.Empty(t, res.Data)
}

func TestCursosValidation(t *testing.T) {
	_, cursos, _, _ := newServices(t)
	ctx := context.Background()

	res := cursos.Create(ctx, types.CursoInput{Descripcion: ptr("sin nombre")})
	require.NotNil(t, res.Err)
	assert.Equal(t, KindInvalidArgument, res.Err.Kind)
	assert.Contains(t, res.Err.Message, "nombre")

	res = cursos.Create(ctx, types.CursoInput{Nombre: ptr("Arte"), Duracion: ptr(0)})
	require.NotNil(t, res.Err)
	assert.Contains(t, res.Err.Message, "duracion")

	res = cursos.Create(ctx, types.CursoInput{Nombre: ptr("Arte"), Precio: ptr(-1.0)})
	require.NotNil(t, res.Err)
	assert.Contains(t, res.Err.Message, "precio")

	assert.Equal(t, MsgCursoInvalidID, cursos.GetByID(ctx, "x").Err.Message)
	assert.Equal(t, MsgCursoNotFound, cursos.GetByID(ctx, "3").Err.Message)
	assert.Equal(t, MsgCursoNotFound, cursos.Update(ctx, "3", types.CursoInput{}).Err.Message)
}

func TestCursosUpdatePartial(t *testing.T) {
	_, cursos, _, _ := newServices(t)
	ctx := context.Background()
	curso := seedCurso(t, cursos)

	res := cursos.Update(ctx, "1", types.CursoInput{Precio: ptr(250.0)})
	require.True(t, res.Success, "%v", res.Err)
	assert.Equal(t, curso.Nombre, res.Data.Nombre)
	assert.Equal(t, curso.Duracion, res.Data.Duracion)
	assert.InDelta(t, 250.0, res.Data.Precio, 0.001)
}

func TestCursosDeleteWithAlumnos(t *testing.T) {
	alumnos, cursos, _, _ := newServices(t)
	ctx := context.Background()
	curso := seedCurso(t, cursos)
	require.True(t, alumnos.Create(ctx, types.AlumnoInput{Nombre: ptr("Ana"), Apellido: ptr("P"), IDCurso: &curso.ID}).Success)

	res := cursos.Delete(ctx, "1")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindInvalidArgument, res.Err.Kind)
	assert.Equal(t, MsgCursoHasAlumnos, res.Err.Message)
	assert.True(t, cursos.GetByID(ctx, "1").Success)

	require.True(t, alumnos.Delete(ctx, "1").Success)
	res = cursos.Delete(ctx, "1")
	require.True(t, res.Success, "%v", res.Err)
	assert.Equal(t, "Curso eliminado exitosamente", res.Message)
}

func TestCursosGetByDuracion(t *testing.T) {
	_, cursos, store, _ := newServices(t)
	ctx := context.Background()
	seedCurso(t, cursos)

	res := cursos.GetByDuracion(ctx, "10", "5")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindInvalidArgument, res.Err.Kind)
	assert.Equal(t, MsgDuracionOutOfOrder, res.Err.Message)

	res = cursos.GetByDuracion(ctx, "diez", "5")
	require.NotNil(t, res.Err)
	assert.Equal(t, MsgDuracionInvalid, res.Err.Message)

	res = cursos.GetByDuracion(ctx, "", "5")
	require.NotNil(t, res.Err)
	assert.Equal(t, MsgDuracionInvalid, res.Err.Message)
	assert.Zero(t, store.byDuracion)

	res = cursos.GetByDuracion(ctx, "5", "10")
	require.True(t, res.Success)
	assert.Len(t, res.Data, 1)
	assert.Equal(t, 1, store.byDuracion)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("driver: bad connection")
	res := internal[int](cause)
	require.NotNil(t, res.Err)
	assert.ErrorIs(t, res.Err, cause)
	assert.Equal(t, MsgInternal, res.Err.Message)
	assert.Equal(t, "internal", res.Err.Kind.String())
}
