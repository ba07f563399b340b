package storage

import (
	"github.com/aanand-mishra/alumnos-api/internal/types"
	"github.com/aanand-mishra/alumnos-api/internal/utils/validation"
)

// MergeAlumno applies in on top of prev. Nil fields keep the previous value.
func MergeAlumno(prev types.Alumno, in types.AlumnoInput) types.Alumno {
	out := prev
	out.Curso = nil
	out.Nombre = validation.StringOrDefault(in.Nombre, prev.Nombre)
	out.Apellido = validation.StringOrDefault(in.Apellido, prev.Apellido)
	if in.Email != nil {
		out.Email = in.Email
	}
	if in.FechaNacimiento != nil {
		out.FechaNacimiento = in.FechaNacimiento
	}
	if in.HaceDeportes != nil {
		out.HaceDeportes = bool(*in.HaceDeportes)
	}
	if in.IDCurso != nil {
		out.IDCurso = *in.IDCurso
	}
	if in.Imagen != nil {
		out.Imagen = in.Imagen
	}
	return out
}

// NewAlumno builds the row inserted for a creation payload.
func NewAlumno(in types.AlumnoInput) types.Alumno {
	return MergeAlumno(types.Alumno{}, in)
}

// MergeCurso applies in on top of prev. Nil fields keep the previous value.
func MergeCurso(prev types.Curso, in types.CursoInput) types.Curso {
	out := prev
	out.Nombre = validation.StringOrDefault(in.Nombre, prev.Nombre)
	out.Descripcion = validation.StringOrDefault(in.Descripcion, prev.Descripcion)
	if in.Duracion != nil {
		out.Duracion = *in.Duracion
	}
	if in.Precio != nil {
		out.Precio = *in.Precio
	}
	return out
}

// NewCurso builds the row inserted for a creation payload.
func NewCurso(in types.CursoInput) types.Curso {
	return MergeCurso(types.Curso{}, in)
}
