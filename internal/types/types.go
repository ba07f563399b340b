// Package types holds the shared data structures (models) used across
// the application. Handlers, services and every storage backend import
// types without depending on each other.
package types

// Alumno is a student record.
//
// Email, FechaNacimiento and Imagen are nullable columns and therefore
// pointers. Curso is only filled by the joined listing.
type Alumno struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	Email           *string   `json:"email"`
	FechaNacimiento *Date     `json:"fecha_nacimiento"`
	HaceDeportes    bool      `json:"hace_deportes"`
	IDCurso         int64     `json:"id_curso"`
	Imagen          *string   `json:"imagen"`
	Curso           *CursoRef `json:"curso,omitempty"`
}

// CursoRef is the slice of a Curso embedded in the joined alumnos listing.
type CursoRef struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Curso is a course record. Duracion is expressed in weeks.
type Curso struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Duracion    int     `json:"duracion"`
	Precio      float64 `json:"precio"`
}

// AlumnoInput is the request payload for creating and updating an alumno.
//
// Every field is a pointer so that an update can tell "omitted" apart from
// "set to the zero value": omitted fields keep the stored value.
//
// The validate tags describe a creation payload; updates only validate the
// fields that were actually sent.
type AlumnoInput struct {
	Nombre          *string `json:"nombre"           validate:"required,min=1,max=100"`
	Apellido        *string `json:"apellido"         validate:"required,min=1,max=100"`
	Email           *string `json:"email"            validate:"omitempty,max=254"`
	FechaNacimiento *Date   `json:"fecha_nacimiento"`
	HaceDeportes    *Flag   `json:"hace_deportes"`
	IDCurso         *int64  `json:"id_curso"         validate:"required,gt=0"`
	Imagen          *string `json:"imagen"           validate:"omitempty,max=512"`
}

// CursoInput is the request payload for creating and updating a curso.
type CursoInput struct {
	Nombre      *string  `json:"nombre"      validate:"required,min=1,max=100"`
	Descripcion *string  `json:"descripcion" validate:"omitempty,max=1000"`
	Duracion    *int     `json:"duracion"    validate:"omitempty,gt=0"`
	Precio      *float64 `json:"precio"      validate:"omitempty,gte=0"`
}
