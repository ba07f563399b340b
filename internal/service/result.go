// Package service holds the business rules of alumnos and cursos.
//
// Services are the only layer that turns storage errors and invalid input
// into a Result. Handlers never look at storage errors and never compare
// message strings: they switch on Error.Kind.
package service

import "fmt"

// Kind classifies a failed Result.
type Kind int

const (
	// KindInternal covers anything unexpected: driver, filesystem, bugs.
	KindInternal Kind = iota
	// KindInvalidArgument means the caller sent something malformed.
	KindInvalidArgument
	// KindNotFound means the referenced entity does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Messages returned to clients.
const (
	MsgAlumnoNotFound     = "Alumno no encontrado"
	MsgAlumnoInvalidID    = "ID de alumno inválido"
	MsgGrupoInvalidID     = "ID de grupo inválido"
	MsgCursoNotFound      = "Curso no encontrado"
	MsgCursoInvalidID     = "ID de curso inválido"
	MsgCursoMissing       = "El curso indicado no existe"
	MsgCursoHasAlumnos    = "No se puede eliminar un curso con alumnos asignados"
	MsgEmailInvalid       = "El email no tiene un formato válido"
	MsgDuracionInvalid    = "Duración mínima y máxima deben ser números válidos"
	MsgDuracionOutOfOrder = "Duración mínima no puede ser mayor que la máxima"
	MsgInternal           = "Error interno del servidor"
)

// Error is the failure side of a Result.
type Error struct {
	Kind Kind
	// Message is safe to show to the client.
	Message string
	// Err is the underlying cause. It is logged, never sent.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the envelope returned by every service method.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	Err     *Error
}

func ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func fail[T any](kind Kind, message string) Result[T] {
	return Result[T]{Err: &Error{Kind: kind, Message: message}}
}

func internal[T any](err error) Result[T] {
	return Result[T]{Err: &Error{Kind: KindInternal, Message: MsgInternal, Err: err}}
}
