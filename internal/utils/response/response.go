// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every endpoint except the photo upload and the health probe answers with
// the same envelope:
//
//	{ "success": true,  "data": ..., "message": "..." }
//	{ "success": false, "error": "Alumno no encontrado" }
//
// Handlers never pick a status code for a failed service call themselves:
// WriteResult derives it from the error kind.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/alumnos-api/internal/service"
)

// Envelope is the body of every CRUD response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes data as JSON with the given status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called, headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps a client-facing error message into the envelope.
func GeneralError(err error) Envelope {
	return Envelope{Success: false, Error: err.Error()}
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusFor maps a service error kind to its HTTP status.
//
//	KindNotFound        → 404
//	KindInvalidArgument → 400
//	anything else       → 500
//
// ─────────────────────────────────────────────────────────────────────────────
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes a failed result. Internal errors are logged with their
// cause and answered with the generic message only.
func WriteError(w http.ResponseWriter, r *http.Request, e *service.Error) {
	status := StatusFor(e.Kind)
	msg := e.Message
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", e))
		msg = service.MsgInternal
	}
	WriteJSON(w, status, Envelope{Success: false, Error: msg})
}

// WriteResult writes res with successStatus on success, or the status
// derived from its error kind.
func WriteResult[T any](w http.ResponseWriter, r *http.Request, res service.Result[T], successStatus int) {
	if res.Err != nil {
		WriteError(w, r, res.Err)
		return
	}
	WriteJSON(w, successStatus, Envelope{Success: true, Data: res.Data, Message: res.Message})
}
