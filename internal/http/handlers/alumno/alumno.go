// Package alumno contains the HTTP handlers of the Alumno resource.
//
// Handlers follow the closure / factory pattern: a factory receives the
// dependencies once at startup and returns the http.HandlerFunc that runs
// on every request.
//
//	router.HandleFunc("GET /api/alumnos/{id}", alumno.GetByID(svc))
//
// Handlers only adapt HTTP to the service: they read path, query and
// body, call one service method and let response.WriteResult choose the
// status code from the result.
package alumno

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/alumnos-api/internal/service"
	"github.com/aanand-mishra/alumnos-api/internal/types"
	"github.com/aanand-mishra/alumnos-api/internal/utils/request"
	"github.com/aanand-mishra/alumnos-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/alumnos
// Returns every alumno joined with the name of its curso.
//
// Success response (200 OK):
//
//	{ "success": true, "data": [ { "id": 1, ..., "curso": { "id": 2, "nombre": "Arte" } } ],
//	  "message": "Alumnos obtenidos exitosamente" }
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(svc *service.Alumnos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all alumnos")
		response.WriteResult(w, r, svc.GetAll(r.Context()), http.StatusOK)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/alumnos/{id}
//
// Error responses:
//
//	400 Bad Request: id is not a positive integer
//	404 Not Found  : no alumno with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(svc *service.Alumnos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an alumno", slog.String("id", id))
		response.WriteResult(w, r, svc.GetByID(r.Context(), id), http.StatusOK)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/alumnos
//
// Request body (JSON):
//
//	{ "nombre": "Ana", "apellido": "Pérez", "email": "ana@escuela.edu.ar",
//	  "fecha_nacimiento": "2005-03-14", "hace_deportes": 1, "id_curso": 2 }
//
// Success response (201 Created): the stored alumno inside the envelope.
// ─────────────────────────────────────────────────────────────────────────────
func New(svc *service.Alumnos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an alumno")

		var in types.AlumnoInput
		if err := request.DecodeJSON(w, r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		res := svc.Create(r.Context(), in)
		if res.Success {
			slog.Info("alumno created", slog.Int64("id", res.Data.ID))
		}
		response.WriteResult(w, r, res, http.StatusCreated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/alumnos/{id}
// Fields left out of the body keep their stored value.
// ─────────────────────────────────────────────────────────────────────────────
func Update(svc *service.Alumnos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating an alumno", slog.String("id", id))

		// An empty body changes nothing. A malformed one is reported only
		// once the id is known to exist, so missing ids still get 404.
		var in types.AlumnoInput
		if err := request.DecodeJSON(w, r, &in); err != nil && !errors.Is(err, request.ErrEmptyBody) {
			if res := svc.GetByID(r.Context(), id); !res.Success {
				response.WriteResult(w, r, res, http.StatusOK)
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		response.WriteResult(w, r, svc.Update(r.Context(), id, in), http.StatusOK)
	}
}

// Delete handles DELETE /api/alumnos/{id} and answers with the deleted
// record.
func Delete(svc *service.Alumnos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting an alumno", slog.String("id", id))

		res := svc.Delete(r.Context(), id)
		if res.Success {
			slog.Info("alumno deleted", slog.String("id", id))
		}
		response.WriteResult(w, r, res, http.StatusOK)
	}
}

// GetByGrupo handles GET /api/alumnos/grupo/{grupoId}. The group is the
// alumno's curso.
func GetByGrupo(svc *service.Alumnos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grupoID := r.PathValue("grupoId")
		slog.Info("getting alumnos by grupo", slog.String("grupoId", grupoID))
		response.WriteResult(w, r, svc.GetByGrupo(r.Context(), grupoID), http.StatusOK)
	}
}
