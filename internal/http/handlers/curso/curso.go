// Package curso contains the HTTP handlers of the Curso resource. They
// mirror the alumno handlers; see that package for the handler pattern.
package curso

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/alumnos-api/internal/service"
	"github.com/aanand-mishra/alumnos-api/internal/types"
	"github.com/aanand-mishra/alumnos-api/internal/utils/request"
	"github.com/aanand-mishra/alumnos-api/internal/utils/response"
)

// GetList handles GET /api/cursos.
func GetList(svc *service.Cursos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all cursos")
		response.WriteResult(w, r, svc.GetAll(r.Context()), http.StatusOK)
	}
}

// GetByID handles GET /api/cursos/{id}.
func GetByID(svc *service.Cursos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a curso", slog.String("id", id))
		response.WriteResult(w, r, svc.GetByID(r.Context(), id), http.StatusOK)
	}
}

// New handles POST /api/cursos.
func New(svc *service.Cursos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a curso")

		var in types.CursoInput
		if err := request.DecodeJSON(w, r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		res := svc.Create(r.Context(), in)
		if res.Success {
			slog.Info("curso created", slog.Int64("id", res.Data.ID))
		}
		response.WriteResult(w, r, res, http.StatusCreated)
	}
}

// Update handles PUT /api/cursos/{id}.
func Update(svc *service.Cursos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a curso", slog.String("id", id))

		// An empty body changes nothing. A malformed one is reported only
		// once the id is known to exist, so missing ids still get 404.
		var in types.CursoInput
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

// Delete handles DELETE /api/cursos/{id}. A curso with alumnos is refused
// with 400.
func Delete(svc *service.Cursos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a curso", slog.String("id", id))
		response.WriteResult(w, r, svc.Delete(r.Context(), id), http.StatusOK)
	}
}

// GetByDuracion handles GET /api/cursos/duracion?minDuracion=&maxDuracion=.
func GetByDuracion(svc *service.Cursos) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		minDuracion, maxDuracion := q.Get("minDuracion"), q.Get("maxDuracion")
		slog.Info("getting cursos by duracion",
			slog.String("min", minDuracion), slog.String("max", maxDuracion))
		response.WriteResult(w, r, svc.GetByDuracion(r.Context(), minDuracion, maxDuracion), http.StatusOK)
	}
}
