// Package router wires every route of the API to its handler and wraps the
// mux in the middleware chain.
package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/afero"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aanand-mishra/alumnos-api/internal/http/handlers/alumno"
	"github.com/aanand-mishra/alumnos-api/internal/http/handlers/curso"
	"github.com/aanand-mishra/alumnos-api/internal/http/handlers/health"
	"github.com/aanand-mishra/alumnos-api/internal/http/middleware"
	"github.com/aanand-mishra/alumnos-api/internal/service"
	"github.com/aanand-mishra/alumnos-api/internal/upload"
	"github.com/aanand-mishra/alumnos-api/internal/utils/response"
)

// Deps is everything the routes need.
type Deps struct {
	Alumnos *service.Alumnos
	Cursos  *service.Cursos
	Uploads *upload.Store
	Metrics *upload.Metrics
	DB      health.Pinger
	Logger  *slog.Logger
	CORS    middleware.CORSOptions
}

// New returns the root handler.
//
// Route table:
//
//	GET    /api/alumnos                  → list alumnos with their curso
//	POST   /api/alumnos                  → create an alumno
//	GET    /api/alumnos/{id}             → get one alumno
//	PUT    /api/alumnos/{id}             → update an alumno
//	DELETE /api/alumnos/{id}             → delete an alumno and its photo
//	GET    /api/alumnos/grupo/{grupoId}  → alumnos of a curso
//	POST   /api/alumnos/{id}/photo       → upload the alumno photo
//	GET    /api/cursos                   → list cursos
//	POST   /api/cursos                   → create a curso
//	GET    /api/cursos/duracion          → cursos within a duration range
//	GET    /api/cursos/{id}              → get one curso
//	PUT    /api/cursos/{id}              → update a curso
//	DELETE /api/cursos/{id}              → delete a curso without alumnos
//	GET    /api/health                   → liveness probe
//	GET    /static/..., /uploads/...     → stored uploads
func New(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/alumnos", alumno.GetList(d.Alumnos))
	mux.HandleFunc("POST /api/alumnos", alumno.New(d.Alumnos))
	mux.HandleFunc("GET /api/alumnos/{id}", alumno.GetByID(d.Alumnos))
	mux.HandleFunc("PUT /api/alumnos/{id}", alumno.Update(d.Alumnos))
	mux.HandleFunc("DELETE /api/alumnos/{id}", alumno.Delete(d.Alumnos))
	mux.HandleFunc("GET /api/alumnos/grupo/{grupoId}", alumno.GetByGrupo(d.Alumnos))
	mux.HandleFunc("POST /api/alumnos/{id}/photo", alumno.UploadPhoto(d.Alumnos, d.Uploads, d.Metrics))

	mux.HandleFunc("GET /api/cursos", curso.GetList(d.Cursos))
	mux.HandleFunc("POST /api/cursos", curso.New(d.Cursos))
	mux.HandleFunc("GET /api/cursos/duracion", curso.GetByDuracion(d.Cursos))
	mux.HandleFunc("GET /api/cursos/{id}", curso.GetByID(d.Cursos))
	mux.HandleFunc("PUT /api/cursos/{id}", curso.Update(d.Cursos))
	mux.HandleFunc("DELETE /api/cursos/{id}", curso.Delete(d.Cursos))

	mux.HandleFunc("GET /api/health", health.New(d.DB, nil))

	files := staticFiles(d.Uploads)
	mux.Handle("GET "+upload.PublicPrefix, http.StripPrefix(strings.TrimSuffix(upload.PublicPrefix, "/"), files))
	mux.Handle("GET "+upload.LegacyPrefix, http.StripPrefix(strings.TrimSuffix(upload.LegacyPrefix, "/"), files))

	mux.HandleFunc("/", NotFound)

	return middleware.Chain(
		otelhttp.NewHandler(mux, "alumnos-api"),
		middleware.Recover(log),
		middleware.Logger(log),
		middleware.Cors(d.CORS),
	)
}

// NotFound answers unknown routes with the JSON envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusNotFound, response.Envelope{
		Success: false,
		Error:   "Ruta no encontrada: " + r.Method + " " + r.URL.Path,
	})
}

// staticFiles serves the upload root without directory listings.
func staticFiles(store *upload.Store) http.Handler {
	fs := afero.NewHttpFs(store.Fs()).Dir(store.Root())
	files := http.FileServer(fs)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
