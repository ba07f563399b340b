package alumno

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/aanand-mishra/alumnos-api/internal/service"
	"github.com/aanand-mishra/alumnos-api/internal/upload"
	"github.com/aanand-mishra/alumnos-api/internal/utils/response"
)

// Category is the upload directory holding alumno photos.
const Category = "alumnos"

// FormField is the multipart field carrying the image.
const FormField = "image"

// multipartSlack leaves room for the multipart framing around the file.
const multipartSlack = 64 << 10

var (
	errNoFile      = errors.New("No se proporcionó ninguna imagen")
	errNotImage    = errors.New("El archivo debe ser una imagen")
	errTooLarge    = errors.New("La imagen supera el tamaño máximo permitido")
	errUnreadable  = errors.New("No se pudo leer la imagen")
	errGenericFail = errors.New(service.MsgInternal)
)

// Photo is the body of a successful upload.
type Photo struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// ─────────────────────────────────────────────────────────────────────────────
// UploadPhoto handles POST /api/alumnos/{id}/photo (multipart field "image").
//
// The upload walks these states:
//
//	Received → SubjectVerified → FileValidated → Persisted → RecordUpdated → Committed
//
// and a failure after Persisted removes the stored file (RolledBack).
// Nothing is written to disk unless the alumno exists and the file is an
// image.
//
// Success response (201 Created):
//
//	{ "id": 1, "filename": "000001-20240517090307045-foto.png", "url": "/static/alumnos/000001-..." }
//
// Error responses:
//
//	400 Bad Request       : bad id, no file, or not an image
//	404 Not Found         : no alumno with that id
//	413 Entity Too Large  : larger than the store ceiling (5 MiB by default)
//	500 Internal          : storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func UploadPhoto(svc *service.Alumnos, store *upload.Store, metrics *upload.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")
		log := slog.With(slog.String("id", id), slog.String("category", Category))
		log.Info("uploading alumno photo")

		reject := func(at upload.State, status int, err error) {
			metrics.Rejected(ctx, Category, at)
			log.Info("upload rejected", slog.String("state", at.String()), slog.String("reason", err.Error()))
			response.WriteJSON(w, status, response.GeneralError(err))
		}

		// ── Received ──────────────────────────────────────────────────
		maxSize := store.MaxSize()
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartSlack)
		parseErr := r.ParseMultipartForm(maxSize)
		var tooBig *http.MaxBytesError
		if errors.As(parseErr, &tooBig) {
			reject(upload.Received, http.StatusRequestEntityTooLarge, errTooLarge)
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		// ── SubjectVerified ───────────────────────────────────────────
		subject := svc.GetByID(ctx, id)
		if subject.Err != nil {
			metrics.Rejected(ctx, Category, upload.Received)
			response.WriteError(w, r, subject.Err)
			return
		}
		subjectID := strconv.FormatInt(subject.Data.ID, 10)

		// ── FileValidated ─────────────────────────────────────────────
		if parseErr != nil {
			reject(upload.SubjectVerified, http.StatusBadRequest, errNoFile)
			return
		}
		file, header, err := r.FormFile(FormField)
		if err != nil {
			reject(upload.SubjectVerified, http.StatusBadRequest, errNoFile)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			reject(upload.SubjectVerified, http.StatusBadRequest, errUnreadable)
			return
		}
		if len(data) == 0 {
			reject(upload.SubjectVerified, http.StatusBadRequest, errNoFile)
			return
		}
		if int64(len(data)) > maxSize {
			reject(upload.SubjectVerified, http.StatusRequestEntityTooLarge, errTooLarge)
			return
		}
		mimeType, ok := sniffImage(data)
		if !ok {
			log.Info("declared type not honoured",
				slog.String("declared", header.Header.Get("Content-Type")), slog.String("detected", mimeType))
			reject(upload.SubjectVerified, http.StatusBadRequest, errNotImage)
			return
		}

		// ── Persisted ─────────────────────────────────────────────────
		filename := upload.Filename(subjectID, header.Filename, mimeType, time.Now())
		path, err := store.Save(Category, filename, data)
		if err != nil {
			metrics.Rejected(ctx, Category, upload.FileValidated)
			log.Error("failed to store upload", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errGenericFail))
			return
		}
		log.Debug("upload persisted", slog.String("path", path), slog.Int("bytes", len(data)))

		// ── RecordUpdated ─────────────────────────────────────────────
		url := store.PublicURL(Category, filename)
		updated := svc.UpdateImagen(ctx, subjectID, url)
		if updated.Err != nil {
			// ── RolledBack ────────────────────────────────────────────
			if err := store.Remove(Category, filename); err != nil {
				metrics.RollbackFailed(ctx, Category)
				log.Error("rollback failed, orphaned upload",
					slog.String("path", path), slog.String("error", err.Error()))
			} else {
				metrics.RolledBack(ctx, Category)
				log.Warn("upload rolled back", slog.String("path", path), slog.String("state", upload.RolledBack.String()))
			}
			response.WriteError(w, r, updated.Err)
			return
		}

		// ── Committed ─────────────────────────────────────────────────
		metrics.Committed(ctx, Category)
		log.Info("upload committed", slog.String("url", url))
		response.WriteJSON(w, http.StatusCreated, Photo{ID: updated.Data.ID, Filename: filename, URL: url})
	}
}

// sniffImage detects the type of data from its bytes. The declared
// Content-Type is ignored so a page labelled image/png is still refused.
func sniffImage(data []byte) (string, bool) {
	detected := mimetype.Detect(data).String()
	return detected, upload.IsImage(detected)
}
