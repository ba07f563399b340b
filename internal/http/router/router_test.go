package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/aanand-mishra/alumnos-api/internal/http/middleware"
	"github.com/aanand-mishra/alumnos-api/internal/service"
	"github.com/aanand-mishra/alumnos-api/internal/storage/memory"
	"github.com/aanand-mishra/alumnos-api/internal/upload"
)

func newServer(t *testing.T) (*httptest.Server, afero.Fs) {
	t.Helper()
	db := memory.New()
	fs := afero.NewMemMapFs()
	uploads := upload.NewStore(fs, "uploads")
	metrics, err := upload.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	h := New(Deps{
		Alumnos: service.NewAlumnos(db, db, uploads),
		Cursos:  service.NewCursos(db, db),
		Uploads: uploads,
		Metrics: metrics,
		DB:      db,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		CORS:    middleware.CORSOptions{AllowOrigins: []string{"*"}},
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, fs
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestRoutes(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/cursos", `{"nombre":"Arte","duracion":4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/alumnos", `{"nombre":"Ana","apellido":"Pérez","id_curso":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/api/alumnos", http.StatusOK},
		{http.MethodGet, "/api/alumnos/1", http.StatusOK},
		{http.MethodGet, "/api/alumnos/abc", http.StatusBadRequest},
		{http.MethodGet, "/api/alumnos/9", http.StatusNotFound},
		{http.MethodPut, "/api/alumnos/9", http.StatusNotFound},
		{http.MethodDelete, "/api/alumnos/abc", http.StatusBadRequest},
		{http.MethodGet, "/api/alumnos/grupo/1", http.StatusOK},
		{http.MethodGet, "/api/alumnos/grupo/abc", http.StatusBadRequest},
		{http.MethodGet, "/api/cursos", http.StatusOK},
		{http.MethodGet, "/api/cursos/1", http.StatusOK},
		{http.MethodGet, "/api/cursos/duracion?minDuracion=1&maxDuracion=5", http.StatusOK},
		{http.MethodGet, "/api/cursos/duracion?minDuracion=10&maxDuracion=5", http.StatusBadRequest},
		{http.MethodDelete, "/api/cursos/1", http.StatusBadRequest},
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/nada", http.StatusNotFound},
		{http.MethodGet, "/static/alumnos/missing.jpg", http.StatusNotFound},
	}
	for _, tt := range tests {
		body := ""
		if tt.method == http.MethodPut {
			body = `{"nombre":"x"}`
		}
		resp, _ := do(t, tt.method, srv.URL+tt.path, body)
		assert.Equal(t, tt.status, resp.StatusCode, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	}
}

func TestUnknownRouteIsJSON(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/no/existe", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "/no/existe")
}

func TestUploadServedFromStatic(t *testing.T) {
	srv, fs := newServer(t)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/cursos", `{"nombre":"Arte"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, http.MethodPost, srv.URL+"/api/alumnos", `{"nombre":"Ana","apellido":"P","id_curso":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "cara.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	upResp, err := http.Post(srv.URL+"/api/alumnos/1/photo", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer upResp.Body.Close()
	require.Equal(t, http.StatusCreated, upResp.StatusCode)

	var photo struct {
		ID       int64  `json:"id"`
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	require.NoError(t, json.NewDecoder(upResp.Body).Decode(&photo))

	for _, prefix := range []string{"/static/", "/uploads/"} {
		url := srv.URL + prefix + "alumnos/" + photo.Filename
		got, err := http.Get(url)
		require.NoError(t, err)
		data, err := io.ReadAll(got.Body)
		got.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, got.StatusCode, url)
		assert.Equal(t, png, data)
	}

	// Deleting the alumno removes its photo.
	resp, _ = do(t, http.MethodDelete, fmt.Sprintf("%s/api/alumnos/%d", srv.URL, photo.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exists, err := afero.Exists(fs, "uploads/alumnos/"+photo.Filename)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/alumnos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://front.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
}
