// Package request decodes request bodies.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodySize caps JSON request bodies.
const MaxBodySize = 1 << 20

// ErrEmptyBody is returned when the client sent no body at all.
var ErrEmptyBody = errors.New("El cuerpo de la solicitud está vacío")

// DecodeJSON decodes the body of r into v. The returned error is safe to
// show to the client.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodySize)
	err := json.NewDecoder(body).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	if err != nil {
		return fmt.Errorf("JSON inválido: %w", err)
	}
	return nil
}
