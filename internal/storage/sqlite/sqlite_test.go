package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/alumnos-api/internal/storage"
	"github.com/aanand-mishra/alumnos-api/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s, err := New(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestNewIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/alumnos.db"

	s, err := New(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestDSN(t *testing.T) {
	tests := []struct{ in, want string }{
		{"storage/alumnos.db", "storage/alumnos.db?_foreign_keys=on"},
		{":memory:", ":memory:?_foreign_keys=on"},
		{"file:alumnos.db?cache=shared", "file:alumnos.db?cache=shared&_foreign_keys=on"},
		{"alumnos.db?_foreign_keys=off", "alumnos.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dsn(tt.in), tt.in)
	}
}

func TestNewKeepsQueryParameters(t *testing.T) {
	path := t.TempDir() + "/alumnos.db?_busy_timeout=5000"

	s, err := New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	// Foreign keys are still enforced.
	_, err = s.DB().ExecContext(context.Background(),
		`INSERT INTO alumnos (nombre, apellido, id_curso) VALUES ('Ana', 'Pérez', 999)`)
	assert.Error(t, err)
}
