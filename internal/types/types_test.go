package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var in AlumnoInput
	require.NoError(t, json.Unmarshal([]byte(`{"fecha_nacimiento":"2005-03-14"}`), &in))
	require.NotNil(t, in.FechaNacimiento)
	assert.Equal(t, "2005-03-14", in.FechaNacimiento.String())

	require.NoError(t, json.Unmarshal([]byte(`{"fecha_nacimiento":"2005-03-14T22:10:00Z"}`), &in))
	assert.Equal(t, "2005-03-14", in.FechaNacimiento.String())

	in = AlumnoInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"fecha_nacimiento":null}`), &in))
	assert.Nil(t, in.FechaNacimiento)

	assert.Error(t, json.Unmarshal([]byte(`{"fecha_nacimiento":"14/03/2005"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"fecha_nacimiento":20050314}`), &in))

	d := NewDate(time.Date(2005, 3, 14, 18, 0, 0, 0, time.UTC))
	out, err := json.Marshal(Alumno{FechaNacimiento: &d})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fecha_nacimiento":"2005-03-14"`)
	assert.NotContains(t, string(out), `"curso"`)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2001-12-31"))
	assert.Equal(t, "2001-12-31", d.String())

	require.NoError(t, d.Scan([]byte("1999-01-02")))
	assert.Equal(t, "1999-01-02", d.String())

	require.NoError(t, d.Scan(time.Date(2010, 6, 7, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2010-06-07", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("ayer"))

	v, err := NewDate(time.Date(2010, 6, 7, 0, 0, 0, 0, time.UTC)).Value()
	require.NoError(t, err)
	assert.Equal(t, "2010-06-07", v)
}

func TestFlag(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`"TRUE"`, true},
		{`"False"`, false},
	}
	for _, tt := range tests {
		var f Flag
		require.NoError(t, json.Unmarshal([]byte(tt.in), &f), "input %s", tt.in)
		assert.Equal(t, tt.want, bool(f), "input %s", tt.in)
	}

	for _, bad := range []string{`2`, `"si"`, `[]`, `{}`} {
		var f Flag
		assert.Error(t, json.Unmarshal([]byte(bad), &f), "input %s", bad)
	}
}
