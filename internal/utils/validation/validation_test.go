package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntegerOrDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int64
		want int64
	}{
		{"42", 0, 42},
		{" 7 ", 0, 7},
		{"-3", 0, -3},
		{"abc", 9, 9},
		{"12abc", 9, 12},
		{"+5", 0, 5},
		{"-", 4, 4},
		{"", -1, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntegerOrDefault(tt.in, tt.def), "input %q", tt.in)
	}
}

func TestParseInt(t *testing.T) {
	n, ok := ParseInt("0")
	assert.True(t, ok)
	assert.Equal(t, int64(0), n)

	_, ok = ParseInt("diez")
	assert.False(t, ok)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("15")
	assert.True(t, ok)
	assert.Equal(t, int64(15), id)

	for _, in := range []string{"0", "-1", "abc", "1.5", "12abc", ""} {
		_, ok := ParseID(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestDateOrDefault(t *testing.T) {
	def := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	got := DateOrDefault("2005-03-14", def)
	assert.Equal(t, time.Date(2005, 3, 14, 0, 0, 0, 0, time.UTC), got)

	got = DateOrDefault("2005-03-14T10:30:00Z", def)
	assert.Equal(t, 10, got.Hour())

	assert.Equal(t, def, DateOrDefault("14/03/2005", def))
}

func TestStringOrDefault(t *testing.T) {
	s := "valor"
	assert.Equal(t, "valor", StringOrDefault(&s, "otro"))
	assert.Equal(t, "otro", StringOrDefault(nil, "otro"))
}

func TestBooleanOrDefault(t *testing.T) {
	assert.True(t, BooleanOrDefault("TRUE", false))
	assert.False(t, BooleanOrDefault("false", true))
	assert.True(t, BooleanOrDefault("si", true))
	assert.False(t, BooleanOrDefault("1", false))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana.perez@escuela.edu.ar"))
	assert.True(t, IsEmail("a_b-c@dominio.com"))
	assert.False(t, IsEmail("sin-arroba.com"))
	assert.False(t, IsEmail("ana@dominio"))
	assert.False(t, IsEmail("ana perez@dominio.com"))
	assert.False(t, IsEmail(""))
}
