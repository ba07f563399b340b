package types

import (
	"encoding/json"
	"fmt"

	"github.com/aanand-mishra/alumnos-api/internal/utils/validation"
)

// Flag is a boolean that also accepts the loose encodings clients send:
// true/false, "true"/"false" in any case, and 0/1.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*f = Flag(v)
	case float64:
		if v != 0 && v != 1 {
			return fmt.Errorf("hace_deportes must be 0 or 1, got %v", v)
		}
		*f = v == 1
	case string:
		if n, ok := validation.ParseInt(v); ok && (n == 0 || n == 1) {
			*f = n == 1
			return nil
		}
		// Sentinel defaults detect strings that are neither "true" nor "false".
		if validation.BooleanOrDefault(v, true) != validation.BooleanOrDefault(v, false) {
			return fmt.Errorf("hace_deportes must be true or false, got %q", v)
		}
		*f = Flag(validation.BooleanOrDefault(v, false))
	case nil:
	default:
		return fmt.Errorf("hace_deportes must be a boolean")
	}
	return nil
}
