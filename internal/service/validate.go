package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages match the payload.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// presentFields lists the struct fields of in (a pointer-field payload)
// that are non-nil, for validator.StructPartial.
func presentFields(in any) []string {
	v := reflect.Indirect(reflect.ValueOf(in))
	t := v.Type()
	fields := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.Pointer && !f.IsNil() {
			fields = append(fields, t.Field(i).Name)
		}
	}
	return fields
}

// validationMessage turns validator output into one readable sentence per
// violated rule.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("El campo %s es obligatorio", e.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe tener al menos %s caracteres", e.Field(), e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("El campo %s no puede superar %s caracteres", e.Field(), e.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe ser mayor que %s", e.Field(), e.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe ser mayor o igual a %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("El campo %s no es válido", e.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}

// trimmed returns a trimmed copy of s.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// trimmedOrNil is trimmed, dropping values left empty.
func trimmedOrNil(s *string) *string {
	s = trimmed(s)
	if s == nil || *s == "" {
		return nil
	}
	return s
}
