package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Violation es un problema puntual de un campo del request.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error junta todas las violaciones de un request, no solo la primera.
// Es un error de cliente (400), nunca un fault del servidor.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Add(field, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Message: message})
}

// Err devuelve nil si no se acumuló ninguna violación.
func (e *Error) Err() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// As extrae el *Error de una cadena de errores, si lo hay.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
