package usecase

import (
	"strings"

	"github.com/jhoicas/solicitudes-api/internal/application/dto"
)

// ValidationError agrupa errores de validación con alcance por campo, para
// que el boundary los exponga uno a uno al cliente.
type ValidationError struct {
	Fields []dto.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(msgs, "; ")
}
