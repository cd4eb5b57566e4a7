package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/solicitudes-api/internal/application/dto"
	"github.com/jhoicas/solicitudes-api/internal/application/usecase"
	"github.com/jhoicas/solicitudes-api/internal/domain"
)

// respondError traduce los errores de dominio al contrato HTTP. Todos los
// handlers de solicitudes y usuarios comparten la misma taxonomía, así que
// vive en un solo lugar.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Errors:  vErr.Fields,
		})
	}
	switch {
	case errors.Is(err, domain.ErrEstadoInvalido), errors.Is(err, domain.ErrPrioridadInvalida), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrSolicitudCompletada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPLETADA_PROTEGIDA", Message: err.Error()})
	case errors.Is(err, domain.ErrStorage):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error almacenando el adjunto"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
