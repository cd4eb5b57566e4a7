package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrSolicitudCompletada = errors.New("no se pueden eliminar solicitudes completadas")
	ErrEstadoInvalido      = errors.New("el estado seleccionado no es válido")
	ErrPrioridadInvalida   = errors.New("la prioridad seleccionada no es válida")
	ErrStorage             = errors.New("fallo del almacén de adjuntos")
)
