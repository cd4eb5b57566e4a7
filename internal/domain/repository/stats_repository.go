package repository

import (
	"context"
	"time"

	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
)

// UltimaSolicitud resultado crudo del widget de últimas solicitudes: la
// solicitud más el nombre de su dueño (JOIN en DB). El use case lo convierte
// en DTO.
type UltimaSolicitud struct {
	Solicitud entity.Solicitud
	UserName  string
}

// StatsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only sobre la colección completa de
// solicitudes (sin alcance por rol: las estadísticas son globales aunque los
// listados no lo sean).
type StatsRepository interface {
	// CountTotal devuelve el total de solicitudes.
	CountTotal(ctx context.Context) (int, error)

	// CountByEstado devuelve el conteo por cada estado. Los estados sin
	// registros aparecen con cero.
	CountByEstado(ctx context.Context) (map[entity.Estado]int, error)

	// CountByPrioridad devuelve el conteo por cada prioridad. Las prioridades
	// sin registros aparecen con cero.
	CountByPrioridad(ctx context.Context) (map[entity.Prioridad]int, error)

	// CountCreatedBetween cuenta solicitudes con fecha_creacion en [desde, hasta].
	CountCreatedBetween(ctx context.Context, desde, hasta time.Time) (int, error)

	// Latest devuelve las `limit` solicitudes más recientes por fecha_creacion
	// (desempate por id descendente), con el nombre del dueño.
	Latest(ctx context.Context, limit int) ([]UltimaSolicitud, error)
}
