package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
	"github.com/jhoicas/solicitudes-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de agregación read-only para el dashboard.
// Opera sobre la tabla completa: las estadísticas son globales, sin alcance
// por rol.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de consultas de dashboard.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// CountTotal devuelve el total de solicitudes.
func (r *StatsRepo) CountTotal(ctx context.Context) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM solicitudes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count solicitudes: %w", err)
	}
	return total, nil
}

// CountByEstado devuelve el conteo por cada estado; estados sin registros
// aparecen con cero.
func (r *StatsRepo) CountByEstado(ctx context.Context) (map[entity.Estado]int, error) {
	out := make(map[entity.Estado]int, 4)
	for _, e := range entity.Estados() {
		out[e] = 0
	}
	rows, err := r.q.Query(ctx, `SELECT estado, COUNT(*) FROM solicitudes GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("count por estado: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var estado entity.Estado
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, fmt.Errorf("scan count por estado: %w", err)
		}
		out[estado] = n
	}
	return out, rows.Err()
}

// CountByPrioridad devuelve el conteo por cada prioridad; prioridades sin
// registros aparecen con cero.
func (r *StatsRepo) CountByPrioridad(ctx context.Context) (map[entity.Prioridad]int, error) {
	out := make(map[entity.Prioridad]int, 3)
	for _, p := range entity.Prioridades() {
		out[p] = 0
	}
	rows, err := r.q.Query(ctx, `SELECT prioridad, COUNT(*) FROM solicitudes GROUP BY prioridad`)
	if err != nil {
		return nil, fmt.Errorf("count por prioridad: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var prioridad entity.Prioridad
		var n int
		if err := rows.Scan(&prioridad, &n); err != nil {
			return nil, fmt.Errorf("scan count por prioridad: %w", err)
		}
		out[prioridad] = n
	}
	return out, rows.Err()
}

// CountCreatedBetween cuenta solicitudes con fecha_creacion en [desde, hasta].
func (r *StatsRepo) CountCreatedBetween(ctx context.Context, desde, hasta time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM solicitudes WHERE fecha_creacion BETWEEN $1 AND $2`,
		desde, hasta,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count este mes: %w", err)
	}
	return n, nil
}

// Latest devuelve las `limit` solicitudes más recientes con el nombre de su
// dueño (JOIN con users). Mismo orden que el listado: fecha_creacion DESC,
// id DESC.
func (r *StatsRepo) Latest(ctx context.Context, limit int) ([]repository.UltimaSolicitud, error) {
	query := `
		SELECT s.id, s.nombre_cliente, s.nombre_landing, s.nombre_producto, s.estado, s.prioridad,
		       s.fecha_creacion, s.archivo_pdf, s.logo, s.user_id, s.created_at, s.updated_at,
		       u.name
		FROM solicitudes s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.fecha_creacion DESC, s.id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ultimas solicitudes: %w", err)
	}
	defer rows.Close()

	var out []repository.UltimaSolicitud
	for rows.Next() {
		var row repository.UltimaSolicitud
		s := &row.Solicitud
		if err := rows.Scan(
			&s.ID, &s.NombreCliente, &s.NombreLanding, &s.NombreProducto, &s.Estado, &s.Prioridad,
			&s.FechaCreacion, &s.ArchivoPDF, &s.Logo, &s.UserID, &s.CreatedAt, &s.UpdatedAt,
			&row.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan ultima solicitud: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
