package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
	"github.com/jhoicas/solicitudes-api/internal/domain/repository"
)

var _ repository.SolicitudRepository = (*SolicitudRepo)(nil)

// psql builder con placeholders $1, $2... (PostgreSQL).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const solicitudColumns = `id, nombre_cliente, nombre_landing, nombre_producto, estado, prioridad, fecha_creacion, archivo_pdf, logo, user_id, created_at, updated_at`

// SolicitudRepo implementación del puerto SolicitudRepository sobre PostgreSQL (usable con pool o tx).
type SolicitudRepo struct {
	q Querier
}

// NewSolicitudRepository construye el adaptador de persistencia para solicitudes. Pasar pool o tx (Querier).
func NewSolicitudRepository(q Querier) *SolicitudRepo {
	return &SolicitudRepo{q: q}
}

// Create persiste una nueva solicitud.
func (r *SolicitudRepo) Create(s *entity.Solicitud) error {
	query := `
		INSERT INTO solicitudes (id, nombre_cliente, nombre_landing, nombre_producto, estado, prioridad, fecha_creacion, archivo_pdf, logo, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.NombreCliente, s.NombreLanding, s.NombreProducto, s.Estado, s.Prioridad,
		s.FechaCreacion, s.ArchivoPDF, s.Logo, s.UserID, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert solicitud: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID. Devuelve (nil, nil) si no existe.
func (r *SolicitudRepo) GetByID(id string) (*entity.Solicitud, error) {
	query := `SELECT ` + solicitudColumns + ` FROM solicitudes WHERE id = $1`
	s, err := scanSolicitud(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud: %w", err)
	}
	return s, nil
}

// List devuelve la página solicitada y el total de registros que cumplen el
// filtro. Orden: fecha_creacion DESC con desempate por id DESC (estable, base
// de las consultas de "últimas N" del dashboard).
func (r *SolicitudRepo) List(f repository.SolicitudFilter, limit, offset int) ([]*entity.Solicitud, int, error) {
	where := sq.And{}
	if f.OwnerID != "" {
		where = append(where, sq.Eq{"user_id": f.OwnerID})
	}
	if f.Estado != "" {
		where = append(where, sq.Eq{"estado": string(f.Estado)})
	}
	if f.Prioridad != "" {
		where = append(where, sq.Eq{"prioridad": string(f.Prioridad)})
	}

	ctx := context.Background()

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("solicitudes").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count solicitudes: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count solicitudes: %w", err)
	}

	listSQL, listArgs, err := psql.Select(solicitudColumns).
		From("solicitudes").
		Where(where).
		OrderBy("fecha_creacion DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list solicitudes: %w", err)
	}

	rows, err := r.q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list solicitudes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Solicitud
	for rows.Next() {
		s, err := scanSolicitud(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan solicitud: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Update actualiza una solicitud existente. user_id y fecha_creacion no están
// en el SET: son inmutables a nivel de persistencia.
func (r *SolicitudRepo) Update(s *entity.Solicitud) error {
	query := `
		UPDATE solicitudes
		SET nombre_cliente = $2, nombre_landing = $3, nombre_producto = $4, estado = $5, prioridad = $6, archivo_pdf = $7, logo = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.NombreCliente, s.NombreLanding, s.NombreProducto, s.Estado, s.Prioridad,
		s.ArchivoPDF, s.Logo, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update solicitud: %w", err)
	}
	return nil
}

// Delete elimina una solicitud por ID.
func (r *SolicitudRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM solicitudes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete solicitud: %w", err)
	}
	return nil
}

func scanSolicitud(row pgx.Row) (*entity.Solicitud, error) {
	var s entity.Solicitud
	err := row.Scan(
		&s.ID, &s.NombreCliente, &s.NombreLanding, &s.NombreProducto, &s.Estado, &s.Prioridad,
		&s.FechaCreacion, &s.ArchivoPDF, &s.Logo, &s.UserID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
