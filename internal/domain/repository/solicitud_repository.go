package repository

import "github.com/jhoicas/solicitudes-api/internal/domain/entity"

// SolicitudFilter restringe el listado de solicitudes. Los campos vacíos no
// aplican restricción. OwnerID lo decide la política de acceso (authz), no el
// cliente.
type SolicitudFilter struct {
	OwnerID   string
	Estado    entity.Estado
	Prioridad entity.Prioridad
}

// SolicitudRepository define el puerto de persistencia para Solicitud (DIP).
//
// Los métodos de lectura devuelven (nil, nil) cuando el registro no existe.
// List devuelve además el total de registros que cumplen el filtro, para que
// la capa de aplicación arme los metadatos de paginación. El orden es
// fecha_creacion descendente con desempate por id descendente; estable y
// base de las consultas de "últimas N".
type SolicitudRepository interface {
	Create(s *entity.Solicitud) error
	GetByID(id string) (*entity.Solicitud, error)
	List(f SolicitudFilter, limit, offset int) ([]*entity.Solicitud, int, error)
	Update(s *entity.Solicitud) error
	Delete(id string) error
}
