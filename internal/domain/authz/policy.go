// Package authz implementa la política de control de acceso: una función pura
// (principal, acción, recurso) → permitir/denegar. Las denegaciones envuelven
// domain.ErrForbidden con una razón legible; el caller debe exponerlas como
// acceso denegado, nunca como filtrado silencioso.
package authz

import (
	"fmt"

	"github.com/jhoicas/solicitudes-api/internal/domain"
	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
)

// Principal es el actor autenticado sobre el que se evalúa la política.
type Principal struct {
	ID   string
	Role entity.Role
}

// ListScope devuelve el alcance del listado de solicitudes: el ID del dueño
// al que se restringe la consulta, o cadena vacía para ver todas.
func ListScope(p Principal) (ownerID string) {
	switch p.Role {
	case entity.RoleAdmin, entity.RoleSuperAdmin:
		return ""
	case entity.RoleUser:
		return p.ID
	}
	// Rol desconocido: restringir al propio usuario, nunca ampliar.
	return p.ID
}

// CanViewSolicitud decide si el principal puede ver una solicitud concreta.
func CanViewSolicitud(p Principal, s *entity.Solicitud) error {
	return CanEditSolicitud(p, s)
}

// CanEditSolicitud decide si el principal puede modificar los campos de
// contenido de la solicitud (nunca el estado; ver CanChangeEstado).
func CanEditSolicitud(p Principal, s *entity.Solicitud) error {
	switch p.Role {
	case entity.RoleAdmin, entity.RoleSuperAdmin:
		return nil
	case entity.RoleUser:
		if s.UserID == p.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: no tienes permisos para editar esta solicitud", domain.ErrForbidden)
}

// CanChangeEstado decide si el principal puede cambiar el estado de una
// solicitud. Acción exclusiva del super-admin: el estado refleja una decisión
// de triaje transversal que no se mezcla con ediciones de contenido.
func CanChangeEstado(p Principal) error {
	switch p.Role {
	case entity.RoleSuperAdmin:
		return nil
	case entity.RoleUser, entity.RoleAdmin:
	}
	return fmt.Errorf("%w: solo el super-admin puede actualizar estados", domain.ErrForbidden)
}

// CanDeleteSolicitud decide si el principal puede eliminar solicitudes.
// La protección de solicitudes completadas es una regla de ciclo de vida,
// no de autorización, y se aplica en el use case.
func CanDeleteSolicitud(p Principal) error {
	switch p.Role {
	case entity.RoleAdmin, entity.RoleSuperAdmin:
		return nil
	case entity.RoleUser:
	}
	return fmt.Errorf("%w: no tienes permisos para eliminar solicitudes", domain.ErrForbidden)
}

// CanManageUsers decide si el principal puede listar y gestionar usuarios.
func CanManageUsers(p Principal) error {
	switch p.Role {
	case entity.RoleSuperAdmin:
		return nil
	case entity.RoleUser, entity.RoleAdmin:
	}
	return fmt.Errorf("%w: solo el super-admin puede gestionar usuarios", domain.ErrForbidden)
}

// CanResetPassword decide si el principal puede resetear la credencial del
// usuario objetivo. El super-admin no puede resetear la propia por esta vía.
func CanResetPassword(p Principal, targetUserID string) error {
	if err := CanManageUsers(p); err != nil {
		return fmt.Errorf("%w: solo el super-admin puede resetear contraseñas", domain.ErrForbidden)
	}
	if p.ID == targetUserID {
		return fmt.Errorf("%w: no puedes resetear tu propia contraseña desde aquí", domain.ErrForbidden)
	}
	return nil
}
