package entity

import "time"

// Role es el rol de un usuario. Conjunto cerrado y plano: las decisiones de
// autorización se toman con switch exhaustivo en authz, nunca comparando
// strings sueltos.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// ParseRole convierte la etiqueta persistida/del token en un Role válido.
// Devuelve false si la etiqueta no corresponde a ningún rol conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return Role(s), true
	}
	return "", false
}

// IsAdminTier reporta si el rol ve y edita solicitudes de cualquier dueño.
func (r Role) IsAdminTier() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User representa un usuario autenticable del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
