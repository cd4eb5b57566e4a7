package repository

import "github.com/jhoicas/solicitudes-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID y GetByEmail devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdatePassword(id, passwordHash string) error
	List(limit, offset int) ([]*entity.User, int, error)
}
