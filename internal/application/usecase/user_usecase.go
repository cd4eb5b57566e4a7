package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/solicitudes-api/internal/application/dto"
	"github.com/jhoicas/solicitudes-api/internal/domain"
	"github.com/jhoicas/solicitudes-api/internal/domain/authz"
	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
	"github.com/jhoicas/solicitudes-api/internal/domain/repository"
)

// UsuariosPorPagina tamaño de página fijo del listado de usuarios.
const UsuariosPorPagina = 15

// Longitud y alfabeto de la contraseña temporal generada en el reseteo.
// Sin caracteres ambiguos (0/O, 1/l/I).
const (
	tempPasswordLen      = 12
	tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// UserUseCase gestión de usuarios: listado y reseteo de credenciales.
// Ambas acciones son exclusivas del super-admin (authz).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios con paginación (solo super-admin).
func (uc *UserUseCase) List(p authz.Principal, page int) (*dto.UserListResponse, error) {
	if err := authz.CanManageUsers(p); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	users, total, err := uc.repo.List(UsuariosPorPagina, (page-1)*UsuariosPorPagina)
	if err != nil {
		return nil, err
	}
	data := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, *ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Data: data,
		Meta: dto.NewPageMeta(page, UsuariosPorPagina, total, len(data)),
	}, nil
}

// ResetPassword resetea la credencial de otro usuario a una contraseña
// temporal aleatoria (solo super-admin; nunca la propia). La contraseña se
// devuelve una única vez en la respuesta; solo se persiste su hash bcrypt.
func (uc *UserUseCase) ResetPassword(p authz.Principal, targetUserID string) (*dto.ResetPasswordResponse, error) {
	if err := authz.CanResetPassword(p, targetUserID); err != nil {
		return nil, err
	}
	target, err := uc.repo.GetByID(targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}

	temp, err := randomPassword()
	if err != nil {
		return nil, fmt.Errorf("generar contraseña temporal: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePassword(target.ID, string(hash)); err != nil {
		return nil, err
	}
	return &dto.ResetPasswordResponse{
		UserID:           target.ID,
		Name:             target.Name,
		TemporalPassword: temp,
	}, nil
}

// randomPassword genera una contraseña temporal con crypto/rand.
func randomPassword() (string, error) {
	out := make([]byte, tempPasswordLen)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}

// ToUserResponse convierte la entidad a su representación de salida.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
