package dto

import "time"

// RegisterRequest registro de un usuario nuevo. El rol siempre inicia en
// `user`; los roles elevados se asignan fuera de banda.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse representación de salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Data []UserResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// ResetPasswordResponse resultado del reseteo de credencial. La contraseña
// temporal se devuelve una única vez; no vuelve a ser recuperable.
type ResetPasswordResponse struct {
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	TemporalPassword string `json:"temporal_password"`
}
