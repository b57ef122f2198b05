package dto

import (
	"time"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// RegisterRequest entrada para registro público (sin rol: los roles los asigna un administrador).
type RegisterRequest struct {
	Name     string  `json:"nombre" validate:"required,min=1,max=100"`
	Surname  string  `json:"apellido" validate:"required,min=1,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"telefono" validate:"omitempty,max=30"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        entity.ID `json:"id"`
	Name      string    `json:"nombre"`
	Surname   string    `json:"apellido"`
	Email     string    `json:"email"`
	Phone     *string   `json:"telefono"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse usuario recién autenticado con su token.
type AuthResponse struct {
	User  UserResponse `json:"usuario"`
	Token string       `json:"token"`
}

// PrincipalResponse usuario autenticado con su perfil de autorización (GET /auth/me).
type PrincipalResponse struct {
	UserResponse
	entity.AuthorizationProfile
}

// CreateUserRequest alta de usuario por un administrador, asignándole un rol en un almacén.
type CreateUserRequest struct {
	Name        string        `json:"nombre" validate:"required,min=1,max=100"`
	Surname     string        `json:"apellido" validate:"required,min=1,max=100"`
	Email       string        `json:"email" validate:"required,email"`
	Password    string        `json:"password" validate:"required,min=6"`
	Phone       *string       `json:"telefono" validate:"omitempty,max=30"`
	RoleID      entity.FlexID `json:"rol" validate:"required"`
	WarehouseID entity.FlexID `json:"almacen_id" validate:"required"`
}

// UpdateUserRequest actualización de usuario; Password vacío conserva el actual.
type UpdateUserRequest struct {
	Name        string        `json:"nombre" validate:"required,min=1,max=100"`
	Surname     string        `json:"apellido" validate:"required,min=1,max=100"`
	Email       string        `json:"email" validate:"required,email"`
	Password    string        `json:"password" validate:"omitempty,min=6"`
	Phone       *string       `json:"telefono" validate:"omitempty,max=30"`
	RoleID      entity.FlexID `json:"rol" validate:"required"`
	WarehouseID entity.FlexID `json:"almacen_id" validate:"required"`
}

// UserAssignment rol del usuario en un almacén.
type UserAssignment struct {
	WarehouseID   entity.ID `json:"almacen_id"`
	WarehouseName string    `json:"almacen"`
	RoleID        entity.ID `json:"rol_id"`
	Role          string    `json:"rol"`
}

// UserDetailResponse usuario con sus asignaciones.
type UserDetailResponse struct {
	UserResponse
	Assignments []UserAssignment `json:"almacenes"`
}

// ToUserResponse convierte la entidad a DTO sin exponer el hash.
func ToUserResponse(u *entity.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
