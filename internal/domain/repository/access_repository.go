package repository

import (
	"context"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// AccessRepository puerto sobre usuario_rol_almacen y administradores_sistema:
// todo lo que alimenta las decisiones de autorización.
type AccessRepository interface {
	IsSystemAdmin(ctx context.Context, userID entity.ID) (bool, error)
	// ListAccessRows devuelve las filas del usuario unidas (LEFT JOIN) a almacén y rol,
	// ordenadas por nombre de almacén e id de la relación.
	ListAccessRows(ctx context.Context, userID entity.ID) ([]entity.AccessRow, error)
	// HasRole indica si el usuario tiene roleID en algún almacén.
	HasRole(ctx context.Context, userID, roleID entity.ID) (bool, error)
	// ReplaceForUser borra todas las relaciones del usuario y crea las nuevas (usar dentro de una tx).
	ReplaceForUser(ctx context.Context, userID entity.ID, rows []entity.UserRoleWarehouse) error
	DeleteForUser(ctx context.Context, userID entity.ID) error
	GrantSystemAdmin(ctx context.Context, userID entity.ID) error
	RevokeSystemAdmin(ctx context.Context, userID entity.ID) error
}
