package repository

import (
	"context"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// RoleRepository acceso a la tabla de referencia rol.
type RoleRepository interface {
	GetByID(ctx context.Context, id entity.ID) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	ListByIDs(ctx context.Context, ids []entity.ID) ([]*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
}
