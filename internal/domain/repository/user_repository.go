package repository

import (
	"context"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id entity.ID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// EmailTaken indica si otro usuario (distinto de excludeID) ya usa el email.
	EmailTaken(ctx context.Context, email string, excludeID entity.ID) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id entity.ID) error
	// ListByWarehouse lista los usuarios con algún rol en el almacén, ordenados por nombre.
	ListByWarehouse(ctx context.Context, warehouseID entity.ID) ([]*entity.User, error)
}
