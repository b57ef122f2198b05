package repository

import (
	"context"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id entity.ID) (*entity.Warehouse, error)
	// ListAll devuelve todos los almacenes ordenados por nombre ascendente.
	ListAll(ctx context.Context) ([]*entity.Warehouse, error)
	ListByIDs(ctx context.Context, ids []entity.ID) ([]*entity.Warehouse, error)
}
