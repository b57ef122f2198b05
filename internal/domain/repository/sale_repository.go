package repository

import (
	"context"
	"time"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (usable con pool o tx).
// Las lecturas incluyen el SaleType asociado cuando existe.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id entity.ID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id entity.ID) error
	ListByWarehouse(ctx context.Context, warehouseID entity.ID) ([]*entity.Sale, error)
	// ListInRange ventas con fecha en [from, to]; warehouseID nil = todos los almacenes.
	ListInRange(ctx context.Context, warehouseID *entity.ID, from, to time.Time) ([]*entity.Sale, error)
}

// SaleTypeRepository define el puerto de persistencia para SaleType.
type SaleTypeRepository interface {
	Create(ctx context.Context, st *entity.SaleType) error
	GetByID(ctx context.Context, id entity.ID) (*entity.SaleType, error)
	Update(ctx context.Context, st *entity.SaleType) error
	Delete(ctx context.Context, id entity.ID) error
	List(ctx context.Context) ([]*entity.SaleType, error)
}
