package repository

import (
	"context"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (usable con pool o tx).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id entity.ID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id entity.ID) error
	ListAll(ctx context.Context) ([]*entity.Product, error)
	ListByWarehouse(ctx context.Context, warehouseID entity.ID) ([]*entity.Product, error)
	// GetForUpdate bloquea (SELECT FOR UPDATE, orden por id) los productos del almacén indicados.
	// Los ids que no existen o pertenecen a otro almacén simplemente no aparecen.
	GetForUpdate(ctx context.Context, warehouseID entity.ID, ids []entity.ID) ([]*entity.Product, error)
	UpdateStock(ctx context.Context, id entity.ID, stock int64) error
}

// ProductTypeRepository tabla de referencia tipo_producto.
type ProductTypeRepository interface {
	List(ctx context.Context) ([]*entity.ProductType, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.ProductType, error)
}
