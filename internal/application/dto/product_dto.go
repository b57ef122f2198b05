package dto

import "github.com/jhoicas/negocify-api/internal/domain/entity"

// CreateProductRequest entrada para crear un producto en un almacén.
type CreateProductRequest struct {
	Name          string        `json:"nombre" validate:"required,min=1,max=200"`
	ProductTypeID entity.FlexID `json:"tipo_producto_id" validate:"required"`
	Stock         int64         `json:"stock" validate:"min=0"`
	MinStock      int64         `json:"stock_minimo" validate:"min=0"`
	WarehouseID   entity.FlexID `json:"almacen_id" validate:"required"`
}

// UpdateProductRequest actualización parcial; el almacén no se puede cambiar.
type UpdateProductRequest struct {
	Name          *string        `json:"nombre" validate:"omitempty,min=1,max=200"`
	ProductTypeID *entity.FlexID `json:"tipo_producto_id"`
	Stock         *int64         `json:"stock" validate:"omitempty,min=0"`
	MinStock      *int64         `json:"stock_minimo" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            entity.ID `json:"id"`
	Name          string    `json:"nombre"`
	ProductTypeID entity.ID `json:"tipo_producto_id"`
	ProductType   string    `json:"tipo_producto,omitempty"`
	Stock         int64     `json:"stock"`
	MinStock      int64     `json:"stock_minimo"`
	WarehouseID   entity.ID `json:"almacen_id"`
}

// ProductTypeResponse salida de un tipo de producto.
type ProductTypeResponse struct {
	ID   entity.ID `json:"id"`
	Name string    `json:"nombre"`
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		ProductTypeID: p.ProductTypeID,
		ProductType:   p.ProductType,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		WarehouseID:   p.WarehouseID,
	}
}
