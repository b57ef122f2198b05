package dto

import "github.com/jhoicas/negocify-api/internal/domain/entity"

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Name    string  `json:"nombre" validate:"required,min=1,max=200"`
	Address *string `json:"direccion" validate:"omitempty,max=300"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID      entity.ID `json:"id"`
	Name    string    `json:"nombre"`
	Address *string   `json:"direccion"`
}

// ToWarehouseResponse convierte la entidad a DTO.
func ToWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address}
}
