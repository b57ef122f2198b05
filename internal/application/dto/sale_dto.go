package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// SaleItemRequest producto vendido. Cantidad puede llegar con decimales; se trunca a entero.
type SaleItemRequest struct {
	ProductID entity.FlexID `json:"producto_id" validate:"required"`
	Quantity  float64       `json:"cantidad" validate:"required"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	GrossAmount decimal.Decimal   `json:"monto_bruto"`
	WarehouseID entity.FlexID     `json:"almacen_id" validate:"required"`
	SaleTypeID  entity.FlexID     `json:"tipo_venta_id" validate:"required"`
	Items       []SaleItemRequest `json:"productos" validate:"required,min=1,dive"`
}

// UpdateSaleRequest solo se editan el tipo de venta y la fecha.
type UpdateSaleRequest struct {
	SaleTypeID *entity.FlexID `json:"tipo_venta_id"`
	Date       *time.Time     `json:"fecha"`
}

// SaleTypeRequest alta/edición de tipo de venta.
type SaleTypeRequest struct {
	Name       string          `json:"nombre" validate:"required,min=1,max=100"`
	Commission decimal.Decimal `json:"comision"`
}

// SaleTypeResponse salida de un tipo de venta.
type SaleTypeResponse struct {
	ID         entity.ID       `json:"id"`
	Name       string          `json:"nombre"`
	Commission decimal.Decimal `json:"comision"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          entity.ID         `json:"id"`
	GrossAmount decimal.Decimal   `json:"monto_bruto"`
	NetAmount   decimal.Decimal   `json:"monto_neto"`
	Date        time.Time         `json:"fecha"`
	WarehouseID entity.ID         `json:"almacen_id"`
	SaleTypeID  entity.ID         `json:"tipo_venta_id"`
	SaleType    *SaleTypeResponse `json:"tipo_venta,omitempty"`
}

// ChartPoint un punto de la serie de ventas (año, mes o día de la semana).
type ChartPoint struct {
	Name  string          `json:"name"`
	Sales decimal.Decimal `json:"ventas"`
	Order int             `json:"orden"`
}

// ChartResponse serie para el gráfico de ventas.
type ChartResponse struct {
	Period string       `json:"periodo"`
	Year   int          `json:"anio"`
	Points []ChartPoint `json:"data"`
}

// StatsResponse estadísticas de ventas del año o mes pedido.
type StatsResponse struct {
	Total   decimal.Decimal `json:"totalVentas"`
	Average decimal.Decimal `json:"ventaPromedio"`
	Max     decimal.Decimal `json:"ventaMaxima"`
	Min     decimal.Decimal `json:"ventaMinima"`
	Count   int             `json:"totalRegistros"`
}

// PaymentMethodTotal ventas agrupadas por tipo de venta.
type PaymentMethodTotal struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ToSaleTypeResponse convierte la entidad a DTO.
func ToSaleTypeResponse(st *entity.SaleType) SaleTypeResponse {
	return SaleTypeResponse{ID: st.ID, Name: st.Name, Commission: st.Commission}
}

// ToSaleResponse convierte la entidad a DTO.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	out := SaleResponse{
		ID:          s.ID,
		GrossAmount: s.GrossAmount,
		NetAmount:   s.NetAmount,
		Date:        s.Date,
		WarehouseID: s.WarehouseID,
		SaleTypeID:  s.SaleTypeID,
	}
	if s.SaleType != nil {
		st := ToSaleTypeResponse(s.SaleType)
		out.SaleType = &st
	}
	return out
}
