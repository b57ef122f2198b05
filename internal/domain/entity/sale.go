package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleType tipo de venta / método de pago con su comisión porcentual.
type SaleType struct {
	ID         ID
	Name       string
	Commission decimal.Decimal // porcentaje, ej. 3.5 = 3,5 %
}

// Sale venta registrada en un almacén.
type Sale struct {
	ID          ID
	GrossAmount decimal.Decimal // monto_bruto (IVA incluido)
	NetAmount   decimal.Decimal // monto_neto (sin IVA ni comisión)
	Date        time.Time
	WarehouseID ID
	SaleTypeID  ID
	SaleType    *SaleType
}

// SaleItem línea de venta: producto y cantidad a descontar del stock.
type SaleItem struct {
	ProductID ID
	Quantity  int64
}
