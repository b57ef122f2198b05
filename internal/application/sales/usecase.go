// Package sales registra ventas descontando stock de forma transaccional y genera los reportes.
package sales

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var sellers = []string{entity.RoleAdministrador, entity.RoleEmpleado}

// MaxQuantity tope de unidades de un producto por venta (suma de sus líneas). Mantiene
// las cantidades lejos del desbordamiento de int64 al agrupar y al descontar stock.
const MaxQuantity int64 = 1_000_000_000

// ErrNegativeNet el monto neto calculado (sin IVA ni comisión) resultó negativo.
var ErrNegativeNet = errors.New("el monto neto calculado es negativo")

// UseCase ventas por almacén.
type UseCase struct {
	tx        TxRunner
	sales     repository.SaleRepository
	saleTypes repository.SaleTypeRepository
	ivaRate   decimal.Decimal
	now       func() time.Time
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso. ivaRate es la tasa de IVA incluida en el monto bruto (0.19).
func NewUseCase(tx TxRunner, sales repository.SaleRepository, saleTypes repository.SaleTypeRepository, ivaRate float64, log zerolog.Logger) *UseCase {
	return &UseCase{
		tx:        tx,
		sales:     sales,
		saleTypes: saleTypes,
		ivaRate:   decimal.NewFromFloat(ivaRate),
		now:       time.Now,
		log:       log,
	}
}

// NetAmount monto neto = round(bruto/(1+iva) - bruto*comision/100), redondeado a entero.
func NetAmount(gross, ivaRate, commissionPct decimal.Decimal) decimal.Decimal {
	preCommission := gross.Div(decimal.NewFromInt(1).Add(ivaRate))
	commission := gross.Mul(commissionPct).Div(decimal.NewFromInt(100))
	return preCommission.Sub(commission).Round(0)
}

// normalizeItems trunca cantidades a enteros y agrupa productos repetidos.
func normalizeItems(in []dto.SaleItemRequest) ([]entity.SaleItem, error) {
	qty := make(map[entity.ID]int64, len(in))
	order := make([]entity.ID, 0, len(in))
	for _, it := range in {
		id := entity.ID(it.ProductID)
		if id <= 0 {
			return nil, fmt.Errorf("%w: producto_id requerido", domain.ErrInvalidInput)
		}
		if math.IsNaN(it.Quantity) || math.IsInf(it.Quantity, 0) || it.Quantity > float64(MaxQuantity) {
			return nil, fmt.Errorf("%w: cantidad del producto %d fuera de rango", domain.ErrInvalidInput, id)
		}
		n := int64(math.Floor(it.Quantity))
		if n <= 0 {
			return nil, fmt.Errorf("%w: la cantidad del producto %d debe ser mayor a cero", domain.ErrInvalidInput, id)
		}
		prev, ok := qty[id]
		if !ok {
			order = append(order, id)
		}
		if n > MaxQuantity-prev {
			return nil, fmt.Errorf("%w: la cantidad total del producto %d supera %d", domain.ErrInvalidInput, id, MaxQuantity)
		}
		qty[id] = prev + n
	}
	items := make([]entity.SaleItem, 0, len(order))
	for _, id := range order {
		items = append(items, entity.SaleItem{ProductID: id, Quantity: qty[id]})
	}
	return items, nil
}

// Create registra la venta: bloquea los productos (orden por id), verifica y descuenta stock,
// calcula el neto y persiste todo en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, p *entity.Principal, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	warehouseID := entity.ID(in.WarehouseID)
	if !in.GrossAmount.IsPositive() {
		return nil, fmt.Errorf("%w: monto_bruto debe ser un número positivo", domain.ErrInvalidInput)
	}
	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: productos vacío", domain.ErrInvalidInput)
	}
	if err := authz.Require(p, warehouseID, sellers...); err != nil {
		return nil, err
	}

	saleType, err := uc.saleTypes.GetByID(ctx, entity.ID(in.SaleTypeID))
	if err != nil {
		return nil, err
	}
	if saleType == nil {
		return nil, fmt.Errorf("%w: el tipo de venta no existe", domain.ErrNotFound)
	}
	net := NetAmount(in.GrossAmount, uc.ivaRate, saleType.Commission)
	if net.IsNegative() {
		return nil, fmt.Errorf("%w (%s)", ErrNegativeNet, net)
	}

	sale := &entity.Sale{
		GrossAmount: in.GrossAmount,
		NetAmount:   net,
		Date:        uc.now(),
		WarehouseID: warehouseID,
		SaleTypeID:  saleType.ID,
	}

	err = uc.tx.RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		ids := make([]entity.ID, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		locked, err := products.GetForUpdate(ctx, warehouseID, ids)
		if err != nil {
			return err
		}
		byID := make(map[entity.ID]*entity.Product, len(locked))
		for _, prod := range locked {
			byID[prod.ID] = prod
		}
		var missing []entity.ID
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: productos no encontrados en el almacén %d: %v", domain.ErrNotFound, warehouseID, missing)
		}

		for _, it := range items {
			prod := byID[it.ProductID]
			if it.Quantity <= 0 || prod.Stock < it.Quantity {
				return fmt.Errorf("%w: '%s' (ID %d) stock actual %d, solicitado %d",
					domain.ErrInsufficientStock, prod.Name, prod.ID, prod.Stock, it.Quantity)
			}
		}
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, it := range items {
			prod := byID[it.ProductID]
			if err := products.UpdateStock(ctx, prod.ID, prod.Stock-it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("venta_id", sale.ID).
		Int64("almacen_id", warehouseID).
		Int64("user_id", p.User.ID).
		Str("monto_bruto", sale.GrossAmount.String()).
		Msg("venta registrada")

	sale.SaleType = saleType
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// ListByWarehouse ventas del almacén (cualquier rol en él), más recientes primero.
func (uc *UseCase) ListByWarehouse(ctx context.Context, p *entity.Principal, warehouseID entity.ID) ([]dto.SaleResponse, error) {
	if err := authz.Require(p, warehouseID); err != nil {
		return nil, err
	}
	list, err := uc.sales.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// GetByID una venta; requiere cualquier rol en su almacén.
func (uc *UseCase) GetByID(ctx context.Context, p *entity.Principal, id entity.ID) (*dto.SaleResponse, error) {
	sale, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// Update cambia tipo de venta y/o fecha; requiere administrador del almacén.
// Cambiar el tipo recalcula el neto con la nueva comisión.
func (uc *UseCase) Update(ctx context.Context, p *entity.Principal, id entity.ID, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.load(ctx, p, id, entity.RoleAdministrador)
	if err != nil {
		return nil, err
	}
	if in.SaleTypeID != nil {
		st, err := uc.saleTypes.GetByID(ctx, entity.ID(*in.SaleTypeID))
		if err != nil {
			return nil, err
		}
		if st == nil {
			return nil, fmt.Errorf("%w: el tipo de venta no existe", domain.ErrNotFound)
		}
		net := NetAmount(sale.GrossAmount, uc.ivaRate, st.Commission)
		if net.IsNegative() {
			return nil, fmt.Errorf("%w (%s)", ErrNegativeNet, net)
		}
		sale.SaleTypeID = st.ID
		sale.SaleType = st
		sale.NetAmount = net
	}
	if in.Date != nil {
		sale.Date = *in.Date
	}
	if err := uc.sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// Delete borra la venta; requiere administrador del almacén. No repone stock.
func (uc *UseCase) Delete(ctx context.Context, p *entity.Principal, id entity.ID) error {
	if _, err := uc.load(ctx, p, id, entity.RoleAdministrador); err != nil {
		return err
	}
	return uc.sales.Delete(ctx, id)
}

func (uc *UseCase) load(ctx context.Context, p *entity.Principal, id entity.ID, roles ...string) (*entity.Sale, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Require(p, sale.WarehouseID, roles...); err != nil {
		return nil, err
	}
	return sale, nil
}

func toResponses(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSaleResponse(s))
	}
	return out
}
