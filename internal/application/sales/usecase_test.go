package sales

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/testutil/memstore"
)

// ─── Helpers ─────────────────────────────────────────────────────────────────

type env struct {
	store    *memstore.Store
	uc       *UseCase
	centro   entity.ID
	norte    entity.ID
	admin    entity.ID
	emp      entity.ID
	efectivo entity.ID
	tarjeta  entity.ID
}

func newEnv() *env {
	s := memstore.New()
	e := &env{
		store:  s,
		admin:  s.AddRole(entity.RoleAdministrador),
		emp:    s.AddRole(entity.RoleEmpleado),
		centro: s.AddWarehouse("Centro"),
		norte:  s.AddWarehouse("Norte"),
	}
	e.efectivo = s.AddSaleType(entity.SaleType{Name: "Efectivo", Commission: decimal.Zero})
	e.tarjeta = s.AddSaleType(entity.SaleType{Name: "Tarjeta", Commission: decimal.RequireFromString("3.5")})
	e.uc = NewUseCase(s, s.Sales(), s.SaleTypes(), 0.19, zerolog.Nop())
	return e
}

func (e *env) principal(t *testing.T, userID entity.ID) *entity.Principal {
	t.Helper()
	profile, err := authz.NewResolver(e.store.Access(), e.store.Warehouses(), zerolog.Nop()).
		ResolvePermissions(context.Background(), userID)
	require.NoError(t, err)
	return &entity.Principal{User: entity.User{ID: userID}, Profile: profile}
}

func (e *env) user(name string, warehouseID, roleID entity.ID) entity.ID {
	id := e.store.AddUser(name, name+"@test.com", "x")
	e.store.Assign(id, warehouseID, roleID)
	return id
}

func saleReq(gross string, warehouseID, saleTypeID entity.ID, items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		GrossAmount: decimal.RequireFromString(gross),
		WarehouseID: entity.FlexID(warehouseID),
		SaleTypeID:  entity.FlexID(saleTypeID),
		Items:       items,
	}
}

func item(productID entity.ID, qty float64) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: entity.FlexID(productID), Quantity: qty}
}

// ─── Monto neto ──────────────────────────────────────────────────────────────

func TestNetAmount(t *testing.T) {
	iva := decimal.RequireFromString("0.19")
	assert.True(t, NetAmount(decimal.NewFromInt(119000), iva, decimal.Zero).Equal(decimal.NewFromInt(100000)))
	assert.True(t, NetAmount(decimal.NewFromInt(119000), iva, decimal.RequireFromString("3.5")).Equal(decimal.NewFromInt(95835)))
	assert.True(t, NetAmount(decimal.NewFromInt(100), iva, decimal.NewFromInt(90)).IsNegative())
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockYCalculaNeto(t *testing.T) {
	e := newEnv()
	prod := e.store.AddProduct("Agua", e.centro, 0, 10)
	emp := e.user("emp", e.centro, e.emp)

	out, err := e.uc.Create(context.Background(), e.principal(t, emp),
		saleReq("119000", e.centro, e.tarjeta, item(prod, 2.9), item(prod, 1)))
	require.NoError(t, err)

	assert.True(t, out.NetAmount.Equal(decimal.NewFromInt(95835)))
	require.NotNil(t, out.SaleType)
	assert.Equal(t, "Tarjeta", out.SaleType.Name)

	p, _ := e.store.Product(prod)
	assert.Equal(t, int64(7), p.Stock, "2.9 se trunca a 2 y se suma la línea repetida")
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv()
	prod := e.store.AddProduct("Agua", e.centro, 0, 10)
	otro := e.store.AddProduct("Pan", e.norte, 0, 10)
	emp := e.user("emp", e.centro, e.emp)
	p := e.principal(t, emp)
	ctx := context.Background()

	_, err := e.uc.Create(ctx, p, saleReq("0", e.centro, e.efectivo, item(prod, 1)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Create(ctx, p, saleReq("100", e.centro, e.efectivo, item(prod, 0.5)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Create(ctx, p, saleReq("100", e.centro, e.efectivo))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Create(ctx, p, saleReq("100", e.norte, e.efectivo, item(otro, 1)))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.uc.Create(ctx, p, saleReq("100", e.centro, 9999, item(prod, 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.Create(ctx, p, saleReq("100", e.centro, e.efectivo, item(prod, 1), item(otro, 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto de otro almacén")

	_, err = e.uc.Create(ctx, p, saleReq("119", e.centro, e.tarjeta, item(prod, 11)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	pr, _ := e.store.Product(prod)
	assert.Equal(t, int64(10), pr.Stock)
	assert.Zero(t, e.store.SaleCount(), "ninguna venta fallida queda registrada")
}

func TestCreate_CantidadesEnormesNoDesbordan(t *testing.T) {
	e := newEnv()
	prod := e.store.AddProduct("Agua", e.centro, 0, 10)
	emp := e.user("emp", e.centro, e.emp)
	p := e.principal(t, emp)
	ctx := context.Background()

	tests := []struct {
		name  string
		items []dto.SaleItemRequest
	}{
		{"líneas repetidas que desbordan int64", []dto.SaleItemRequest{item(prod, 5e18), item(prod, 5e18)}},
		{"línea sobre el tope", []dto.SaleItemRequest{item(prod, float64(MaxQuantity)+1)}},
		{"suma sobre el tope", []dto.SaleItemRequest{item(prod, 6e8), item(prod, 6e8)}},
		{"infinito", []dto.SaleItemRequest{item(prod, math.Inf(1))}},
		{"NaN", []dto.SaleItemRequest{item(prod, math.NaN())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Create(ctx, p, saleReq("100", e.centro, e.efectivo, tt.items...))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	pr, _ := e.store.Product(prod)
	assert.Equal(t, int64(10), pr.Stock, "el stock nunca aumenta por una venta")
	assert.Zero(t, e.store.SaleCount())
}

func TestCreate_NetoNegativo(t *testing.T) {
	e := newEnv()
	caro := e.store.AddSaleType(entity.SaleType{Name: "Crédito", Commission: decimal.NewFromInt(90)})
	prod := e.store.AddProduct("Agua", e.centro, 0, 10)
	emp := e.user("emp", e.centro, e.emp)

	_, err := e.uc.Create(context.Background(), e.principal(t, emp), saleReq("100", e.centro, caro, item(prod, 1)))
	assert.ErrorIs(t, err, ErrNegativeNet)
}

// ─── Escenario E: ventas concurrentes sobre el mismo stock ───────────────────

func TestCreate_VentasConcurrentesNoSobrevenden(t *testing.T) {
	e := newEnv()
	prod := e.store.AddProduct("Agua", e.centro, 0, 5)
	emp := e.user("emp", e.centro, e.emp)
	p := e.principal(t, emp)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.uc.Create(context.Background(), p, saleReq("1000", e.centro, e.efectivo, item(prod, 5)))
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok, "errores: %v", errs)
	assert.Equal(t, 1, insufficient, "errores: %v", errs)

	pr, _ := e.store.Product(prod)
	assert.Equal(t, int64(0), pr.Stock)
	assert.Equal(t, 1, e.store.SaleCount())
}

// ─── Lectura, edición y borrado ──────────────────────────────────────────────

func TestGetUpdateDelete(t *testing.T) {
	e := newEnv()
	prod := e.store.AddProduct("Agua", e.centro, 0, 10)
	emp := e.user("emp", e.centro, e.emp)
	boss := e.user("jefe", e.centro, e.admin)
	ajeno := e.user("ajeno", e.norte, e.admin)
	ctx := context.Background()

	created, err := e.uc.Create(ctx, e.principal(t, emp), saleReq("119000", e.centro, e.efectivo, item(prod, 1)))
	require.NoError(t, err)

	_, err = e.uc.GetByID(ctx, e.principal(t, emp), created.ID)
	require.NoError(t, err)
	_, err = e.uc.GetByID(ctx, e.principal(t, ajeno), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	tipo := entity.FlexID(e.tarjeta)
	_, err = e.uc.Update(ctx, e.principal(t, emp), created.ID, dto.UpdateSaleRequest{SaleTypeID: &tipo})
	assert.ErrorIs(t, err, domain.ErrForbidden, "editar requiere administrador")

	fecha := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	upd, err := e.uc.Update(ctx, e.principal(t, boss), created.ID, dto.UpdateSaleRequest{SaleTypeID: &tipo, Date: &fecha})
	require.NoError(t, err)
	assert.True(t, upd.NetAmount.Equal(decimal.NewFromInt(95835)))
	assert.True(t, upd.Date.Equal(fecha))

	list, err := e.uc.ListByWarehouse(ctx, e.principal(t, emp), e.centro)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, e.uc.Delete(ctx, e.principal(t, emp), created.ID), domain.ErrForbidden)
	require.NoError(t, e.uc.Delete(ctx, e.principal(t, boss), created.ID))
	_, err = e.uc.GetByID(ctx, e.principal(t, boss), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
