package http_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

func TestVentas_CreateDescuentaStock(t *testing.T) {
	env := buildTestApp(t)
	emp := env.user(t, "emp", env.centro, env.empRole)
	tipo := env.store.AddProductType("Bebidas")
	agua := env.store.AddProduct("Agua", env.centro, tipo, 10)
	efectivo := env.store.AddSaleType(entity.SaleType{Name: "Efectivo", Commission: decimal.Zero})

	resp := env.do(t, http.MethodPost, "/api/ventas", env.bearer(t, emp), map[string]any{
		"monto_bruto":   119000,
		"almacen_id":    env.centro,
		"tipo_venta_id": efectivo,
		"productos":     []map[string]any{{"producto_id": agua, "cantidad": 3.7}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale map[string]any
	decode(t, resp, &sale)
	assert.Equal(t, "100000", sale["monto_neto"])

	p, _ := env.store.Product(agua)
	assert.Equal(t, int64(7), p.Stock, "la cantidad se trunca a entero")
}

func TestVentas_StockInsuficiente_Retorna400(t *testing.T) {
	env := buildTestApp(t)
	emp := env.user(t, "emp", env.centro, env.empRole)
	tipo := env.store.AddProductType("Bebidas")
	agua := env.store.AddProduct("Agua", env.centro, tipo, 2)
	efectivo := env.store.AddSaleType(entity.SaleType{Name: "Efectivo", Commission: decimal.Zero})

	resp := env.do(t, http.MethodPost, "/api/ventas", env.bearer(t, emp), map[string]any{
		"monto_bruto":   5000,
		"almacen_id":    env.centro,
		"tipo_venta_id": efectivo,
		"productos":     []map[string]any{{"producto_id": agua, "cantidad": 5}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))
	p, _ := env.store.Product(agua)
	assert.Equal(t, int64(2), p.Stock)
	assert.Zero(t, env.store.SaleCount())
}

func TestVentas_Validaciones(t *testing.T) {
	env := buildTestApp(t)
	emp := env.user(t, "emp", env.centro, env.empRole)
	tipo := env.store.AddProductType("Bebidas")
	agua := env.store.AddProduct("Agua", env.centro, tipo, 10)
	efectivo := env.store.AddSaleType(entity.SaleType{Name: "Efectivo", Commission: decimal.Zero})
	auth := env.bearer(t, emp)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"sin productos", map[string]any{"monto_bruto": 100, "almacen_id": env.centro, "tipo_venta_id": efectivo}, http.StatusBadRequest, "VALIDATION"},
		{"monto no positivo", map[string]any{"monto_bruto": 0, "almacen_id": env.centro, "tipo_venta_id": efectivo,
			"productos": []map[string]any{{"producto_id": agua, "cantidad": 1}}}, http.StatusBadRequest, "VALIDATION"},
		{"almacén ajeno", map[string]any{"monto_bruto": 100, "almacen_id": env.norte, "tipo_venta_id": efectivo,
			"productos": []map[string]any{{"producto_id": agua, "cantidad": 1}}}, http.StatusForbidden, "FORBIDDEN"},
		{"tipo de venta inexistente", map[string]any{"monto_bruto": 100, "almacen_id": env.centro, "tipo_venta_id": 999,
			"productos": []map[string]any{{"producto_id": agua, "cantidad": 1}}}, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/ventas", auth, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestVentas_ListarYObtener(t *testing.T) {
	env := buildTestApp(t)
	emp := env.user(t, "emp", env.centro, env.empRole)
	efectivo := env.store.AddSaleType(entity.SaleType{Name: "Efectivo", Commission: decimal.Zero})
	id := env.store.AddSale(entity.Sale{
		GrossAmount: decimal.NewFromInt(1000), NetAmount: decimal.NewFromInt(840),
		Date: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), WarehouseID: env.centro, SaleTypeID: efectivo,
	})
	ajena := env.store.AddSale(entity.Sale{
		GrossAmount: decimal.NewFromInt(1000), NetAmount: decimal.NewFromInt(840),
		Date: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), WarehouseID: env.norte, SaleTypeID: efectivo,
	})
	auth := env.bearer(t, emp)

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/ventas/almacen/%d", env.centro), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decode(t, resp, &list)
	assert.Len(t, list, 1)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/ventas/%d", id), auth, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/ventas/%d", ajena), auth, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// El empleado no puede borrar; el administrador del almacén sí.
	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/api/ventas/%d", id), auth, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := env.user(t, "admin", env.centro, env.adminRole)
	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/api/ventas/%d", id), env.bearer(t, admin), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestVentas_Reportes(t *testing.T) {
	env := buildTestApp(t)
	emp := env.user(t, "emp", env.centro, env.empRole)
	efectivo := env.store.AddSaleType(entity.SaleType{Name: "Efectivo", Commission: decimal.Zero})
	for _, day := range []int{1, 15} {
		env.store.AddSale(entity.Sale{
			GrossAmount: decimal.NewFromInt(1000), NetAmount: decimal.NewFromInt(840),
			Date: time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC), WarehouseID: env.centro, SaleTypeID: efectivo,
		})
	}
	auth := env.bearer(t, emp)

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/ventas/reportes/estadisticas?anio=2024&mes=2&almacenId=%d", env.centro), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats map[string]any
	decode(t, resp, &stats)
	assert.Equal(t, "2000", stats["totalVentas"])
	assert.InDelta(t, 2, stats["totalRegistros"], 0)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/ventas/reportes/grafico?periodo=mensual&anio=2024&almacenId=%d", env.centro), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chart struct {
		Data []map[string]any `json:"data"`
	}
	decode(t, resp, &chart)
	require.Len(t, chart.Data, 12)
	assert.Equal(t, "Marzo", chart.Data[2]["name"])
	assert.Equal(t, "2000", chart.Data[2]["ventas"])

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/ventas/reportes/metodos-pago?anio=2024&almacenId=%d", env.centro), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var methods []map[string]any
	decode(t, resp, &methods)
	require.Len(t, methods, 1)
	assert.Equal(t, "Efectivo", methods[0]["name"])

	// Sin almacén solo el administrador del sistema.
	resp = env.do(t, http.MethodGet, "/api/ventas/reportes/estadisticas?anio=2024", auth, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/ventas/reportes/estadisticas?anio=dos-mil", auth, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
