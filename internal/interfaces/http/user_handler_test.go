package http_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_ListRequiereAdministradorDelAlmacen(t *testing.T) {
	env := buildTestApp(t)
	admin := env.user(t, "admin", env.centro, env.adminRole)
	emp := env.user(t, "emp", env.centro, env.empRole)
	env.user(t, "otro", env.norte, env.empRole)

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/users?almacen_id=%d", env.centro), env.bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Count int `json:"count"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 2, body.Count)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/users?almacen_id=%d", env.centro), env.bearer(t, emp), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/users?almacen_id=%d", env.norte), env.bearer(t, admin), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users", env.bearer(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// El id del almacén llega como texto en el JSON y se normaliza igual que uno numérico.
func TestUsers_CreateConIdsEnTexto(t *testing.T) {
	env := buildTestApp(t)
	admin := env.user(t, "admin", env.centro, env.adminRole)

	resp := env.do(t, http.MethodPost, "/api/users", env.bearer(t, admin), map[string]any{
		"nombre": "Luis", "apellido": "Gómez", "email": "luis@negocify.co", "password": testPassword,
		"rol": fmt.Sprint(env.empRole), "almacen_id": fmt.Sprint(env.centro),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	id := int64(created["id"].(float64))

	rows := env.store.AccessFor(id)
	require.Len(t, rows, 1)
	assert.Equal(t, env.centro, rows[0].WarehouseID)
	assert.Equal(t, env.empRole, rows[0].RoleID)
}

func TestUsers_CreateEnAlmacenAjeno_Retorna403(t *testing.T) {
	env := buildTestApp(t)
	admin := env.user(t, "admin", env.centro, env.adminRole)

	resp := env.do(t, http.MethodPost, "/api/users", env.bearer(t, admin), map[string]any{
		"nombre": "Luis", "apellido": "Gómez", "email": "luis@negocify.co", "password": testPassword,
		"rol": env.adminRole, "almacen_id": env.norte,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	u, err := env.store.Users().GetByEmail(context.Background(), "luis@negocify.co")
	require.NoError(t, err)
	assert.Nil(t, u, "no se crea el usuario")
}

func TestUsers_CreateRolInexistente_Retorna400(t *testing.T) {
	env := buildTestApp(t)
	admin := env.user(t, "admin", env.centro, env.adminRole)

	resp := env.do(t, http.MethodPost, "/api/users", env.bearer(t, admin), map[string]any{
		"nombre": "Luis", "apellido": "Gómez", "email": "luis@negocify.co", "password": testPassword,
		"rol": 999, "almacen_id": env.centro,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestUsers_GetByID(t *testing.T) {
	env := buildTestApp(t)
	admin := env.user(t, "admin", env.centro, env.adminRole)
	emp := env.user(t, "emp", env.centro, env.empRole)

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", emp), env.bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Email     string           `json:"email"`
		Almacenes []map[string]any `json:"almacenes"`
	}
	decode(t, resp, &detail)
	assert.Equal(t, "emp@negocify.co", detail.Email)
	require.Len(t, detail.Almacenes, 1)
	assert.Equal(t, "empleado", detail.Almacenes[0]["rol"])

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", admin), env.bearer(t, emp), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users/9999", env.bearer(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users/abc", env.bearer(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_UpdateCambiaRol(t *testing.T) {
	env := buildTestApp(t)
	admin := env.user(t, "admin", env.centro, env.adminRole)
	emp := env.user(t, "emp", env.centro, env.empRole)

	resp := env.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", emp), env.bearer(t, admin), map[string]any{
		"nombre": "Emp", "apellido": "Nuevo", "email": "emp@negocify.co",
		"rol": env.adminRole, "almacen_id": env.centro,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rows := env.store.AccessFor(emp)
	require.Len(t, rows, 1)
	assert.Equal(t, env.adminRole, rows[0].RoleID)
}

func TestUsers_Delete(t *testing.T) {
	env := buildTestApp(t)
	admin := env.user(t, "admin", env.centro, env.adminRole)
	emp := env.user(t, "emp", env.centro, env.empRole)

	resp := env.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", emp), env.bearer(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "almacen_id es obligatorio")

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d?almacen_id=%d", emp, env.centro), env.bearer(t, admin), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, env.store.AccessFor(emp))
}
