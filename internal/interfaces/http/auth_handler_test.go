package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Login_Me(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"nombre": "Ana", "apellido": "Pérez", "email": "ana@negocify.co", "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reg struct {
		Usuario map[string]any `json:"usuario"`
		Token   string         `json:"token"`
	}
	decode(t, resp, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ana@negocify.co", reg.Usuario["email"])
	assert.NotContains(t, reg.Usuario, "password", "el hash nunca sale en la respuesta")

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@negocify.co", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = env.do(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	decode(t, resp, &me)
	assert.Equal(t, "Ana", me["nombre"])
	assert.Equal(t, false, me["esAdminSistema"])
	assert.Empty(t, me["almacenes"])
}

func TestRegister_Validaciones(t *testing.T) {
	env := buildTestApp(t)
	env.user(t, "ana", env.centro, env.empRole)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"faltan campos", map[string]any{"email": "x@negocify.co"}, http.StatusBadRequest, "VALIDATION"},
		{"password corto", map[string]any{"nombre": "A", "apellido": "B", "email": "b@negocify.co", "password": "123"}, http.StatusBadRequest, "VALIDATION"},
		{"email duplicado", map[string]any{"nombre": "A", "apellido": "B", "email": "ana@negocify.co", "password": testPassword}, http.StatusConflict, "EMAIL_EXISTS"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestRegister_CuerpoInvalido(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodPost, "/api/auth/register", "", "no-es-un-objeto")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := buildTestApp(t)
	env.user(t, "ana", env.centro, env.empRole)

	for _, body := range []map[string]any{
		{"email": "ana@negocify.co", "password": "incorrecta"},
		{"email": "nadie@negocify.co", "password": testPassword},
	} {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
	}
}

func TestMe_IncluyePerfilDeAlmacenes(t *testing.T) {
	env := buildTestApp(t)
	id := env.user(t, "ana", env.norte, env.adminRole)
	env.store.Assign(id, env.centro, env.empRole)

	resp := env.do(t, http.MethodGet, "/api/auth/me", env.bearer(t, id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		Almacenes []struct {
			ID  int64  `json:"id"`
			Rol string `json:"rol"`
		} `json:"almacenes"`
	}
	decode(t, resp, &me)
	require.Len(t, me.Almacenes, 2)
	assert.Equal(t, env.centro, me.Almacenes[0].ID, "ordenados por nombre de almacén")
	assert.Equal(t, "empleado", me.Almacenes[0].Rol)
	assert.Equal(t, "administrador", me.Almacenes[1].Rol)
}
