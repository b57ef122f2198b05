package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

func principalWith(access ...entity.WarehouseAccess) *entity.Principal {
	return &entity.Principal{
		User:    entity.User{ID: 1, Name: "Ana"},
		Profile: entity.AuthorizationProfile{Warehouses: access},
	}
}

func TestIsAuthorized_SinPrincipalOAlmacen(t *testing.T) {
	p := principalWith(entity.WarehouseAccess{ID: 5, Role: entity.RoleAdministrador})

	assert.False(t, IsAuthorized(nil, nil, 5))
	assert.False(t, IsAuthorized(p, nil, 0))

	admin := &entity.Principal{Profile: entity.AuthorizationProfile{IsSystemAdmin: true}}
	assert.False(t, IsAuthorized(admin, nil, 0), "sin almacén ni el admin del sistema pasa")
}

func TestIsAuthorized_AdminSistemaSiempre(t *testing.T) {
	admin := &entity.Principal{Profile: entity.AuthorizationProfile{IsSystemAdmin: true}}
	for _, roles := range [][]string{nil, {}, {"administrador"}, {"inexistente"}} {
		assert.True(t, IsAuthorized(admin, roles, 42))
	}
}

func TestIsAuthorized_RolesVaciosBastaCualquierRol(t *testing.T) {
	p := principalWith(entity.WarehouseAccess{ID: 5, Role: entity.RoleEmpleado})

	assert.True(t, IsAuthorized(p, nil, 5))
	assert.True(t, IsAuthorized(p, []string{}, 5))
	assert.False(t, IsAuthorized(p, []string{}, 6))
}

func TestIsAuthorized_CoincidenciaExactaDeRol(t *testing.T) {
	p := principalWith(entity.WarehouseAccess{ID: 5, Role: entity.RoleAdministrador})

	assert.True(t, IsAuthorized(p, []string{"empleado", "administrador"}, 5))
	assert.False(t, IsAuthorized(p, []string{"Administrador"}, 5), "sensible a mayúsculas")
	assert.False(t, IsAuthorized(p, []string{"admin"}, 5))
}

func TestIsAuthorized_MonotoniaAlAmpliarRoles(t *testing.T) {
	p := principalWith(
		entity.WarehouseAccess{ID: 1, Role: entity.RoleEmpleado},
		entity.WarehouseAccess{ID: 2, Role: entity.RoleAdministrador},
	)
	base := []string{"empleado"}
	wider := []string{"empleado", "administrador"}
	for _, w := range []entity.ID{1, 2, 3} {
		if IsAuthorized(p, base, w) {
			assert.True(t, IsAuthorized(p, wider, w), "almacén %d", w)
		}
	}
}

func TestIsAuthorized_RepresentacionDelIdIndiferente(t *testing.T) {
	p := principalWith(entity.WarehouseAccess{ID: 5, Role: entity.RoleEmpleado})

	fromNumber, err := entity.ParseID(5)
	require.NoError(t, err)
	fromString, err := entity.ParseID("5")
	require.NoError(t, err)
	fromFloat, err := entity.ParseID(float64(5))
	require.NoError(t, err)
	fromPadded, err := entity.ParseID(" 5 ")
	require.NoError(t, err)

	want := IsAuthorized(p, []string{"empleado"}, fromNumber)
	assert.True(t, want)
	assert.Equal(t, want, IsAuthorized(p, []string{"empleado"}, fromString))
	assert.Equal(t, want, IsAuthorized(p, []string{"empleado"}, fromFloat))
	assert.Equal(t, want, IsAuthorized(p, []string{"empleado"}, fromPadded))
}

func TestAdminInAnyWarehouse(t *testing.T) {
	assert.False(t, AdminInAnyWarehouse(nil))
	assert.False(t, AdminInAnyWarehouse(principalWith(entity.WarehouseAccess{ID: 1, Role: entity.RoleEmpleado})))
	assert.True(t, AdminInAnyWarehouse(principalWith(
		entity.WarehouseAccess{ID: 1, Role: entity.RoleEmpleado},
		entity.WarehouseAccess{ID: 2, Role: entity.RoleAdministrador},
	)))
	assert.True(t, AdminInAnyWarehouse(&entity.Principal{Profile: entity.AuthorizationProfile{IsSystemAdmin: true}}))
}

func TestRequire(t *testing.T) {
	p := principalWith(entity.WarehouseAccess{ID: 5, Role: entity.RoleEmpleado})

	assert.NoError(t, Require(p, 5))
	assert.NoError(t, Require(p, 5, entity.RoleAdministrador, entity.RoleEmpleado))
	assert.ErrorIs(t, Require(p, 5, entity.RoleAdministrador), domain.ErrForbidden)
	assert.ErrorIs(t, Require(nil, 5), domain.ErrForbidden)
}
