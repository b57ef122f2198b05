package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/testutil/memstore"
)

// world fixture común: dos almacenes, roles de referencia y un store en memoria.
type world struct {
	store  *memstore.Store
	admin  entity.ID
	emp    entity.ID
	centro entity.ID
	norte  entity.ID
}

func newWorld() *world {
	s := memstore.New()
	return &world{
		store:  s,
		admin:  s.AddRole(entity.RoleAdministrador),
		emp:    s.AddRole(entity.RoleEmpleado),
		centro: s.AddWarehouse("Centro"),
		norte:  s.AddWarehouse("Norte"),
	}
}

func (w *world) guard() *authz.AdminGuard {
	return authz.NewAdminGuard(w.store.Access(), w.store.Roles(), zerolog.Nop())
}

// principal resuelve el perfil real del usuario, igual que el gate en cada petición.
func (w *world) principal(t *testing.T, userID entity.ID) *entity.Principal {
	t.Helper()
	profile, err := authz.NewResolver(w.store.Access(), w.store.Warehouses(), zerolog.Nop()).
		ResolvePermissions(context.Background(), userID)
	require.NoError(t, err)
	u, err := w.store.Users().GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return &entity.Principal{User: u.Sanitized(), Profile: profile}
}

func (w *world) userWithRole(name string, warehouseID, roleID entity.ID) entity.ID {
	id := w.store.AddUser(name, name+"@test.com", "x")
	w.store.Assign(id, warehouseID, roleID)
	return id
}
