// Package authz contiene el modelo RBAC por almacén: cálculo del perfil de autorización,
// el predicado de permiso por almacén y la verificación de administrador.
package authz

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// Resolver calcula el AuthorizationProfile de un usuario a partir del Identity Store.
// No guarda estado entre llamadas: un rol revocado se refleja en la siguiente petición.
type Resolver struct {
	access     repository.AccessRepository
	warehouses repository.WarehouseRepository
	log        zerolog.Logger
}

// NewResolver construye el resolver.
func NewResolver(access repository.AccessRepository, warehouses repository.WarehouseRepository, log zerolog.Logger) *Resolver {
	return &Resolver{
		access:     access,
		warehouses: warehouses,
		log:        log,
	}
}

// ResolvePermissions devuelve el perfil del usuario. Los errores del store se envuelven
// con domain.ErrPermissionResolution.
func (r *Resolver) ResolvePermissions(ctx context.Context, userID entity.ID) (entity.AuthorizationProfile, error) {
	isAdmin, err := r.access.IsSystemAdmin(ctx, userID)
	if err != nil {
		return entity.AuthorizationProfile{}, fmt.Errorf("%w: admin sistema: %w", domain.ErrPermissionResolution, err)
	}
	if isAdmin {
		return r.systemAdminProfile(ctx)
	}

	rows, err := r.access.ListAccessRows(ctx, userID)
	if err != nil {
		return entity.AuthorizationProfile{}, fmt.Errorf("%w: relaciones: %w", domain.ErrPermissionResolution, err)
	}

	warehouses := make([]entity.WarehouseAccess, 0, len(rows))
	seen := make(map[entity.ID]string, len(rows))
	for _, row := range rows {
		if row.WarehouseName == nil || row.RoleName == nil {
			r.log.Warn().
				Int64("user_id", userID).
				Int64("relacion_id", row.JoinID).
				Int64("almacen_id", row.WarehouseID).
				Int64("rol_id", row.RoleID).
				Bool("almacen_ausente", row.WarehouseName == nil).
				Bool("rol_ausente", row.RoleName == nil).
				Msg("relación usuario_rol_almacen colgante ignorada")
			continue
		}
		if prev, dup := seen[row.WarehouseID]; dup {
			// Más de un rol en el mismo almacén: se conserva el primero.
			r.log.Warn().
				Int64("user_id", userID).
				Int64("almacen_id", row.WarehouseID).
				Str("rol_conservado", prev).
				Str("rol_ignorado", *row.RoleName).
				Msg("usuario con varios roles en un mismo almacén")
			continue
		}
		seen[row.WarehouseID] = *row.RoleName
		warehouses = append(warehouses, entity.WarehouseAccess{
			ID:      row.WarehouseID,
			Name:    *row.WarehouseName,
			Address: row.WarehouseAddress,
			Role:    *row.RoleName,
			RoleID:  row.RoleID,
		})
	}

	return entity.AuthorizationProfile{IsSystemAdmin: false, Warehouses: warehouses}, nil
}

func (r *Resolver) systemAdminProfile(ctx context.Context) (entity.AuthorizationProfile, error) {
	all, err := r.warehouses.ListAll(ctx)
	if err != nil {
		return entity.AuthorizationProfile{}, fmt.Errorf("%w: almacenes: %w", domain.ErrPermissionResolution, err)
	}
	warehouses := make([]entity.WarehouseAccess, 0, len(all))
	for _, w := range all {
		warehouses = append(warehouses, entity.WarehouseAccess{
			ID:      w.ID,
			Name:    w.Name,
			Address: w.Address,
			Role:    entity.RoleSystemAdmin,
			RoleID:  entity.RoleSystemAdminID,
		})
	}
	return entity.AuthorizationProfile{IsSystemAdmin: true, Warehouses: warehouses}, nil
}
