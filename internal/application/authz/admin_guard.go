package authz

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// AdminGuard responde "¿es este usuario administrador de algo?". Es más grueso que
// IsAuthorized: protege clases enteras de recursos (tipos de venta, gestión de usuarios).
type AdminGuard struct {
	access repository.AccessRepository
	roles  repository.RoleRepository
	log    zerolog.Logger
}

// NewAdminGuard construye el guard.
func NewAdminGuard(access repository.AccessRepository, roles repository.RoleRepository, log zerolog.Logger) *AdminGuard {
	return &AdminGuard{
		access: access,
		roles:  roles,
		log:    log,
	}
}

// RequireAdmin devuelve true si el usuario es administrador del sistema o tiene el rol
// "administrador" en cualquier almacén. Los fallos del store se envuelven con domain.ErrInternal.
func (g *AdminGuard) RequireAdmin(ctx context.Context, userID entity.ID) (bool, error) {
	isAdmin, err := g.access.IsSystemAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: admin sistema: %w", domain.ErrInternal, err)
	}
	if isAdmin {
		return true, nil
	}

	role, err := g.roles.GetByName(ctx, entity.RoleAdministrador)
	if err != nil {
		return false, fmt.Errorf("%w: rol administrador: %w", domain.ErrInternal, err)
	}
	if role == nil {
		g.log.Warn().Str("rol", entity.RoleAdministrador).Msg("rol no existe en la tabla de referencia")
		return false, nil
	}

	has, err := g.access.HasRole(ctx, userID, role.ID)
	if err != nil {
		return false, fmt.Errorf("%w: relaciones: %w", domain.ErrInternal, err)
	}
	return has, nil
}
