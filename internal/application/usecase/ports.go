package usecase

import (
	"context"

	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// IdentityTxRunner ejecuta fn dentro de una transacción de BD con los repositorios de identidad
// atados a ella. Alta/edición de usuario y sus relaciones son atómicas.
type IdentityTxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		users repository.UserRepository,
		access repository.AccessRepository,
	) error) error
}

// AdminChecker verificación gruesa de administrador (implementado por *authz.AdminGuard).
type AdminChecker interface {
	RequireAdmin(ctx context.Context, userID int64) (bool, error)
}

// requireAdmin permite el paso si el perfil de la petición ya muestra rol administrador;
// si no, consulta el guard (marcador de sistema o relación con el rol administrador).
func requireAdmin(ctx context.Context, guard AdminChecker, p *entity.Principal) error {
	if p == nil {
		return domain.ErrForbidden
	}
	if authz.AdminInAnyWarehouse(p) {
		return nil
	}
	ok, err := guard.RequireAdmin(ctx, p.User.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
