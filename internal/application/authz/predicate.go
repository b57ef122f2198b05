package authz

import (
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// IsAuthorized decide si el principal puede actuar sobre el almacén target con alguno de
// los roles requeridos. Función pura: sin principal o sin almacén devuelve false.
//
// Un administrador del sistema siempre está autorizado. requiredRoles vacío significa
// que basta con tener cualquier rol en el almacén. Los roles se comparan por nombre
// exacto (sensible a mayúsculas).
func IsAuthorized(p *entity.Principal, requiredRoles []string, target entity.ID) bool {
	if p == nil || target <= 0 {
		return false
	}
	if p.Profile.IsSystemAdmin {
		return true
	}
	access, ok := p.Profile.Access(target)
	if !ok {
		return false
	}
	if len(requiredRoles) == 0 {
		return true
	}
	for _, role := range requiredRoles {
		if role == access.Role {
			return true
		}
	}
	return false
}

// Require es IsAuthorized en forma de error: domain.ErrForbidden si se deniega.
func Require(p *entity.Principal, target entity.ID, requiredRoles ...string) error {
	if !IsAuthorized(p, requiredRoles, target) {
		return domain.ErrForbidden
	}
	return nil
}

// AdminInAnyWarehouse indica, sin consultar el store, si el perfil ya cargado tiene
// rol administrador en algún almacén (o es administrador del sistema).
func AdminInAnyWarehouse(p *entity.Principal) bool {
	if p == nil {
		return false
	}
	if p.Profile.IsSystemAdmin {
		return true
	}
	for _, w := range p.Profile.Warehouses {
		if w.Role == entity.RoleAdministrador {
			return true
		}
	}
	return false
}
