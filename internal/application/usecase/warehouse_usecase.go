package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso de almacenes.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// ListVisible almacenes del perfil del principal con el rol que tiene en cada uno.
// Sale del perfil ya calculado: no consulta el store.
func (uc *WarehouseUseCase) ListVisible(p *entity.Principal) []entity.WarehouseAccess {
	if p == nil || p.Profile.Warehouses == nil {
		return []entity.WarehouseAccess{}
	}
	return p.Profile.Warehouses
}

// Create crea un almacén; solo un administrador del sistema.
func (uc *WarehouseUseCase) Create(ctx context.Context, p *entity.Principal, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if p == nil || !p.Profile.IsSystemAdmin {
		return nil, domain.ErrForbidden
	}
	w := &entity.Warehouse{Name: strings.TrimSpace(in.Name), Address: in.Address}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	out := dto.ToWarehouseResponse(w)
	return &out, nil
}
