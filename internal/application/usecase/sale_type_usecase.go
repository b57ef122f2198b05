package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var maxCommission = decimal.NewFromInt(100)

// SaleTypeUseCase catálogo de tipos de venta. Lectura para cualquier usuario autenticado;
// escritura solo para administradores (de algún almacén o del sistema).
type SaleTypeUseCase struct {
	repo  repository.SaleTypeRepository
	guard AdminChecker
}

// NewSaleTypeUseCase construye el caso de uso.
func NewSaleTypeUseCase(repo repository.SaleTypeRepository, guard AdminChecker) *SaleTypeUseCase {
	return &SaleTypeUseCase{repo: repo, guard: guard}
}

// List todos los tipos de venta.
func (uc *SaleTypeUseCase) List(ctx context.Context) ([]dto.SaleTypeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleTypeResponse, 0, len(list))
	for _, st := range list {
		out = append(out, dto.ToSaleTypeResponse(st))
	}
	return out, nil
}

// GetByID un tipo de venta.
func (uc *SaleTypeUseCase) GetByID(ctx context.Context, id entity.ID) (*dto.SaleTypeResponse, error) {
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToSaleTypeResponse(st)
	return &out, nil
}

// Create alta de tipo de venta.
func (uc *SaleTypeUseCase) Create(ctx context.Context, p *entity.Principal, in dto.SaleTypeRequest) (*dto.SaleTypeResponse, error) {
	if err := requireAdmin(ctx, uc.guard, p); err != nil {
		return nil, err
	}
	if err := validateCommission(in.Commission); err != nil {
		return nil, err
	}
	st := &entity.SaleType{Name: strings.TrimSpace(in.Name), Commission: in.Commission}
	if err := uc.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	out := dto.ToSaleTypeResponse(st)
	return &out, nil
}

// Update edición de tipo de venta.
func (uc *SaleTypeUseCase) Update(ctx context.Context, p *entity.Principal, id entity.ID, in dto.SaleTypeRequest) (*dto.SaleTypeResponse, error) {
	if err := requireAdmin(ctx, uc.guard, p); err != nil {
		return nil, err
	}
	if err := validateCommission(in.Commission); err != nil {
		return nil, err
	}
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	st.Name = strings.TrimSpace(in.Name)
	st.Commission = in.Commission
	if err := uc.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	out := dto.ToSaleTypeResponse(st)
	return &out, nil
}

// Delete borra un tipo de venta.
func (uc *SaleTypeUseCase) Delete(ctx context.Context, p *entity.Principal, id entity.ID) error {
	if err := requireAdmin(ctx, uc.guard, p); err != nil {
		return err
	}
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func validateCommission(c decimal.Decimal) error {
	if c.IsNegative() || c.GreaterThan(maxCommission) {
		return fmt.Errorf("%w: la comisión debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}
