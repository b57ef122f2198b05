package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var productWriters = []string{entity.RoleAdministrador, entity.RoleEmpleado}

// ProductUseCase CRUD de productos acotado al almacén del producto.
type ProductUseCase struct {
	repo       repository.ProductRepository
	types      repository.ProductTypeRepository
	warehouses repository.WarehouseRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, types repository.ProductTypeRepository, warehouses repository.WarehouseRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, types: types, warehouses: warehouses}
}

// ListTypes catálogo de tipos de producto.
func (uc *ProductUseCase) ListTypes(ctx context.Context) ([]dto.ProductTypeResponse, error) {
	types, err := uc.types.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.ProductTypeResponse{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

// List productos de un almacén (cualquier rol en él). warehouseID 0 lista todos y
// solo lo puede pedir un administrador del sistema.
func (uc *ProductUseCase) List(ctx context.Context, p *entity.Principal, warehouseID entity.ID) ([]dto.ProductResponse, error) {
	var (
		products []*entity.Product
		err      error
	)
	if warehouseID == 0 {
		if p == nil || !p.Profile.IsSystemAdmin {
			return nil, domain.ErrForbidden
		}
		products, err = uc.repo.ListAll(ctx)
	} else {
		if err := authz.Require(p, warehouseID); err != nil {
			return nil, err
		}
		products, err = uc.repo.ListByWarehouse(ctx, warehouseID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, prod := range products {
		out = append(out, dto.ToProductResponse(prod))
	}
	return out, nil
}

// Create crea un producto en el almacén indicado.
func (uc *ProductUseCase) Create(ctx context.Context, p *entity.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	warehouseID := entity.ID(in.WarehouseID)
	if err := authz.Require(p, warehouseID, productWriters...); err != nil {
		return nil, err
	}
	w, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: el almacén no existe", domain.ErrInvalidInput)
	}
	if err := uc.checkType(ctx, entity.ID(in.ProductTypeID)); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:          strings.TrimSpace(in.Name),
		ProductTypeID: entity.ID(in.ProductTypeID),
		Stock:         in.Stock,
		MinStock:      in.MinStock,
		WarehouseID:   warehouseID,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.reload(ctx, product.ID)
}

// Update modifica un producto; la autorización se evalúa contra su almacén actual.
func (uc *ProductUseCase) Update(ctx context.Context, p *entity.Principal, id entity.ID, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.authorized(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.ProductTypeID != nil {
		if err := uc.checkType(ctx, entity.ID(*in.ProductTypeID)); err != nil {
			return nil, err
		}
		product.ProductTypeID = entity.ID(*in.ProductTypeID)
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.reload(ctx, id)
}

// Delete borra un producto de un almacén donde el llamador tenga rol de escritura.
func (uc *ProductUseCase) Delete(ctx context.Context, p *entity.Principal, id entity.ID) error {
	if _, err := uc.authorized(ctx, p, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) authorized(ctx context.Context, p *entity.Principal, id entity.ID) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Require(p, product.WarehouseID, productWriters...); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) checkType(ctx context.Context, typeID entity.ID) error {
	t, err := uc.types.GetByID(ctx, typeID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: el tipo de producto no existe", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *ProductUseCase) reload(ctx context.Context, id entity.ID) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}
