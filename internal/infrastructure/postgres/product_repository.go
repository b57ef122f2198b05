package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)
)

const productSelect = `
	SELECT p.id, p.nombre, p.tipo_producto_id, COALESCE(tp.nombre, ''), p.stock, p.stock_minimo, p.almacen_id
	FROM producto p
	LEFT JOIN tipo_producto tp ON tp.id = p.tipo_producto_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.ProductTypeID, &p.ProductType, &p.Stock, &p.MinStock, &p.WarehouseID); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO producto (nombre, tipo_producto_id, stock, stock_minimo, almacen_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.ProductTypeID, product.Stock, product.MinStock, product.WarehouseID,
	).Scan(&product.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: almacén o tipo inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id entity.ID) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables (el almacén no cambia).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE producto SET nombre = $2, tipo_producto_id = $3, stock = $4, stock_minimo = $5 WHERE id = $1`,
		product.ID, product.Name, product.ProductTypeID, product.Stock, product.MinStock,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra un producto.
func (r *ProductRepo) Delete(ctx context.Context, id entity.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM producto WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ListAll todos los productos.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` ORDER BY p.id`)
}

// ListByWarehouse productos de un almacén.
func (r *ProductRepo) ListByWarehouse(ctx context.Context, warehouseID entity.ID) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE p.almacen_id = $1 ORDER BY p.id`, warehouseID)
}

// GetForUpdate bloquea las filas (SELECT FOR UPDATE) en orden de id para evitar interbloqueos.
func (r *ProductRepo) GetForUpdate(ctx context.Context, warehouseID entity.ID, ids []entity.ID) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.nombre, p.tipo_producto_id, '', p.stock, p.stock_minimo, p.almacen_id
		FROM producto p
		WHERE p.almacen_id = $1 AND p.id = ANY($2)
		ORDER BY p.id
		FOR UPDATE`
	return r.list(ctx, query, warehouseID, ids)
}

// UpdateStock fija el stock de un producto.
func (r *ProductRepo) UpdateStock(ctx context.Context, id entity.ID, stock int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE producto SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProductTypeRepo tabla de referencia tipo_producto.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador.
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// List todos los tipos de producto.
func (r *ProductTypeRepo) List(ctx context.Context) ([]*entity.ProductType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre FROM tipo_producto ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()
	var out []*entity.ProductType
	for rows.Next() {
		var t entity.ProductType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// GetByID tipo de producto por ID.
func (r *ProductTypeRepo) GetByID(ctx context.Context, id entity.ID) (*entity.ProductType, error) {
	var t entity.ProductType
	if err := r.q.QueryRow(ctx, `SELECT id, nombre FROM tipo_producto WHERE id = $1`, id).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &t, nil
}
