package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.SaleTypeRepository = (*SaleTypeRepo)(nil)
)

const saleSelect = `
	SELECT v.id, v.monto_bruto, v.monto_neto, v.fecha, v.almacen_id, v.tipo_venta_id,
	       tv.id, tv.nombre, tv.comision
	FROM venta v
	LEFT JOIN tipo_venta tv ON tv.id = v.tipo_venta_id`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s          entity.Sale
		typeID     *int64
		typeName   *string
		commission decimal.NullDecimal
	)
	if err := row.Scan(&s.ID, &s.GrossAmount, &s.NetAmount, &s.Date, &s.WarehouseID, &s.SaleTypeID,
		&typeID, &typeName, &commission); err != nil {
		return nil, err
	}
	if typeID != nil && typeName != nil {
		s.SaleType = &entity.SaleType{ID: *typeID, Name: *typeName, Commission: commission.Decimal}
	}
	return &s, nil
}

// Create persiste la venta y asigna su ID.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO venta (monto_bruto, monto_neto, fecha, almacen_id, tipo_venta_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		sale.GrossAmount, sale.NetAmount, sale.Date, sale.WarehouseID, sale.SaleTypeID,
	).Scan(&sale.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: almacén o tipo de venta inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID venta con su tipo.
func (r *SaleRepo) GetByID(ctx context.Context, id entity.ID) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update actualiza tipo, neto y fecha.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE venta SET tipo_venta_id = $2, monto_neto = $3, fecha = $4 WHERE id = $1`,
		sale.ID, sale.SaleTypeID, sale.NetAmount, sale.Date,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra una venta.
func (r *SaleRepo) Delete(ctx context.Context, id entity.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM venta WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ListByWarehouse ventas del almacén, más recientes primero.
func (r *SaleRepo) ListByWarehouse(ctx context.Context, warehouseID entity.ID) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE v.almacen_id = $1 ORDER BY v.fecha DESC, v.id DESC`, warehouseID)
}

// ListInRange ventas con fecha en [from, to]; warehouseID nil abarca todos los almacenes.
func (r *SaleRepo) ListInRange(ctx context.Context, warehouseID *entity.ID, from, to time.Time) ([]*entity.Sale, error) {
	if warehouseID == nil {
		return r.list(ctx, saleSelect+` WHERE v.fecha BETWEEN $1 AND $2 ORDER BY v.id`, from, to)
	}
	return r.list(ctx, saleSelect+` WHERE v.almacen_id = $3 AND v.fecha BETWEEN $1 AND $2 ORDER BY v.id`, from, to, *warehouseID)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SaleTypeRepo tabla tipo_venta.
type SaleTypeRepo struct {
	q Querier
}

// NewSaleTypeRepository construye el adaptador.
func NewSaleTypeRepository(q Querier) *SaleTypeRepo {
	return &SaleTypeRepo{q: q}
}

// Create persiste un tipo de venta.
func (r *SaleTypeRepo) Create(ctx context.Context, st *entity.SaleType) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO tipo_venta (nombre, comision) VALUES ($1, $2) RETURNING id`, st.Name, st.Commission,
	).Scan(&st.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale type: %w", err)
	}
	return nil
}

// GetByID tipo de venta por ID.
func (r *SaleTypeRepo) GetByID(ctx context.Context, id entity.ID) (*entity.SaleType, error) {
	var st entity.SaleType
	err := r.q.QueryRow(ctx, `SELECT id, nombre, comision FROM tipo_venta WHERE id = $1`, id).
		Scan(&st.ID, &st.Name, &st.Commission)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale type: %w", err)
	}
	return &st, nil
}

// Update actualiza nombre y comisión.
func (r *SaleTypeRepo) Update(ctx context.Context, st *entity.SaleType) error {
	tag, err := r.q.Exec(ctx, `UPDATE tipo_venta SET nombre = $2, comision = $3 WHERE id = $1`, st.ID, st.Name, st.Commission)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update sale type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra un tipo de venta; falla con ErrConflict si hay ventas que lo usan.
func (r *SaleTypeRepo) Delete(ctx context.Context, id entity.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tipo_venta WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete sale type: %w", err)
	}
	return nil
}

// List todos los tipos de venta.
func (r *SaleTypeRepo) List(ctx context.Context) ([]*entity.SaleType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, comision FROM tipo_venta ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sale types: %w", err)
	}
	defer rows.Close()
	var out []*entity.SaleType
	for rows.Next() {
		var st entity.SaleType
		if err := rows.Scan(&st.ID, &st.Name, &st.Commission); err != nil {
			return nil, fmt.Errorf("scan sale type: %w", err)
		}
		out = append(out, &st)
	}
	return out, rows.Err()
}
