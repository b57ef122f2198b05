package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/negocify-api/internal/application/sales"
	"github.com/jhoicas/negocify-api/internal/application/usecase"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var (
	_ sales.TxRunner            = (*TxRunner)(nil)
	_ usecase.IdentityTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIdentity transacción con repos de usuarios y relaciones (alta/edición/baja de usuario).
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(
	users repository.UserRepository,
	access repository.AccessRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewAccessRepository(tx))
	})
}

// RunSale transacción con repos de productos y ventas; GetForUpdate bloquea hasta el commit.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewSaleRepository(tx))
	})
}

// RunAdmin transacción con repos de usuarios, almacenes y relaciones (herramientas de administración).
func (r *TxRunner) RunAdmin(ctx context.Context, fn func(
	users repository.UserRepository,
	warehouses repository.WarehouseRepository,
	access repository.AccessRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewWarehouseRepository(tx), NewAccessRepository(tx))
	})
}
