package sales

import (
	"context"

	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Los productos leídos con GetForUpdate quedan bloqueados hasta el commit/rollback.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}
