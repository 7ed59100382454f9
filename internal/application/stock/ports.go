package stock

import (
	"context"

	"github.com/jhoicas/alfamart-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del stock y la
// marca de procesado se confirmen juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
