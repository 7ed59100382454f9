package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appstock "github.com/jhoicas/alfamart-stock-api/internal/application/stock"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ appstock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un fallo de fn (o del commit) deshace todo: nunca queda
// el stock mutado con la transacción sin marcar, ni al revés.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewStockTransactionRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(txRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
