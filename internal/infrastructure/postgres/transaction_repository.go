package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/repository"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/stock"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const transactionColumns = `id, transaction_type, reference_number, product_id, quantity,
		unit_cost, COALESCE(notes, ''), COALESCE(processed_by, ''), is_processed, created_at, updated_at`

// StockTransactionRepo implementación del puerto StockTransactionRepository
// sobre PostgreSQL (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste una transacción. La referencia duplicada (índice único
// case-insensitive) se traduce a ErrDuplicate.
func (r *StockTransactionRepo) Create(t *stock.Transaction) error {
	query := `
		INSERT INTO stock_transactions (id, transaction_type, reference_number, product_id,
			quantity, unit_cost, notes, processed_by, is_processed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, string(t.Type), t.ReferenceNumber, t.ProductID,
		t.Quantity, t.UnitCost, t.Notes, t.ProcessedBy, t.IsProcessed, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *StockTransactionRepo) GetByID(id string) (*stock.Transaction, error) {
	return r.getOne(`SELECT `+transactionColumns+` FROM stock_transactions WHERE id = $1`, id)
}

// GetForUpdate obtiene la transacción y bloquea la fila (SELECT FOR UPDATE)
// para que dos procesamientos concurrentes no puedan aplicarla dos veces.
func (r *StockTransactionRepo) GetForUpdate(id string) (*stock.Transaction, error) {
	return r.getOne(`SELECT `+transactionColumns+` FROM stock_transactions WHERE id = $1 FOR UPDATE`, id)
}

// GetByReference obtiene una transacción por número de referencia (ya normalizado a mayúsculas).
func (r *StockTransactionRepo) GetByReference(referenceNumber string) (*stock.Transaction, error) {
	return r.getOne(`SELECT `+transactionColumns+` FROM stock_transactions WHERE reference_number = $1`, referenceNumber)
}

func (r *StockTransactionRepo) getOne(query string, arg any) (*stock.Transaction, error) {
	var t stock.Transaction
	var transactionType string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &transactionType, &t.ReferenceNumber, &t.ProductID, &t.Quantity,
		&t.UnitCost, &t.Notes, &t.ProcessedBy, &t.IsProcessed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	t.Type = stock.TransactionType(transactionType)
	return &t, nil
}

// Update actualiza los campos mutables y la marca de procesado.
func (r *StockTransactionRepo) Update(t *stock.Transaction) error {
	query := `
		UPDATE stock_transactions SET quantity = $2, unit_cost = $3, notes = NULLIF($4, ''),
			processed_by = NULLIF($5, ''), is_processed = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Quantity, t.UnitCost, t.Notes, t.ProcessedBy, t.IsProcessed, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock transaction: %w", err)
	}
	return nil
}

// List lista transacciones según el filtro, más recientes primero.
func (r *StockTransactionRepo) List(filter repository.TransactionFilter) ([]*stock.Transaction, error) {
	var conditions []string
	var args []any

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, condition+"$"+strconv.Itoa(len(args)))
	}
	if filter.ProductID != "" {
		add("product_id = ", filter.ProductID)
	}
	if filter.Type != "" {
		add("transaction_type = ", string(filter.Type))
	}
	if filter.Processed != nil {
		add("is_processed = ", *filter.Processed)
	}
	if filter.From != nil {
		add("created_at >= ", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= ", *filter.To)
	}

	query := `SELECT ` + transactionColumns + ` FROM stock_transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*stock.Transaction
	for rows.Next() {
		var t stock.Transaction
		var transactionType string
		if err := rows.Scan(
			&t.ID, &transactionType, &t.ReferenceNumber, &t.ProductID, &t.Quantity,
			&t.UnitCost, &t.Notes, &t.ProcessedBy, &t.IsProcessed, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		t.Type = stock.TransactionType(transactionType)
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina una transacción por ID (el caso de uso exige que esté sin procesar).
func (r *StockTransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock transaction: %w", err)
	}
	return nil
}
