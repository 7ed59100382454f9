package repository

import (
	"time"

	"github.com/jhoicas/alfamart-stock-api/internal/domain/stock"
)

// TransactionFilter filtros de listado de transacciones (lectura pura).
// Type acepta también TRANSFER y RETURN aunque no sean construibles.
type TransactionFilter struct {
	ProductID string
	Type      stock.TransactionType
	Processed *bool
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockTransactionRepository define el puerto de persistencia para las
// transacciones de stock. GetForUpdate bloquea la fila para el procesamiento.
type StockTransactionRepository interface {
	Create(t *stock.Transaction) error
	GetByID(id string) (*stock.Transaction, error)
	GetForUpdate(id string) (*stock.Transaction, error)
	GetByReference(referenceNumber string) (*stock.Transaction, error)
	Update(t *stock.Transaction) error
	List(filter TransactionFilter) ([]*stock.Transaction, error)
	Delete(id string) error
}
