package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest body para POST /api/transactions.
// Quantity es magnitud en STOCK_IN/STOCK_OUT y delta con signo en ADJUSTMENT.
// AutoProcess aplica la transacción al stock en el mismo acto de creación.
type CreateTransactionRequest struct {
	Type            string           `json:"transaction_type"`
	ReferenceNumber string           `json:"reference_number"`
	ProductID       string           `json:"product_id"`
	Quantity        int              `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	ProcessedBy     string           `json:"processed_by,omitempty"`
	AutoProcess     bool             `json:"auto_process,omitempty"`
}

// UpdateTransactionRequest body para PUT /api/transactions/:id.
// Solo editable mientras la transacción no esté procesada.
type UpdateTransactionRequest struct {
	Quantity *int             `json:"quantity,omitempty"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

// TransactionResponse respuesta de transacción. Quantity conserva el signo
// almacenado; TotalCost = |quantity| * unit_cost.
type TransactionResponse struct {
	ID              string           `json:"id"`
	Type            string           `json:"transaction_type"`
	ReferenceNumber string           `json:"reference_number"`
	ProductID       string           `json:"product_id"`
	ProductCode     string           `json:"product_code,omitempty"`
	ProductName     string           `json:"product_name,omitempty"`
	Quantity        int              `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	Notes           string           `json:"notes,omitempty"`
	ProcessedBy     string           `json:"processed_by,omitempty"`
	IsProcessed     bool             `json:"is_processed"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ListTransactionsRequest query params para GET /api/transactions.
type ListTransactionsRequest struct {
	ProductID string `query:"product_id"`
	Type      string `query:"transaction_type"`
	Processed *bool  `query:"is_processed"`
	From      string `query:"from"` // RFC 3339 o 2006-01-02
	To        string `query:"to"`
	PageRequest
}

// TransactionListResponse listado paginado de transacciones.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         PageResponse          `json:"page"`
}
