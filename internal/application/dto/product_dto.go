package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. El stock inicial es
// siempre 0: las existencias entran únicamente vía transacciones.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Barcode      string          `json:"barcode,omitempty"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	MinimumStock int             `json:"minimum_stock"`
	MaximumStock int             `json:"maximum_stock"`
	UnitMeasure  string          `json:"unit_measure,omitempty"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
// No permite modificar StockQuantity: el stock solo cambia vía transacciones.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Barcode      *string          `json:"barcode,omitempty"`
	Description  *string          `json:"description,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	MinimumStock *int             `json:"minimum_stock,omitempty"`
	MaximumStock *int             `json:"maximum_stock,omitempty"`
	UnitMeasure  *string          `json:"unit_measure,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// ProductResponse respuesta de producto. StockStatus, ProfitMargin y
// StockValue son derivados: se calculan al responder, nunca se persisten.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Barcode       string          `json:"barcode,omitempty"`
	Description   string          `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinimumStock  int             `json:"minimum_stock"`
	MaximumStock  int             `json:"maximum_stock"`
	UnitMeasure   string          `json:"unit_measure"`
	IsActive      bool            `json:"is_active"`
	CategoryID    string          `json:"category_id"`
	SupplierID    string          `json:"supplier_id"`
	StockStatus   string          `json:"stock_status"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	StockValue    decimal.Decimal `json:"stock_value"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}
