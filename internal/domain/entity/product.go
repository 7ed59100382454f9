package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/alfamart-stock-api/internal/domain"
)

// Estados de stock derivados (evaluados en este orden de prioridad).
const (
	StockStatusOutOfStock = "OUT_OF_STOCK"
	StockStatusLow        = "LOW_STOCK"
	StockStatusOver       = "OVERSTOCK"
	StockStatusNormal     = "NORMAL"
)

// Product representa un producto del inventario con su libro de stock.
// StockQuantity solo se modifica vía AddStock/ReduceStock; así el invariante
// 0 <= StockQuantity <= MaximumStock se mantiene siempre.
type Product struct {
	ID            string
	Code          string // código único, se guarda en mayúsculas
	Barcode       string
	Name          string
	Description   string
	UnitPrice     decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal // precio de costo
	StockQuantity int
	MinimumStock  int
	MaximumStock  int
	UnitMeasure   string // PCS, KG, LTR, MTR, BOX, PACK
	IsActive      bool
	CategoryID    string
	SupplierID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddStock suma qty al stock validando el límite máximo. Devuelve la nueva cantidad.
func (p *Product) AddStock(qty int) (int, error) {
	if qty <= 0 {
		return p.StockQuantity, domain.ErrInvalidInput
	}
	if p.StockQuantity+qty > p.MaximumStock {
		return p.StockQuantity, domain.ErrCapacityExceeded
	}
	p.StockQuantity += qty
	p.UpdatedAt = time.Now()
	return p.StockQuantity, nil
}

// ReduceStock resta qty del stock validando disponibilidad. Devuelve la nueva cantidad.
func (p *Product) ReduceStock(qty int) (int, error) {
	if qty <= 0 {
		return p.StockQuantity, domain.ErrInvalidInput
	}
	if qty > p.StockQuantity {
		return p.StockQuantity, domain.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	p.UpdatedAt = time.Now()
	return p.StockQuantity, nil
}

// CheckAvailability indica si hay stock suficiente para la cantidad requerida.
func (p *Product) CheckAvailability(required int) bool {
	return p.StockQuantity >= required
}

// StockStatus calcula el estado derivado del stock. No se persiste: siempre
// se evalúa sobre la cantidad actual para evitar valores obsoletos.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity == 0:
		return StockStatusOutOfStock
	case p.StockQuantity <= p.MinimumStock:
		return StockStatusLow
	case p.StockQuantity >= p.MaximumStock:
		return StockStatusOver
	default:
		return StockStatusNormal
	}
}

// ProfitMargin calcula el margen de ganancia porcentual sobre el costo.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return p.UnitPrice.Sub(p.CostPrice).Div(p.CostPrice).Mul(hundred)
}

// StockValue calcula el valor total del stock a precio de costo.
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

// Validate devuelve la lista completa de violaciones de los datos del producto.
func (p *Product) Validate() []string {
	var errs []string
	if len(p.Name) < 2 {
		errs = append(errs, "el nombre debe tener al menos 2 caracteres")
	}
	if len(p.Code) < 2 {
		errs = append(errs, "el código debe tener al menos 2 caracteres")
	}
	if p.Barcode != "" && len(p.Barcode) < 8 {
		errs = append(errs, "el código de barras debe tener al menos 8 caracteres")
	}
	if p.UnitPrice.IsNegative() {
		errs = append(errs, "el precio de venta no puede ser negativo")
	}
	if p.CostPrice.IsNegative() {
		errs = append(errs, "el precio de costo no puede ser negativo")
	}
	if p.MinimumStock < 0 {
		errs = append(errs, "el stock mínimo no puede ser negativo")
	}
	if p.MaximumStock < p.MinimumStock {
		errs = append(errs, "el stock máximo no puede ser menor al mínimo")
	}
	return errs
}
