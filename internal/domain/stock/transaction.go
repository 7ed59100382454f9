// Package stock implementa el núcleo de transacciones de inventario:
// el registro común, las variantes (entrada, salida, ajuste), la fábrica
// por tipo y el ciclo de vida crear -> validar -> procesar.
package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
)

// TransactionType identifica la variante de una transacción de stock.
type TransactionType string

// Tipos de transacción. TRANSFER y RETURN están declarados y se aceptan en
// filtros de listado, pero no tienen variante construible ni semántica de
// aplicación (la fábrica los rechaza).
const (
	TypeStockIn    TransactionType = "STOCK_IN"
	TypeStockOut   TransactionType = "STOCK_OUT"
	TypeAdjustment TransactionType = "ADJUSTMENT"
	TypeTransfer   TransactionType = "TRANSFER"
	TypeReturn     TransactionType = "RETURN"
)

// Known indica si el tipo existe en la enumeración (incluye los no construibles).
func (t TransactionType) Known() bool {
	switch t {
	case TypeStockIn, TypeStockOut, TypeAdjustment, TypeTransfer, TypeReturn:
		return true
	}
	return false
}

// Transaction es el registro común compartido por todas las variantes.
// Quantity lleva signo según la convención de cada variante: positivo en
// entradas, negativo en salidas, con signo libre en ajustes.
type Transaction struct {
	ID              string
	Type            TransactionType
	ReferenceNumber string // único, normalizado a mayúsculas
	ProductID       string
	Quantity        int
	UnitCost        *decimal.Decimal // requerido y positivo solo en entradas
	Notes           string
	ProcessedBy     string
	IsProcessed     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TotalCost calcula el costo total de la transacción: |cantidad| * costo unitario.
func (t *Transaction) TotalCost() decimal.Decimal {
	if t.UnitCost == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(abs(t.Quantity))).Mul(*t.UnitCost)
}

// commonErrors reúne las validaciones compartidas por todas las variantes.
func (t *Transaction) commonErrors(product *entity.Product) []string {
	var errs []string
	if len(strings.TrimSpace(t.ReferenceNumber)) < 3 {
		errs = append(errs, "el número de referencia debe tener al menos 3 caracteres")
	}
	if t.Quantity == 0 {
		errs = append(errs, "la cantidad de la transacción no puede ser cero")
	}
	if t.UnitCost != nil && t.UnitCost.IsNegative() {
		errs = append(errs, "el costo unitario no puede ser negativo")
	}
	if t.ProductID == "" || product == nil {
		errs = append(errs, "la transacción requiere un producto")
	}
	return errs
}

// Variant es la interfaz cerrada que implementan las tres variantes
// construibles. Validate devuelve todas las violaciones acumuladas y Apply
// muta el producto exclusivamente a través de sus primitivas de stock.
type Variant interface {
	Record() *Transaction
	Validate(product *entity.Product) []string
	Apply(product *entity.Product) error
}

// NormalizeReference normaliza un número de referencia: sin espacios y en mayúsculas.
func NormalizeReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func insufficientStockMsg(product *entity.Product, required int) string {
	return fmt.Sprintf("stock insuficiente: disponible %d, requerido %d", product.StockQuantity, required)
}
