package stock

import (
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
)

// Las tres variantes comparten el registro común y difieren en la convención
// de signo, las validaciones extra y el paso de aplicación. Todas mutan el
// producto solo vía AddStock/ReduceStock, que son las que sostienen el
// invariante 0 <= stock <= máximo.

// StockIn es una entrada de mercancía (recepción de proveedor).
// La cantidad almacenada es siempre positiva y el costo unitario obligatorio.
type StockIn struct {
	*Transaction
}

// Record devuelve el registro común.
func (t StockIn) Record() *Transaction { return t.Transaction }

// Validate acumula las validaciones comunes más las propias de una entrada.
func (t StockIn) Validate(product *entity.Product) []string {
	errs := t.commonErrors(product)
	if t.Quantity <= 0 {
		errs = append(errs, "la cantidad de una entrada debe ser positiva")
	}
	if t.UnitCost == nil || !t.UnitCost.IsPositive() {
		errs = append(errs, "el costo unitario es obligatorio en entradas")
	}
	return errs
}

// Apply suma la cantidad al stock del producto.
func (t StockIn) Apply(product *entity.Product) error {
	_, err := product.AddStock(t.Quantity)
	return err
}

// StockOut es una salida de mercancía (venta o despacho).
// La cantidad almacenada es siempre negativa.
type StockOut struct {
	*Transaction
}

// Record devuelve el registro común.
func (t StockOut) Record() *Transaction { return t.Transaction }

// Validate acumula las validaciones comunes más las propias de una salida,
// incluida la disponibilidad de stock al momento de validar.
func (t StockOut) Validate(product *entity.Product) []string {
	errs := t.commonErrors(product)
	if t.Quantity >= 0 {
		errs = append(errs, "la cantidad de una salida debe ser negativa")
	}
	if product != nil && !product.CheckAvailability(abs(t.Quantity)) {
		errs = append(errs, insufficientStockMsg(product, abs(t.Quantity)))
	}
	return errs
}

// Apply resta la magnitud de la cantidad del stock del producto.
func (t StockOut) Apply(product *entity.Product) error {
	_, err := product.ReduceStock(abs(t.Quantity))
	return err
}

// Adjustment es una corrección de inventario con signo libre:
// positivo incrementa, negativo decrementa.
type Adjustment struct {
	*Transaction
}

// Record devuelve el registro común.
func (t Adjustment) Record() *Transaction { return t.Transaction }

// Validate acumula las validaciones comunes; los ajustes negativos exigen
// disponibilidad para la magnitud a descontar.
func (t Adjustment) Validate(product *entity.Product) []string {
	errs := t.commonErrors(product)
	if t.Quantity < 0 && product != nil && !product.CheckAvailability(abs(t.Quantity)) {
		errs = append(errs, insufficientStockMsg(product, abs(t.Quantity)))
	}
	return errs
}

// Apply suma o resta según el signo del ajuste.
func (t Adjustment) Apply(product *entity.Product) error {
	if t.Quantity > 0 {
		_, err := product.AddStock(t.Quantity)
		return err
	}
	_, err := product.ReduceStock(abs(t.Quantity))
	return err
}
