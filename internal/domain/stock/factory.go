package stock

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/alfamart-stock-api/internal/domain"
)

// Params es la bolsa de parámetros para construir una transacción.
// Quantity se interpreta según la variante: magnitud en entradas y salidas,
// delta con signo en ajustes.
type Params struct {
	ID              string
	ReferenceNumber string
	ProductID       string
	Quantity        int
	UnitCost        *decimal.Decimal
	Notes           string
	ProcessedBy     string
	Now             time.Time
}

// New despacha por tipo y construye la variante correspondiente, aplicando la
// convención de signo de cada una. Devuelve ErrUnsupportedType para cualquier
// tipo sin variante construible (incluidos TRANSFER y RETURN).
func New(transactionType TransactionType, in Params) (Variant, error) {
	rec := &Transaction{
		ID:              in.ID,
		Type:            transactionType,
		ReferenceNumber: NormalizeReference(in.ReferenceNumber),
		ProductID:       in.ProductID,
		UnitCost:        in.UnitCost,
		Notes:           in.Notes,
		ProcessedBy:     in.ProcessedBy,
		IsProcessed:     false,
		CreatedAt:       in.Now,
		UpdatedAt:       in.Now,
	}
	switch transactionType {
	case TypeStockIn:
		rec.Quantity = abs(in.Quantity)
		return StockIn{rec}, nil
	case TypeStockOut:
		rec.Quantity = -abs(in.Quantity)
		return StockOut{rec}, nil
	case TypeAdjustment:
		rec.Quantity = in.Quantity
		return Adjustment{rec}, nil
	default:
		return nil, domain.ErrUnsupportedType
	}
}

// Wrap reconstruye la variante para un registro ya persistido (por ejemplo al
// procesar una transacción creada antes). Falla con ErrUnsupportedType si el
// registro quedó guardado con un tipo sin variante.
func Wrap(rec *Transaction) (Variant, error) {
	switch rec.Type {
	case TypeStockIn:
		return StockIn{rec}, nil
	case TypeStockOut:
		return StockOut{rec}, nil
	case TypeAdjustment:
		return Adjustment{rec}, nil
	default:
		return nil, domain.ErrUnsupportedType
	}
}
