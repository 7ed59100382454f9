package stock

import (
	"time"

	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
)

// Process ejecuta la única transición de estado: no procesada -> procesada.
//
//  1. Rechaza con ErrAlreadyProcessed si ya fue procesada (reintentar es un
//     error, no un no-op).
//  2. Re-ejecuta la validación completa; el stock pudo cambiar entre la
//     creación y el procesamiento.
//  3. Aplica el paso de la variante sobre el producto.
//  4. Marca la transacción como procesada y estampa la fecha.
//
// El caller debe ejecutar esto dentro de una unidad de trabajo atómica: la
// mutación del producto y la marca de procesado se persisten juntas o ninguna.
func Process(v Variant, product *entity.Product, processedBy string, now time.Time) error {
	rec := v.Record()
	if rec.IsProcessed {
		return domain.ErrAlreadyProcessed
	}
	if errs := v.Validate(product); len(errs) > 0 {
		return domain.NewValidationError(errs)
	}
	if err := v.Apply(product); err != nil {
		return err
	}
	rec.IsProcessed = true
	if processedBy != "" {
		rec.ProcessedBy = processedBy
	}
	rec.UpdatedAt = now
	return nil
}
