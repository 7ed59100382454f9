package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/stock"
)

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func testProduct(stockQty, min, max int) *entity.Product {
	return &entity.Product{
		ID:            "p-1",
		Code:          "SKU-001",
		Name:          "Arroz Premium 5Kg",
		StockQuantity: stockQty,
		MinimumStock:  min,
		MaximumStock:  max,
		IsActive:      true,
	}
}

func params(qty int, unitCost *decimal.Decimal) stock.Params {
	return stock.Params{
		ID:              "tx-1",
		ReferenceNumber: "ref-001",
		ProductID:       "p-1",
		Quantity:        qty,
		UnitCost:        unitCost,
		ProcessedBy:     "bodeguero@alfamart.local",
		Now:             time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fábrica — despacho por tipo y convención de signo
// ──────────────────────────────────────────────────────────────────────────────

func TestNew_StockIn_GuardaCantidadPositiva(t *testing.T) {
	v, err := stock.New(stock.TypeStockIn, params(50, decPtr(1.50)))
	require.NoError(t, err)
	assert.Equal(t, 50, v.Record().Quantity)

	// Una magnitud negativa también se normaliza a positiva.
	v, err = stock.New(stock.TypeStockIn, params(-50, decPtr(1.50)))
	require.NoError(t, err)
	assert.Equal(t, 50, v.Record().Quantity)
}

func TestNew_StockOut_GuardaCantidadNegativa(t *testing.T) {
	v, err := stock.New(stock.TypeStockOut, params(5, nil))
	require.NoError(t, err)
	assert.Equal(t, -5, v.Record().Quantity,
		"la salida debe persistir la cantidad con signo negativo")
}

func TestNew_Adjustment_RespetaElSigno(t *testing.T) {
	v, err := stock.New(stock.TypeAdjustment, params(-3, nil))
	require.NoError(t, err)
	assert.Equal(t, -3, v.Record().Quantity)

	v, err = stock.New(stock.TypeAdjustment, params(7, nil))
	require.NoError(t, err)
	assert.Equal(t, 7, v.Record().Quantity)
}

func TestNew_NormalizaReferencia(t *testing.T) {
	p := params(10, decPtr(1))
	p.ReferenceNumber = "  rec-2026-001  "
	v, err := stock.New(stock.TypeStockIn, p)
	require.NoError(t, err)
	assert.Equal(t, "REC-2026-001", v.Record().ReferenceNumber)
}

func TestNew_TipoSinVariante_RetornaUnsupportedType(t *testing.T) {
	for _, typ := range []stock.TransactionType{stock.TypeTransfer, stock.TypeReturn, "PRESTAMO"} {
		_, err := stock.New(typ, params(5, nil))
		assert.ErrorIs(t, err, domain.ErrUnsupportedType, "tipo %s", typ)
	}
}

func TestWrap_ReconstruyeLaVariantePersistida(t *testing.T) {
	rec := &stock.Transaction{Type: stock.TypeStockOut, Quantity: -5}
	v, err := stock.Wrap(rec)
	require.NoError(t, err)
	assert.Same(t, rec, v.Record())

	rec.Type = stock.TypeTransfer
	_, err = stock.Wrap(rec)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones — lista acumulada de violaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_StockIn_AcumulaViolaciones(t *testing.T) {
	p := params(0, nil)
	p.ReferenceNumber = "AB" // muy corta
	v, err := stock.New(stock.TypeStockIn, p)
	require.NoError(t, err)

	errs := v.Validate(testProduct(10, 5, 100))
	// referencia corta + cantidad cero + cantidad no positiva + costo faltante
	assert.Len(t, errs, 4, "deben acumularse todas las violaciones")
}

func TestValidate_StockOut_ExigeDisponibilidad(t *testing.T) {
	v, err := stock.New(stock.TypeStockOut, params(5, nil))
	require.NoError(t, err)

	errs := v.Validate(testProduct(3, 0, 100))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "stock insuficiente")
	assert.Contains(t, errs[0], "disponible 3")
	assert.Contains(t, errs[0], "requerido 5")
}

func TestValidate_AdjustmentNegativo_ExigeDisponibilidad(t *testing.T) {
	v, err := stock.New(stock.TypeAdjustment, params(-5, nil))
	require.NoError(t, err)

	errs := v.Validate(testProduct(0, 0, 100))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "stock insuficiente")
}

func TestValidate_AdjustmentPositivo_NoExigeDisponibilidad(t *testing.T) {
	v, err := stock.New(stock.TypeAdjustment, params(5, nil))
	require.NoError(t, err)
	assert.Empty(t, v.Validate(testProduct(0, 0, 100)))
}

func TestValidate_SinProducto_Falla(t *testing.T) {
	v, err := stock.New(stock.TypeStockIn, params(5, decPtr(1)))
	require.NoError(t, err)
	errs := v.Validate(nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[len(errs)-1], "requiere un producto")
}

// ──────────────────────────────────────────────────────────────────────────────
// TotalCost
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalCost_MagnitudPorCostoUnitario(t *testing.T) {
	v, err := stock.New(stock.TypeStockOut, params(30, decPtr(2.50)))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(75).Equal(v.Record().TotalCost()),
		"el costo total usa la magnitud, no el signo")
}

func TestTotalCost_SinCosto_DevuelveCero(t *testing.T) {
	v, err := stock.New(stock.TypeAdjustment, params(10, nil))
	require.NoError(t, err)
	assert.True(t, v.Record().TotalCost().IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Process — ciclo de vida no procesada -> procesada
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_StockIn_AplicaYMarcaProcesada(t *testing.T) {
	product := testProduct(50, 5, 200)
	v, err := stock.New(stock.TypeStockIn, params(30, decPtr(2.50)))
	require.NoError(t, err)

	now := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, stock.Process(v, product, "admin@alfamart.local", now))

	assert.Equal(t, 80, product.StockQuantity)
	assert.Equal(t, entity.StockStatusNormal, product.StockStatus())
	rec := v.Record()
	assert.True(t, rec.IsProcessed)
	assert.Equal(t, "admin@alfamart.local", rec.ProcessedBy)
	assert.Equal(t, now, rec.UpdatedAt)
}

func TestProcess_Reintento_RetornaAlreadyProcessed(t *testing.T) {
	product := testProduct(50, 5, 200)
	v, err := stock.New(stock.TypeStockIn, params(30, decPtr(2.50)))
	require.NoError(t, err)

	require.NoError(t, stock.Process(v, product, "", time.Now()))
	err = stock.Process(v, product, "", time.Now())
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, 80, product.StockQuantity, "el reintento no debe volver a aplicar el stock")
}

func TestProcess_ValidacionFallida_NoMutaNada(t *testing.T) {
	product := testProduct(3, 0, 100)
	v, err := stock.New(stock.TypeStockOut, params(5, nil))
	require.NoError(t, err)

	err = stock.Process(v, product, "", time.Now())

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Errors)
	assert.Equal(t, 3, product.StockQuantity)
	assert.False(t, v.Record().IsProcessed)
}

func TestProcess_CapacidadExcedida_NoDejaEstadoParcial(t *testing.T) {
	// La validación no revisa el máximo, así que el fallo surge en Apply.
	product := testProduct(100, 5, 120)
	v, err := stock.New(stock.TypeStockIn, params(30, decPtr(1)))
	require.NoError(t, err)

	err = stock.Process(v, product, "", time.Now())
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 100, product.StockQuantity)
	assert.False(t, v.Record().IsProcessed, "un fallo en Apply no debe marcar la transacción")
}

func TestProcess_SalidaDejaStockEnCero(t *testing.T) {
	product := testProduct(5, 2, 100)
	v, err := stock.New(stock.TypeStockOut, params(5, nil))
	require.NoError(t, err)

	require.NoError(t, stock.Process(v, product, "", time.Now()))
	assert.Equal(t, 0, product.StockQuantity)
	assert.Equal(t, entity.StockStatusOutOfStock, product.StockStatus())
}
