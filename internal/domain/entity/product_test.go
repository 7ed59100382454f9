package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
)

func newProduct(stock, min, max int) *entity.Product {
	return &entity.Product{
		ID:            "p-1",
		Code:          "SKU-001",
		Name:          "Leche Entera 1L",
		UnitPrice:     decimal.NewFromFloat(3.50),
		CostPrice:     decimal.NewFromFloat(2.00),
		StockQuantity: stock,
		MinimumStock:  min,
		MaximumStock:  max,
		UnitMeasure:   "PCS",
		IsActive:      true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddStock / ReduceStock — invariante 0 <= stock <= máximo
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_IncrementaYDevuelveNuevaCantidad(t *testing.T) {
	p := newProduct(10, 5, 100)
	got, err := p.AddStock(15)
	require.NoError(t, err)
	assert.Equal(t, 25, got)
	assert.Equal(t, 25, p.StockQuantity)
}

func TestAddStock_CantidadNoPositiva_RetornaInvalidInput(t *testing.T) {
	p := newProduct(10, 5, 100)
	for _, qty := range []int{0, -3} {
		_, err := p.AddStock(qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 10, p.StockQuantity, "el stock no debe cambiar en un fallo")
	}
}

func TestAddStock_ExcedeMaximo_RetornaCapacityExceeded(t *testing.T) {
	p := newProduct(90, 5, 100)
	_, err := p.AddStock(11)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 90, p.StockQuantity, "un fallo de capacidad no debe dejar stock parcial")

	// Justo en el límite sí debe pasar.
	got, err := p.AddStock(10)
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}

func TestReduceStock_DescuentaYDevuelveNuevaCantidad(t *testing.T) {
	p := newProduct(10, 5, 100)
	got, err := p.ReduceStock(4)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestReduceStock_SinDisponibilidad_RetornaInsufficientStock(t *testing.T) {
	p := newProduct(3, 5, 100)
	_, err := p.ReduceStock(4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, p.StockQuantity)
}

func TestReduceStock_HastaCero_EsValido(t *testing.T) {
	p := newProduct(3, 5, 100)
	got, err := p.ReduceStock(3)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockStatus — prioridad OUT_OF_STOCK > LOW_STOCK > OVERSTOCK > NORMAL
// ──────────────────────────────────────────────────────────────────────────────

func TestStockStatus_PrioridadDeEstados(t *testing.T) {
	cases := []struct {
		name             string
		stock, min, max  int
		expected         string
	}{
		{"cero siempre es OUT_OF_STOCK", 0, 5, 100, entity.StockStatusOutOfStock},
		{"cero gana aunque min sea cero", 0, 0, 100, entity.StockStatusOutOfStock},
		{"igual al mínimo es LOW_STOCK", 5, 5, 100, entity.StockStatusLow},
		{"bajo el mínimo es LOW_STOCK", 3, 5, 100, entity.StockStatusLow},
		{"igual al máximo es OVERSTOCK", 100, 5, 100, entity.StockStatusOver},
		{"entre mínimo y máximo es NORMAL", 50, 5, 100, entity.StockStatusNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newProduct(tc.stock, tc.min, tc.max)
			assert.Equal(t, tc.expected, p.StockStatus())
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivados monetarios
// ──────────────────────────────────────────────────────────────────────────────

func TestProfitMargin_SobreCosto(t *testing.T) {
	p := newProduct(10, 5, 100)
	p.CostPrice = decimal.NewFromInt(2)
	p.UnitPrice = decimal.NewFromInt(3)
	assert.True(t, decimal.NewFromInt(50).Equal(p.ProfitMargin()), "el margen esperado es 50")
}

func TestProfitMargin_CostoCero_DevuelveCero(t *testing.T) {
	p := newProduct(10, 5, 100)
	p.CostPrice = decimal.Zero
	assert.True(t, p.ProfitMargin().IsZero())
}

func TestStockValue_CostoPorCantidad(t *testing.T) {
	p := newProduct(10, 5, 100)
	p.CostPrice = decimal.NewFromFloat(2.50)
	assert.True(t, decimal.NewFromInt(25).Equal(p.StockValue()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate — lista completa de violaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_AcumulaTodasLasViolaciones(t *testing.T) {
	p := &entity.Product{
		Code:         "X",
		Name:         "Y",
		UnitPrice:    decimal.NewFromInt(-1),
		CostPrice:    decimal.NewFromInt(-1),
		MinimumStock: 10,
		MaximumStock: 5,
	}
	errs := p.Validate()
	assert.Len(t, errs, 5, "deben reportarse todas las violaciones, no solo la primera")
}

func TestValidate_ProductoValido_SinErrores(t *testing.T) {
	p := newProduct(10, 5, 100)
	assert.Empty(t, p.Validate())
}
