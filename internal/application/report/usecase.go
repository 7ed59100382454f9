// Package report genera el reporte imprimible de reposición: los productos
// en LOW_STOCK u OUT_OF_STOCK con su faltante sugerido.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/repository"
)

// LowStockItem es una fila del reporte de reposición.
type LowStockItem struct {
	Code          string
	Name          string
	StockQuantity int
	MinimumStock  int
	MaximumStock  int
	SuggestedQty  int // hasta el máximo permitido
	Status        string
	StockValue    decimal.Decimal
}

// PDFGenerator es el puerto de render del reporte.
type PDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, items []LowStockItem, generatedAt time.Time) ([]byte, error)
}

// LowStockReportUseCase arma el reporte de productos bajo mínimo y lo
// entrega como PDF a través del generador.
type LowStockReportUseCase struct {
	productRepo repository.ProductRepository
	generator   PDFGenerator
}

// NewLowStockReportUseCase construye el caso de uso.
func NewLowStockReportUseCase(productRepo repository.ProductRepository, generator PDFGenerator) *LowStockReportUseCase {
	return &LowStockReportUseCase{productRepo: productRepo, generator: generator}
}

// GeneratePDF devuelve los bytes del reporte de reposición.
func (uc *LowStockReportUseCase) GeneratePDF(ctx context.Context) ([]byte, error) {
	list, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	items := make([]LowStockItem, 0, len(list))
	for _, p := range list {
		items = append(items, toLowStockItem(p))
	}
	return uc.generator.GenerateLowStockPDF(ctx, items, time.Now())
}

func toLowStockItem(p *entity.Product) LowStockItem {
	return LowStockItem{
		Code:          p.Code,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		MaximumStock:  p.MaximumStock,
		SuggestedQty:  p.MaximumStock - p.StockQuantity,
		Status:        p.StockStatus(),
		StockValue:    p.StockValue(),
	}
}
