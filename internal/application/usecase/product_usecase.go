package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/alfamart-stock-api/internal/application/dto"
	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/repository"
)

// Unidades de medida válidas.
var validUnits = map[string]bool{
	"PCS": true, "KG": true, "LTR": true, "MTR": true, "BOX": true, "PACK": true,
}

var titleCaser = cases.Title(language.Und)

// ProductUseCase casos de uso CRUD para productos. El stock no se modifica
// aquí: solo cambia a través de transacciones procesadas.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// Create crea un producto con stock inicial 0.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if existing, _ := uc.repo.GetByCode(code); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Barcode != "" {
		if existing, _ := uc.repo.GetByBarcode(in.Barcode); existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if category, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil || category == nil {
		return nil, domain.ErrNotFound
	}
	if supplier, err := uc.supplierRepo.GetByID(in.SupplierID); err != nil || supplier == nil {
		return nil, domain.ErrNotFound
	}
	unit := strings.ToUpper(in.UnitMeasure)
	if unit == "" {
		unit = "PCS"
	}
	if !validUnits[unit] {
		return nil, domain.ErrInvalidInput
	}
	maximum := in.MaximumStock
	if maximum == 0 {
		maximum = 1000
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          code,
		Barcode:       strings.TrimSpace(in.Barcode),
		Name:          titleCaser.String(strings.TrimSpace(in.Name)),
		Description:   strings.TrimSpace(in.Description),
		UnitPrice:     in.UnitPrice,
		CostPrice:     in.CostPrice,
		StockQuantity: 0,
		MinimumStock:  in.MinimumStock,
		MaximumStock:  maximum,
		UnitMeasure:   unit,
		IsActive:      true,
		CategoryID:    in.CategoryID,
		SupplierID:    in.SupplierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if errs := product.Validate(); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode busca un producto por código de barras exacto.
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No toca StockQuantity.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = titleCaser.String(strings.TrimSpace(*in.Name))
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		product.MaximumStock = *in.MaximumStock
	}
	if in.UnitMeasure != nil {
		unit := strings.ToUpper(*in.UnitMeasure)
		if !validUnits[unit] {
			return nil, domain.ErrInvalidInput
		}
		product.UnitMeasure = unit
	}
	if in.CategoryID != nil {
		if category, err := uc.categoryRepo.GetByID(*in.CategoryID); err != nil || category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		if supplier, err := uc.supplierRepo.GetByID(*in.SupplierID); err != nil || supplier == nil {
			return nil, domain.ErrNotFound
		}
		product.SupplierID = *in.SupplierID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if errs := product.Validate(); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación; con search filtra por nombre (substring).
func (uc *ProductUseCase) List(search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	var list []*entity.Product
	var err error
	if search != "" {
		list, err = uc.repo.SearchByName(search, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	return toProductListResponse(list, page), nil
}

// ListLowStock devuelve los productos en LOW_STOCK u OUT_OF_STOCK.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Code:          p.Code,
		Barcode:       p.Barcode,
		Description:   p.Description,
		UnitPrice:     p.UnitPrice,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		MaximumStock:  p.MaximumStock,
		UnitMeasure:   p.UnitMeasure,
		IsActive:      p.IsActive,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		StockStatus:   p.StockStatus(),
		ProfitMargin:  p.ProfitMargin().Round(2),
		StockValue:    p.StockValue(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductListResponse(list []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	out := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(list)),
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)},
	}
	for _, p := range list {
		out.Products = append(out.Products, *toProductResponse(p))
	}
	return out
}
