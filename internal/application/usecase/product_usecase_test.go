package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alfamart-stock-api/internal/application/dto"
	"github.com/jhoicas/alfamart-stock-api/internal/application/usecase"
	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, qty int, updatedAt time.Time) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = qty
	p.UpdatedAt = updatedAt
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) SearchByName(name string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.StockQuantity <= p.MinimumStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) CountByCategory(id string) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) CountBySupplier(id string) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.SupplierID == id {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memCategoryRepo struct {
	categories map[string]*entity.Category
}

func (r *memCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.categories[id], nil
}
func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCategoryRepo) Update(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *memCategoryRepo) List(limit, offset int) ([]*entity.Category, error) { return nil, nil }
func (r *memCategoryRepo) Delete(id string) error {
	delete(r.categories, id)
	return nil
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *memSupplierRepo) GetByCode(code string) (*entity.Supplier, error) {
	for _, s := range r.suppliers {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}
func (r *memSupplierRepo) Update(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *memSupplierRepo) Delete(id string) error {
	delete(r.suppliers, id)
	return nil
}

func newProductUseCase() (*usecase.ProductUseCase, *memProductRepo) {
	productRepo := &memProductRepo{products: map[string]*entity.Product{}}
	categoryRepo := &memCategoryRepo{categories: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Abarrotes", IsActive: true},
	}}
	supplierRepo := &memSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Distribuidora Norte", Code: "DNORTE", IsActive: true},
	}}
	return usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo), productRepo
}

func createRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:         "arroz premium 5kg",
		Code:         "sku-100",
		Barcode:      "7701234567890",
		UnitPrice:    decimal.NewFromFloat(12.50),
		CostPrice:    decimal.NewFromFloat(9.00),
		MinimumStock: 10,
		MaximumStock: 500,
		UnitMeasure:  "pcs",
		CategoryID:   "cat-1",
		SupplierID:   "sup-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_NormalizaCodigoNombreYUnidad(t *testing.T) {
	uc, _ := newProductUseCase()

	out, err := uc.Create(createRequest())
	require.NoError(t, err)

	assert.Equal(t, "SKU-100", out.Code, "el código se guarda en mayúsculas")
	assert.Equal(t, "Arroz Premium 5Kg", out.Name, "el nombre se guarda en formato título")
	assert.Equal(t, "PCS", out.UnitMeasure)
	assert.Equal(t, 0, out.StockQuantity, "el stock inicial es siempre 0")
	assert.True(t, out.IsActive)
	assert.Equal(t, entity.StockStatusOutOfStock, out.StockStatus)
}

func TestProductCreate_UnidadPorDefectoYMaximoPorDefecto(t *testing.T) {
	uc, _ := newProductUseCase()
	req := createRequest()
	req.UnitMeasure = ""
	req.MaximumStock = 0

	out, err := uc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, "PCS", out.UnitMeasure)
	assert.Equal(t, 1000, out.MaximumStock)
}

func TestProductCreate_UnidadInvalida_RetornaInvalidInput(t *testing.T) {
	uc, _ := newProductUseCase()
	req := createRequest()
	req.UnitMeasure = "DOCENA"

	_, err := uc.Create(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_CodigoDuplicado_RetornaDuplicate(t *testing.T) {
	uc, _ := newProductUseCase()
	_, err := uc.Create(createRequest())
	require.NoError(t, err)

	req := createRequest()
	req.Barcode = "7709999999999"
	_, err = uc.Create(req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_BarcodeDuplicado_RetornaDuplicate(t *testing.T) {
	uc, _ := newProductUseCase()
	_, err := uc.Create(createRequest())
	require.NoError(t, err)

	req := createRequest()
	req.Code = "SKU-200"
	_, err = uc.Create(req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente_RetornaNotFound(t *testing.T) {
	uc, _ := newProductUseCase()
	req := createRequest()
	req.CategoryID = "no-existe"

	_, err := uc.Create(req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_ValidacionAcumulada(t *testing.T) {
	uc, _ := newProductUseCase()
	req := createRequest()
	req.Name = "x"
	req.UnitPrice = decimal.NewFromInt(-1)
	req.MinimumStock = 600
	req.MaximumStock = 500

	_, err := uc.Create(req)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 3, "nombre corto, precio negativo y máximo < mínimo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_NoModificaStock(t *testing.T) {
	uc, repo := newProductUseCase()
	out, err := uc.Create(createRequest())
	require.NoError(t, err)

	// Stock cargado fuera del caso de uso (como lo haría una transacción).
	repo.products[out.ID].StockQuantity = 42

	name := "Arroz Extra"
	updated, err := uc.Update(out.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.StockQuantity, "la edición de catálogo no toca el stock")
}

func TestProductUpdate_DesactivarProducto(t *testing.T) {
	uc, _ := newProductUseCase()
	out, err := uc.Create(createRequest())
	require.NoError(t, err)

	inactive := false
	updated, err := uc.Update(out.ID, dto.UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestProductGetByBarcode(t *testing.T) {
	uc, _ := newProductUseCase()
	created, err := uc.Create(createRequest())
	require.NoError(t, err)

	out, err := uc.GetByBarcode("7701234567890")
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)

	_, err = uc.GetByBarcode("0000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListLowStock(t *testing.T) {
	uc, repo := newProductUseCase()
	out, err := uc.Create(createRequest())
	require.NoError(t, err)

	// Recién creado: stock 0 <= mínimo, debe aparecer.
	low, err := uc.ListLowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, out.ID, low[0].ID)

	// Con stock por encima del mínimo ya no aparece.
	repo.products[out.ID].StockQuantity = 50
	low, err = uc.ListLowStock()
	require.NoError(t, err)
	assert.Empty(t, low)
}
