package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, COALESCE(barcode, ''), name, description, unit_price, cost_price,
		stock_quantity, minimum_stock, maximum_stock, unit_measure, is_active,
		category_id, supplier_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El stock inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, code, barcode, name, description, unit_price, cost_price,
			stock_quantity, minimum_stock, maximum_stock, unit_measure, is_active,
			category_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Barcode, product.Name, product.Description,
		product.UnitPrice, product.CostPrice, product.StockQuantity, product.MinimumStock,
		product.MaximumStock, product.UnitMeasure, product.IsActive,
		product.CategoryID, product.SupplierID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene un producto por código único.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) para
// serializar el read-modify-write del stock por producto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Code, &p.Barcode, &p.Name, &p.Description, &p.UnitPrice, &p.CostPrice,
		&p.StockQuantity, &p.MinimumStock, &p.MaximumStock, &p.UnitMeasure, &p.IsActive,
		&p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. No toca stock_quantity: el stock
// solo cambia vía UpdateStock dentro del procesamiento de transacciones.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET barcode = NULLIF($2, ''), name = $3, description = $4,
			unit_price = $5, cost_price = $6, minimum_stock = $7, maximum_stock = $8,
			unit_measure = $9, is_active = $10, category_id = $11, supplier_id = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Description,
		product.UnitPrice, product.CostPrice, product.MinimumStock, product.MaximumStock,
		product.UnitMeasure, product.IsActive, product.CategoryID, product.SupplierID, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe la nueva cantidad (usado por el motor de transacciones,
// con la fila ya bloqueada por GetForUpdate en la misma tx).
func (r *ProductRepo) UpdateStock(productID string, quantity int, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2, updated_at = $3 WHERE id = $1`,
		productID, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// SearchByName busca productos por nombre o código (substring, case-insensitive).
func (r *ProductRepo) SearchByName(name string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE $1 OR code ILIKE $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, "%"+name+"%", limit, offset)
}

// ListLowStock devuelve productos activos con stock en o bajo el mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_active AND stock_quantity <= minimum_stock ORDER BY stock_quantity ASC`
	return r.list(query)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Barcode, &p.Name, &p.Description, &p.UnitPrice, &p.CostPrice,
			&p.StockQuantity, &p.MinimumStock, &p.MaximumStock, &p.UnitMeasure, &p.IsActive,
			&p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByCategory cuenta los productos asociados a una categoría.
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	return r.count(`SELECT count(*) FROM products WHERE category_id = $1`, categoryID)
}

// CountBySupplier cuenta los productos asociados a un proveedor.
func (r *ProductRepo) CountBySupplier(supplierID string) (int, error) {
	return r.count(`SELECT count(*) FROM products WHERE supplier_id = $1`, supplierID)
}

func (r *ProductRepo) count(query string, arg any) (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
