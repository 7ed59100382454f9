package repository

import (
	"time"

	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila del producto; todo cambio de stock pasa por
// UpdateStock dentro de la misma transacción de BD que tomó el lock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, quantity int, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Product, error)
	SearchByName(name string, limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	CountByCategory(categoryID string) (int, error)
	CountBySupplier(supplierID string) (int, error)
	Delete(id string) error
}
