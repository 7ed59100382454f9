// Package stock contiene el caso de uso que orquesta el ciclo de vida de las
// transacciones de inventario: crear -> validar -> (opcionalmente) procesar.
package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/alfamart-stock-api/internal/application/dto"
	"github.com/jhoicas/alfamart-stock-api/internal/domain"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/entity"
	domstock "github.com/jhoicas/alfamart-stock-api/internal/domain/stock"
	"github.com/jhoicas/alfamart-stock-api/internal/domain/repository"
)

// TransactionUseCase orquesta las transacciones de stock de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el producto
// y la transacción para serializar los cambios por producto.
type TransactionUseCase struct {
	txRunner    TxRunner
	txRepo      repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) *TransactionUseCase {
	return &TransactionUseCase{txRunner: txRunner, txRepo: txRepo, productRepo: productRepo}
}

// Create construye la variante vía la fábrica, valida contra el producto y
// persiste la transacción sin aplicarla al stock (flujo revisar-antes-de-
// confirmar). Con AutoProcess la crea y procesa en la misma unidad atómica.
func (uc *TransactionUseCase) Create(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	now := time.Now()
	processedBy := in.ProcessedBy
	if processedBy == "" {
		processedBy = userID
	}
	variant, err := domstock.New(domstock.TransactionType(in.Type), domstock.Params{
		ID:              uuid.New().String(),
		ReferenceNumber: in.ReferenceNumber,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		Notes:           in.Notes,
		ProcessedBy:     processedBy,
		Now:             now,
	})
	if err != nil {
		return nil, err
	}
	rec := variant.Record()

	// Unicidad del número de referencia en el borde, antes de construir nada
	// en BD (case-insensitive: la referencia ya está normalizada a mayúsculas).
	if existing, err := uc.txRepo.GetByReference(rec.ReferenceNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product, err := uc.productRepo.GetByID(rec.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if errs := variant.Validate(product); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}

	if !in.AutoProcess {
		if err := uc.txRepo.Create(rec); err != nil {
			return nil, err
		}
		return toTransactionResponse(rec, product), nil
	}

	// AutoProcess: crear y aplicar en la misma transacción de BD, con la fila
	// del producto bloqueada para que nadie interleave el read-modify-write.
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		locked, err := productRepo.GetForUpdate(rec.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := domstock.Process(variant, locked, processedBy, now); err != nil {
			return err
		}
		if err := txRepo.Create(rec); err != nil {
			return err
		}
		product = locked
		return productRepo.UpdateStock(locked.ID, locked.StockQuantity, now)
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(rec, product), nil
}

// Process aplica una transacción pendiente a su producto: única transición
// no procesada -> procesada. Re-valida siempre inmediatamente antes de mutar;
// un segundo intento falla con ErrAlreadyProcessed y deja el stock intacto.
func (uc *TransactionUseCase) Process(ctx context.Context, id, userID string) (*dto.TransactionResponse, error) {
	now := time.Now()
	var rec *domstock.Transaction
	var product *entity.Product

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		rec, err = txRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		variant, err := domstock.Wrap(rec)
		if err != nil {
			return err
		}
		product, err = productRepo.GetForUpdate(rec.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := domstock.Process(variant, product, userID, now); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, product.StockQuantity, now); err != nil {
			return err
		}
		return txRepo.Update(rec)
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(rec, product), nil
}

// GetByID obtiene una transacción con los datos del producto referenciado.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	rec, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(rec.ProductID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(rec, product), nil
}

// Update edita una transacción pendiente. Reaplica la convención de signo de
// la variante y re-valida. Una transacción procesada es inmutable.
func (uc *TransactionUseCase) Update(ctx context.Context, id string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	rec, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if rec.IsProcessed {
		return nil, domain.ErrAlreadyProcessed
	}
	if in.Quantity != nil {
		quantity := *in.Quantity
		switch rec.Type {
		case domstock.TypeStockIn:
			if quantity < 0 {
				quantity = -quantity
			}
		case domstock.TypeStockOut:
			if quantity > 0 {
				quantity = -quantity
			}
		}
		rec.Quantity = quantity
	}
	if in.UnitCost != nil {
		rec.UnitCost = in.UnitCost
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	rec.UpdatedAt = time.Now()

	variant, err := domstock.Wrap(rec)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(rec.ProductID)
	if err != nil {
		return nil, err
	}
	if errs := variant.Validate(product); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}
	if err := uc.txRepo.Update(rec); err != nil {
		return nil, err
	}
	return toTransactionResponse(rec, product), nil
}

// Delete elimina una transacción pendiente. Una procesada no se puede borrar.
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	rec, err := uc.txRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if rec.IsProcessed {
		return domain.ErrAlreadyProcessed
	}
	return uc.txRepo.Delete(id)
}

// List lista transacciones con filtros (lectura pura, delegada al repositorio).
func (uc *TransactionUseCase) List(ctx context.Context, in dto.ListTransactionsRequest) (*dto.TransactionListResponse, error) {
	in.DefaultPage()
	filter := repository.TransactionFilter{
		ProductID: in.ProductID,
		Processed: in.Processed,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Type != "" {
		tt := domstock.TransactionType(in.Type)
		if !tt.Known() {
			return nil, domain.ErrInvalidInput
		}
		filter.Type = tt
	}
	if in.From != "" {
		from, err := parseDate(in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := parseDate(in.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.To = &to
	}

	list, err := uc.txRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(list)),
		Page:         dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(list)},
	}
	for _, rec := range list {
		out.Transactions = append(out.Transactions, *toTransactionResponse(rec, nil))
	}
	return out, nil
}

// parseDate acepta RFC 3339 o fecha simple (2006-01-02).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// toTransactionResponse mapea el registro a DTO; product puede ser nil en listados.
func toTransactionResponse(rec *domstock.Transaction, product *entity.Product) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:              rec.ID,
		Type:            string(rec.Type),
		ReferenceNumber: rec.ReferenceNumber,
		ProductID:       rec.ProductID,
		Quantity:        rec.Quantity,
		UnitCost:        rec.UnitCost,
		TotalCost:       rec.TotalCost(),
		Notes:           rec.Notes,
		ProcessedBy:     rec.ProcessedBy,
		IsProcessed:     rec.IsProcessed,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if product != nil {
		out.ProductCode = product.Code
		out.ProductName = product.Name
	}
	return out
}
