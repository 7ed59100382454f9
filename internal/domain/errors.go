package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCapacityExceeded  = errors.New("capacidad máxima de stock excedida")
	ErrAlreadyProcessed  = errors.New("transacción ya procesada")
	ErrUnsupportedType   = errors.New("tipo de transacción no soportado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// ValidationError acumula todas las violaciones de reglas de negocio encontradas.
// El caller recibe la lista completa, no solo la primera.
type ValidationError struct {
	Errors []string
}

// Error implementa error uniendo todas las violaciones.
func (e *ValidationError) Error() string {
	return "validación fallida: " + strings.Join(e.Errors, "; ")
}

// NewValidationError construye el error si hay violaciones; nil si la lista está vacía.
func NewValidationError(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
