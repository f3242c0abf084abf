package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrDuplicateItem rechaza agregar un artículo ya presente en el borrador.
	// No es fatal: el borrador queda intacto y utilizable.
	ErrDuplicateItem = errors.New("el artículo ya está en el borrador")
	// ErrAlreadyFinalized protege la transición única false→true del flag finalized.
	ErrAlreadyFinalized = errors.New("la salida ya fue finalizada")
)

// ValidationError falla de precondición local (campos faltantes, líneas inválidas,
// stock local excedido). Nunca se escribe nada cuando ocurre.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validación: " + e.Reason
}

// ResolutionError un código referenciado (ej. tipo de solicitud) no pudo
// resolverse ni por código exacto ni por coincidencia en la descripción.
type ResolutionError struct {
	Code string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no se pudo resolver el código %q", e.Code)
}

// PersistenceError falla de red/almacenamiento en un paso concreto del commit.
// Step identifica el paso para que el operador sepa exactamente qué falló
// (crear la solicitud vs. finalizar no son lo mismo).
type PersistenceError struct {
	Step string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia en paso %s: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// StockConflictError la re-verificación autoritativa encontró stock insuficiente.
// Aborta el commit antes de insertar líneas; la cabecera queda huérfana en finalized=false.
type StockConflictError struct {
	ItemCode  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %s, disponible %s",
		e.ItemCode, e.Requested, e.Available)
}

func (e *StockConflictError) Unwrap() error { return ErrInsufficientStock }
