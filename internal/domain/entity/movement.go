package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro.
const (
	MovementEntry = "ENTRY" // entrada
	MovementExit  = "EXIT"  // salida
)

// MovementLine línea de entrada o salida junto con la fecha de su cabecera.
// Es el modelo de lectura del libro: el kardex agrupa por la porción de fecha
// de la cabecera, ignorando la hora.
type MovementLine struct {
	HeaderID string
	Kind     string // MovementEntry | MovementExit
	ItemCode string
	Quantity decimal.Decimal
	Date     time.Time
}
