package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del almacén. El stock disponible NO se guarda
// como contador mutable: siempre se deriva del libro (Σ entradas − Σ salidas).
type Item struct {
	Code      string // código único
	Name      string
	Unit      string // unidad de medida
	UnitPrice decimal.Decimal
	Brand     string
	ImageRef  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
