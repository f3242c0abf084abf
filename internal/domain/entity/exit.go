package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain"
)

// Exit cabecera de un movimiento de salida. Inmutable salvo la única
// transición false→true de Finalized, que es la señal autoritativa de commit
// observada por la automatización externa: ninguna salida cuenta como
// comprometida hasta que Finalized sea true.
type Exit struct {
	ID           string
	Date         time.Time
	AuthorizedBy string // colaborador que autoriza
	RetrievedBy  string // colaborador que retira
	RequestID    string // solicitud vinculada (opcional)
	Comments     string
	Finalized    bool
	CreatedAt    time.Time
}

// Finalize aplica la transición única false→true. Una salida finalizada
// jamás se reabre.
func (x *Exit) Finalize() error {
	if x.Finalized {
		return domain.ErrAlreadyFinalized
	}
	x.Finalized = true
	return nil
}

// ExitLine línea de una salida. La cantidad es siempre positiva y UnitPrice
// es una foto del precio al momento de la selección: nunca se relee del
// maestro de artículos, para preservar el precio histórico.
type ExitLine struct {
	ExitID    string
	ItemCode  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}
