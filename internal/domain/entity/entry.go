package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain"
)

// Entry cabecera de un movimiento de entrada (ingreso de stock).
// Inmutable una vez creada; no existe camino de borrado.
type Entry struct {
	ID            string
	Date          time.Time
	Origin        string
	AuthorizedBy  string // colaborador que autoriza
	ReceivedBy    string // colaborador que recibe
	Justification string // obligatoria si alguna línea tiene cantidad negativa (ajuste)
	CreatedAt     time.Time
}

// EntryLine línea de una entrada. Cantidad con signo: negativa solo como
// ajuste/corrección, y en ese caso la cabecera debe llevar justificación.
type EntryLine struct {
	EntryID  string
	ItemCode string
	Quantity decimal.Decimal
}

// Validate verifica los invariantes de la entrada junto con sus líneas:
// campos de cabecera presentes, al menos una línea válida y justificación
// no vacía cuando alguna cantidad es negativa.
func (e *Entry) Validate(lines []EntryLine) error {
	if strings.TrimSpace(e.AuthorizedBy) == "" || strings.TrimSpace(e.ReceivedBy) == "" {
		return &domain.ValidationError{Reason: "autoriza y recibe son obligatorios"}
	}
	if len(lines) == 0 {
		return &domain.ValidationError{Reason: "la entrada no tiene líneas"}
	}
	hasNegative := false
	for _, l := range lines {
		if strings.TrimSpace(l.ItemCode) == "" {
			return &domain.ValidationError{Reason: "línea sin código de artículo"}
		}
		if l.Quantity.IsZero() {
			return &domain.ValidationError{Reason: "línea con cantidad cero"}
		}
		if l.Quantity.IsNegative() {
			hasNegative = true
		}
	}
	if hasNegative && strings.TrimSpace(e.Justification) == "" {
		return &domain.ValidationError{Reason: "una línea negativa exige justificación en la entrada"}
	}
	return nil
}
