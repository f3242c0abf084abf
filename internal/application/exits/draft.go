package exits

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain"
)

// DraftLine línea en preparación de una salida. Available es el disponible
// cacheado al momento de la selección y UnitPrice la foto del precio: ninguno
// se relee del maestro después.
type DraftLine struct {
	ItemCode  string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Available decimal.Decimal
}

// Draft borrador local de una salida (estado DRAFT: vive solo en memoria,
// nunca se persiste). Sus guardas son consultivas: el chequeo autoritativo de
// stock ocurre dentro del flujo de commit, contra el almacén.
type Draft struct {
	lines []DraftLine
}

// NewDraft crea un borrador vacío.
func NewDraft() *Draft {
	return &Draft{}
}

// Add agrega una línea al borrador. Un código ya presente se rechaza con
// domain.ErrDuplicateItem: advertencia no fatal, el borrador queda intacto.
func (d *Draft) Add(line DraftLine) error {
	code := strings.TrimSpace(line.ItemCode)
	if code == "" {
		return domain.ErrInvalidInput
	}
	for _, l := range d.lines {
		if l.ItemCode == code {
			return domain.ErrDuplicateItem
		}
	}
	line.ItemCode = code
	d.lines = append(d.lines, line)
	return nil
}

// SetQuantity fija la cantidad de una línea. Si excede el disponible cacheado
// recorta al disponible y devuelve clamped=true: se advierte, no se bloquea
// la captura.
func (d *Draft) SetQuantity(itemCode string, qty decimal.Decimal) (applied decimal.Decimal, clamped bool, err error) {
	for i := range d.lines {
		if d.lines[i].ItemCode != itemCode {
			continue
		}
		applied = qty
		if qty.GreaterThan(d.lines[i].Available) {
			applied = d.lines[i].Available
			clamped = true
		}
		d.lines[i].Quantity = applied
		return applied, clamped, nil
	}
	return decimal.Zero, false, domain.ErrNotFound
}

// Remove quita una línea del borrador.
func (d *Draft) Remove(itemCode string) {
	for i := range d.lines {
		if d.lines[i].ItemCode == itemCode {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return
		}
	}
}

// Lines devuelve una copia de las líneas actuales.
func (d *Draft) Lines() []DraftLine {
	out := make([]DraftLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Clear vacía el borrador (tras un commit exitoso).
func (d *Draft) Clear() {
	d.lines = nil
}
