// Package kardex reconstruye el saldo histórico diario de un artículo a
// partir del libro de entradas y salidas. El cálculo es puro e idempotente:
// el mismo estado del libro y la misma ventana producen siempre el mismo
// informe.
package kardex

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// Params umbrales configurables del informe.
type Params struct {
	// LowStockThreshold marca un día cuando su saldo queda por debajo.
	LowStockThreshold decimal.Decimal
	// HighMovementFactor marca un día cuando (entradas+salidas) supera
	// factor × movimiento diario promedio, con movimiento > 0.
	HighMovementFactor decimal.Decimal
}

// DefaultParams valores observados en producción: umbral 10 unidades, factor 2×.
func DefaultParams() Params {
	return Params{
		LowStockThreshold:  decimal.NewFromInt(10),
		HighMovementFactor: decimal.NewFromInt(2),
	}
}

// DayBucket una fila del informe: un día calendario, con o sin movimiento.
type DayBucket struct {
	Date         time.Time // medianoche UTC
	Entries      decimal.Decimal
	Exits        decimal.Decimal
	Net          decimal.Decimal
	Balance      decimal.Decimal // saldo acumulado al cierre del día
	Detail       []entity.MovementLine
	LowStock     bool
	HighMovement bool
}

// Report informe kardex de un artículo sobre una ventana [From, To].
// Days es denso y estrictamente ascendente: una fila por día calendario.
type Report struct {
	ItemCode             string
	From                 time.Time
	To                   time.Time
	Opening              decimal.Decimal
	Days                 []DayBucket
	AverageDailyMovement decimal.Decimal
}

// DayOf normaliza a la porción de fecha (medianoche UTC), ignorando la hora.
// Agrupar por fecha de cabecera evita ambigüedades de zona horaria al bucketear.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay devuelve la medianoche UTC del día siguiente. Sirve como cota
// superior exclusiva para consultar rangos inclusivos sin depender de la hora.
func NextDay(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, 1)
}

// Sum acumula las cantidades de un conjunto de líneas (aritmética decimal exacta).
func Sum(lines []entity.MovementLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity)
	}
	return total
}

// Build construye el informe denso por día a partir del saldo de apertura y
// las líneas cuya fecha de cabecera cae dentro de [from, to]. Las líneas
// fuera de la ventana se ignoran.
func Build(itemCode string, opening decimal.Decimal, from, to time.Time, lines []entity.MovementLine, p Params) Report {
	start := DayOf(from)
	end := DayOf(to)

	// Un bucket por día calendario, en orden ascendente, aunque no haya movimiento.
	numDays := int(end.Sub(start).Hours()/24) + 1
	if numDays < 1 {
		numDays = 0
	}
	days := make([]DayBucket, numDays)
	index := make(map[time.Time]int, numDays)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = DayBucket{
			Date:    d,
			Entries: decimal.Zero,
			Exits:   decimal.Zero,
		}
		index[d] = i
	}

	for _, l := range lines {
		i, ok := index[DayOf(l.Date)]
		if !ok {
			continue
		}
		switch l.Kind {
		case entity.MovementEntry:
			days[i].Entries = days[i].Entries.Add(l.Quantity)
		case entity.MovementExit:
			days[i].Exits = days[i].Exits.Add(l.Quantity)
		default:
			continue
		}
		// Cada línea queda como registro de detalle de su día.
		days[i].Detail = append(days[i].Detail, l)
	}

	// Saldo acumulado y movimiento total (los días sin movimiento cuentan en el promedio).
	balance := opening
	totalMovement := decimal.Zero
	for i := range days {
		days[i].Net = days[i].Entries.Sub(days[i].Exits)
		balance = balance.Add(days[i].Net)
		days[i].Balance = balance
		totalMovement = totalMovement.Add(days[i].Entries.Add(days[i].Exits))
	}

	average := decimal.Zero
	if numDays > 0 {
		average = totalMovement.Div(decimal.NewFromInt(int64(numDays)))
	}

	for i := range days {
		days[i].LowStock = days[i].Balance.LessThan(p.LowStockThreshold)
		movement := days[i].Entries.Add(days[i].Exits)
		days[i].HighMovement = movement.GreaterThan(average.Mul(p.HighMovementFactor)) &&
			movement.GreaterThan(decimal.Zero)
	}

	return Report{
		ItemCode:             itemCode,
		From:                 start,
		To:                   end,
		Opening:              opening,
		Days:                 days,
		AverageDailyMovement: average,
	}
}
