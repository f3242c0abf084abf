package kardex

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/application/paging"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/kardex"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
	"github.com/jhoicas/almacen-pro/internal/observability"
)

// ReportUseCase reconstruye el kardex de un artículo: saldo de apertura más
// una serie densa de un día por fecha calendario dentro de la ventana.
// Toda lectura del histórico pasa por el lector paginado: cualquier lado
// puede exceder una página.
type ReportUseCase struct {
	entryRepo repository.EntryRepository
	exitRepo  repository.ExitRepository
	pageSize  int
	params    kardex.Params
	metrics   *observability.Metrics
}

// NewReportUseCase construye el caso de uso. pageSize <= 0 usa el valor por defecto.
func NewReportUseCase(
	entryRepo repository.EntryRepository,
	exitRepo repository.ExitRepository,
	pageSize int,
	params kardex.Params,
	metrics *observability.Metrics,
) *ReportUseCase {
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &ReportUseCase{
		entryRepo: entryRepo,
		exitRepo:  exitRepo,
		pageSize:  pageSize,
		params:    params,
		metrics:   metrics,
	}
}

// Kardex calcula el informe para [from, to] inclusivo. O todo el cálculo tiene
// éxito o falla completo: un error en cualquier página aborta sin datos parciales.
func (uc *ReportUseCase) Kardex(ctx context.Context, itemCode string, from, to time.Time) (*kardex.Report, error) {
	if itemCode == "" || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	start := kardex.DayOf(from)
	// Cota superior exclusiva: medianoche del día siguiente a `to`, para no
	// depender de la hora de las cabeceras.
	until := kardex.NextDay(to)

	opening, err := uc.openingBalance(ctx, itemCode, start)
	if err != nil {
		return nil, err
	}

	entries, err := paging.ReadAll(uc.pageSize, func(limit, offset int) ([]entity.MovementLine, error) {
		return uc.entryRepo.FindLinesInRange(ctx, itemCode, start, until, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	exits, err := paging.ReadAll(uc.pageSize, func(limit, offset int) ([]entity.MovementLine, error) {
		return uc.exitRepo.FindLinesInRange(ctx, itemCode, start, until, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	lines := make([]entity.MovementLine, 0, len(entries)+len(exits))
	lines = append(lines, entries...)
	lines = append(lines, exits...)

	report := kardex.Build(itemCode, opening, from, to, lines, uc.params)
	uc.metrics.KardexReportServed()
	return &report, nil
}

// openingBalance saldo neto inmediatamente antes de `before`:
// Σ líneas de entrada − Σ líneas de salida con fecha de cabecera anterior.
func (uc *ReportUseCase) openingBalance(ctx context.Context, itemCode string, before time.Time) (decimal.Decimal, error) {
	entries, err := paging.ReadAll(uc.pageSize, func(limit, offset int) ([]entity.MovementLine, error) {
		return uc.entryRepo.FindLinesBefore(ctx, itemCode, before, limit, offset)
	})
	if err != nil {
		return decimal.Zero, err
	}
	exits, err := paging.ReadAll(uc.pageSize, func(limit, offset int) ([]entity.MovementLine, error) {
		return uc.exitRepo.FindLinesBefore(ctx, itemCode, before, limit, offset)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return kardex.Sum(entries).Sub(kardex.Sum(exits)), nil
}
