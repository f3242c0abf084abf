package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// ExitRepository puerto de persistencia para salidas. Cada método emite una
// sola sentencia; el flujo de commit encadena llamadas independientes y una
// falla intermedia deja la cabecera huérfana en finalized=false (sin rollback).
type ExitRepository interface {
	// InsertHeader crea la cabecera con finalized=false. Su existencia es el
	// primer estado persistido y debe ser invisible para consumidores hasta
	// UpdateFinalized.
	InsertHeader(ctx context.Context, x *entity.Exit) error
	InsertLines(ctx context.Context, lines []entity.ExitLine) error
	// UpdateFinalized aplica la única transición false→true; es la señal
	// autoritativa de commit que observa la automatización externa.
	UpdateFinalized(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Exit, error)

	FindLinesBefore(ctx context.Context, itemCode string, before time.Time, limit, offset int) ([]entity.MovementLine, error)
	FindLinesInRange(ctx context.Context, itemCode string, from, until time.Time, limit, offset int) ([]entity.MovementLine, error)
}
