package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// EntryRepository puerto de persistencia para entradas. Cada método emite una
// sola sentencia contra el almacén: no hay atomicidad entre llamadas, por lo
// que la cabecera debe existir antes de insertar sus líneas.
type EntryRepository interface {
	InsertHeader(ctx context.Context, e *entity.Entry) error
	InsertLines(ctx context.Context, lines []entity.EntryLine) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)

	// FindLinesBefore líneas del artículo con fecha de cabecera < before,
	// ordenadas por fecha y cabecera, paginadas con limit/offset.
	FindLinesBefore(ctx context.Context, itemCode string, before time.Time, limit, offset int) ([]entity.MovementLine, error)
	// FindLinesInRange líneas con fecha de cabecera en [from, until).
	// La cota superior es exclusiva: el llamador pasa la medianoche del día siguiente.
	FindLinesInRange(ctx context.Context, itemCode string, from, until time.Time, limit, offset int) ([]entity.MovementLine, error)
}
