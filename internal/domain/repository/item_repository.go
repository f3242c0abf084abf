package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// ItemRepository puerto de lectura del maestro de artículos. El flujo de
// commit nunca escribe aquí: los precios se copian como foto al insertar líneas.
type ItemRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	// Search busca por código o nombre (subcadena, sin distinguir mayúsculas).
	Search(ctx context.Context, query string, limit, offset int) ([]entity.Item, error)
	// Available saldo derivado del libro: Σ líneas de entrada − Σ líneas de
	// salida sobre todo el histórico. Nunca es un contador almacenado.
	Available(ctx context.Context, code string) (decimal.Decimal, error)
}
