package items

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/application/search"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

// ItemWithStock artículo del maestro junto con su disponible derivado del libro.
type ItemWithStock struct {
	entity.Item
	Available decimal.Decimal
}

// UseCase lecturas del maestro de artículos. Nunca escribe: el disponible es
// siempre un cálculo sobre el libro y los precios se copian al usarse.
type UseCase struct {
	itemRepo repository.ItemRepository
	debounce *search.Debouncer[[]entity.Item]
}

// NewUseCase construye el caso de uso; debounceDelay <= 0 usa el valor por defecto.
func NewUseCase(itemRepo repository.ItemRepository, debounceDelay time.Duration) *UseCase {
	return &UseCase{
		itemRepo: itemRepo,
		debounce: search.New[[]entity.Item](debounceDelay),
	}
}

// Get devuelve un artículo con su disponible calculado.
func (uc *UseCase) Get(ctx context.Context, code string) (*ItemWithStock, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	available, err := uc.itemRepo.Available(ctx, code)
	if err != nil {
		return nil, err
	}
	return &ItemWithStock{Item: *item, Available: available}, nil
}

// Search búsqueda directa por código o nombre.
func (uc *UseCase) Search(ctx context.Context, query string, limit, offset int) ([]entity.Item, error) {
	return uc.itemRepo.Search(ctx, query, limit, offset)
}

// SearchDebounced coalesce tecleo rápido: solo la consulta más reciente llega
// al almacén y solo su resultado se entrega.
func (uc *UseCase) SearchDebounced(ctx context.Context, query string, limit int, deliver func([]entity.Item, error)) {
	uc.debounce.Submit(ctx, func(ctx context.Context) ([]entity.Item, error) {
		return uc.itemRepo.Search(ctx, query, limit, 0)
	}, deliver)
}
