package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo adaptador de lectura del maestro de artículos.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByCode obtiene un artículo por código; nil si no existe.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	query := `
		SELECT code, name, unit, unit_price, brand, image_ref, created_at, updated_at
		FROM items WHERE code = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, code).Scan(
		&it.Code, &it.Name, &it.Unit, &it.UnitPrice, &it.Brand, &it.ImageRef, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Search busca por código o nombre (subcadena, sin distinguir mayúsculas).
func (r *ItemRepo) Search(ctx context.Context, query string, limit, offset int) ([]entity.Item, error) {
	sql := `
		SELECT code, name, unit, unit_price, brand, image_ref, created_at, updated_at
		FROM items
		WHERE code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY code
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, sql, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()
	var list []entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.Code, &it.Name, &it.Unit, &it.UnitPrice, &it.Brand, &it.ImageRef, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Available saldo derivado del libro en una sola sentencia:
// Σ líneas de entrada − Σ líneas de salida sobre todo el histórico.
func (r *ItemRepo) Available(ctx context.Context, code string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE((SELECT SUM(quantity) FROM entry_lines WHERE item_code = $1), 0)
		     - COALESCE((SELECT SUM(quantity) FROM exit_lines WHERE item_code = $1), 0)`
	var available decimal.Decimal
	if err := r.q.QueryRow(ctx, query, code).Scan(&available); err != nil {
		return decimal.Zero, fmt.Errorf("available %s: %w", code, err)
	}
	return available, nil
}
