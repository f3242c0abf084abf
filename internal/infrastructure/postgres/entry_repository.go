package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo adaptador de entradas sobre PostgreSQL. Cada método emite una
// sola sentencia: el almacén no ofrece atomicidad entre llamadas.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// InsertHeader persiste la cabecera de la entrada.
func (r *EntryRepo) InsertHeader(ctx context.Context, e *entity.Entry) error {
	query := `
		INSERT INTO entries (id, date, origin, authorized_by, received_by, justification, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Date, e.Origin, e.AuthorizedBy, e.ReceivedBy, e.Justification, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entry header: %w", err)
	}
	return nil
}

// InsertLines persiste las líneas, una sentencia por fila y en orden.
func (r *EntryRepo) InsertLines(ctx context.Context, lines []entity.EntryLine) error {
	query := `INSERT INTO entry_lines (entry_id, item_code, quantity) VALUES ($1, $2, $3)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, query, l.EntryID, l.ItemCode, l.Quantity); err != nil {
			return fmt.Errorf("insert entry line %s: %w", l.ItemCode, err)
		}
	}
	return nil
}

// GetByID obtiene una cabecera por id; nil si no existe.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	query := `
		SELECT id, date, origin, authorized_by, received_by, justification, created_at
		FROM entries WHERE id = $1`
	var e entity.Entry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Date, &e.Origin, &e.AuthorizedBy, &e.ReceivedBy, &e.Justification, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

// FindLinesBefore líneas del artículo con fecha de cabecera anterior a `before`,
// en orden estable (fecha, cabecera) para que la paginación sea determinista.
func (r *EntryRepo) FindLinesBefore(ctx context.Context, itemCode string, before time.Time, limit, offset int) ([]entity.MovementLine, error) {
	query := `
		SELECT l.entry_id, l.item_code, l.quantity, e.date
		FROM entry_lines l
		JOIN entries e ON e.id = l.entry_id
		WHERE l.item_code = $1 AND e.date < $2
		ORDER BY e.date, e.id
		LIMIT $3 OFFSET $4`
	return r.scanMovementLines(ctx, query, itemCode, before, limit, offset)
}

// FindLinesInRange líneas con fecha de cabecera en [from, until) — until exclusivo.
func (r *EntryRepo) FindLinesInRange(ctx context.Context, itemCode string, from, until time.Time, limit, offset int) ([]entity.MovementLine, error) {
	query := `
		SELECT l.entry_id, l.item_code, l.quantity, e.date
		FROM entry_lines l
		JOIN entries e ON e.id = l.entry_id
		WHERE l.item_code = $1 AND e.date >= $2 AND e.date < $3
		ORDER BY e.date, e.id
		LIMIT $4 OFFSET $5`
	return r.scanMovementLines(ctx, query, itemCode, from, until, limit, offset)
}

func (r *EntryRepo) scanMovementLines(ctx context.Context, query string, args ...any) ([]entity.MovementLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entry lines: %w", err)
	}
	defer rows.Close()
	var list []entity.MovementLine
	for rows.Next() {
		m := entity.MovementLine{Kind: entity.MovementEntry}
		if err := rows.Scan(&m.HeaderID, &m.ItemCode, &m.Quantity, &m.Date); err != nil {
			return nil, fmt.Errorf("scan entry line: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
