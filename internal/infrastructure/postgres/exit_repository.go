package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

var _ repository.ExitRepository = (*ExitRepo)(nil)

// ExitRepo adaptador de salidas sobre PostgreSQL. Una sentencia por llamada:
// el flujo de commit no puede agrupar pasos en una unidad atómica, y una
// falla intermedia deja la cabecera huérfana en finalized=false.
type ExitRepo struct {
	q Querier
}

// NewExitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

// InsertHeader persiste la cabecera con finalized=false.
func (r *ExitRepo) InsertHeader(ctx context.Context, x *entity.Exit) error {
	query := `
		INSERT INTO exits (id, date, authorized_by, retrieved_by, request_id, comments, finalized, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7)`
	requestID := (*string)(nil)
	if x.RequestID != "" {
		requestID = &x.RequestID
	}
	_, err := r.q.Exec(ctx, query,
		x.ID, x.Date, x.AuthorizedBy, x.RetrievedBy, requestID, x.Comments, x.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert exit header: %w", err)
	}
	return nil
}

// InsertLines persiste las líneas con su foto de precio, una sentencia por fila.
func (r *ExitRepo) InsertLines(ctx context.Context, lines []entity.ExitLine) error {
	query := `INSERT INTO exit_lines (exit_id, item_code, quantity, unit_price) VALUES ($1, $2, $3, $4)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, query, l.ExitID, l.ItemCode, l.Quantity, l.UnitPrice); err != nil {
			return fmt.Errorf("insert exit line %s: %w", l.ItemCode, err)
		}
	}
	return nil
}

// UpdateFinalized aplica la transición única false→true en una sola sentencia.
// Si la fila no estaba en false no se toca nada: una salida no se re-finaliza.
func (r *ExitRepo) UpdateFinalized(ctx context.Context, id string) error {
	query := `UPDATE exits SET finalized = true WHERE id = $1 AND finalized = false`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update exit finalized: %w", err)
	}
	if tag.RowsAffected() == 0 {
		exit, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if exit == nil {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyFinalized
	}
	return nil
}

// GetByID obtiene una cabecera por id; nil si no existe.
func (r *ExitRepo) GetByID(ctx context.Context, id string) (*entity.Exit, error) {
	query := `
		SELECT id, date, authorized_by, retrieved_by, request_id, comments, finalized, created_at
		FROM exits WHERE id = $1`
	var x entity.Exit
	var requestID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&x.ID, &x.Date, &x.AuthorizedBy, &x.RetrievedBy, &requestID, &x.Comments, &x.Finalized, &x.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exit: %w", err)
	}
	if requestID != nil {
		x.RequestID = *requestID
	}
	return &x, nil
}

// FindLinesBefore líneas del artículo con fecha de cabecera anterior a `before`.
func (r *ExitRepo) FindLinesBefore(ctx context.Context, itemCode string, before time.Time, limit, offset int) ([]entity.MovementLine, error) {
	query := `
		SELECT l.exit_id, l.item_code, l.quantity, x.date
		FROM exit_lines l
		JOIN exits x ON x.id = l.exit_id
		WHERE l.item_code = $1 AND x.date < $2
		ORDER BY x.date, x.id
		LIMIT $3 OFFSET $4`
	return r.scanMovementLines(ctx, query, itemCode, before, limit, offset)
}

// FindLinesInRange líneas con fecha de cabecera en [from, until) — until exclusivo.
func (r *ExitRepo) FindLinesInRange(ctx context.Context, itemCode string, from, until time.Time, limit, offset int) ([]entity.MovementLine, error) {
	query := `
		SELECT l.exit_id, l.item_code, l.quantity, x.date
		FROM exit_lines l
		JOIN exits x ON x.id = l.exit_id
		WHERE l.item_code = $1 AND x.date >= $2 AND x.date < $3
		ORDER BY x.date, x.id
		LIMIT $4 OFFSET $5`
	return r.scanMovementLines(ctx, query, itemCode, from, until, limit, offset)
}

func (r *ExitRepo) scanMovementLines(ctx context.Context, query string, args ...any) ([]entity.MovementLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exit lines: %w", err)
	}
	defer rows.Close()
	var list []entity.MovementLine
	for rows.Next() {
		m := entity.MovementLine{Kind: entity.MovementExit}
		if err := rows.Scan(&m.HeaderID, &m.ItemCode, &m.Quantity, &m.Date); err != nil {
			return nil, fmt.Errorf("scan exit line: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
