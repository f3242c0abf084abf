package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo adaptador de solicitudes de mantenimiento y su catálogo de tipos.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

// Insert persiste una solicitud.
func (r *RequestRepo) Insert(ctx context.Context, req *entity.Request) error {
	query := `
		INSERT INTO requests (id, type_code, description, requester, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.TypeCode, req.Description, req.Requester, req.Location, req.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por id; nil si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	query := `
		SELECT id, type_code, description, requester, location, created_at
		FROM requests WHERE id = $1`
	var req entity.Request
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.TypeCode, &req.Description, &req.Requester, &req.Location, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

// ListTypes devuelve el catálogo completo de tipos de solicitud.
func (r *RequestRepo) ListTypes(ctx context.Context) ([]entity.RequestType, error) {
	query := `SELECT code, description FROM request_types ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list request types: %w", err)
	}
	defer rows.Close()
	var list []entity.RequestType
	for rows.Next() {
		var t entity.RequestType
		if err := rows.Scan(&t.Code, &t.Description); err != nil {
			return nil, fmt.Errorf("scan request type: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
