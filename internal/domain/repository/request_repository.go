package repository

import (
	"context"

	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// RequestRepository puerto de persistencia para solicitudes de mantenimiento
// y su catálogo de tipos.
type RequestRepository interface {
	Insert(ctx context.Context, r *entity.Request) error
	GetByID(ctx context.Context, id string) (*entity.Request, error)
	ListTypes(ctx context.Context) ([]entity.RequestType, error)
}
