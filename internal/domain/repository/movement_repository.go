package repository

import (
	"context"

	"github.com/jhoicas/estoque-ti/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimentacoes.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListWithProduct devuelve todas las movimentações (más recientes primero) con el producto unido.
	ListWithProduct(ctx context.Context) ([]*entity.Movement, error)
	// LatestFor devuelve la movimentação más reciente del producto hacia la filial (nil = filial_id NULL).
	LatestFor(ctx context.Context, productID string, branchID *string) (*entity.Movement, error)
	DeleteByProduct(ctx context.Context, productID string) error
}
