package repository

import (
	"context"

	"github.com/jhoicas/estoque-ti/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para produtos.
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// MaxCode devuelve el mayor código existente o "" si la tabla está vacía.
	MaxCode(ctx context.Context) (string, error)
	Update(ctx context.Context, product *entity.Product) error
	// SetQuantity fija la cantidad solo si sigue valiendo previous (ErrConflict si no).
	SetQuantity(ctx context.Context, id string, previous, quantity int) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
