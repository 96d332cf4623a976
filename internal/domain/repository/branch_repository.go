package repository

import (
	"context"

	"github.com/jhoicas/estoque-ti/internal/domain/entity"
)

// BranchRepository puerto de lectura de filiais (ordenadas por nombre).
type BranchRepository interface {
	List(ctx context.Context) ([]*entity.Branch, error)
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
}
