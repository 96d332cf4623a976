package repository

import (
	"context"

	"github.com/jhoicas/estoque-ti/internal/domain/entity"
)

// ShipmentRepository define el puerto de persistencia para envios_filiais.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.BranchShipment) error
	List(ctx context.Context) ([]*entity.BranchShipment, error)
	// ListByBranch devuelve los envíos de la filial (nil = Matriz) más recientes primero.
	ListByBranch(ctx context.Context, branchID *string) ([]*entity.BranchShipment, error)
}
