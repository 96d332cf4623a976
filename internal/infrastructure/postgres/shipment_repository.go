package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, filial_id::text, produto_id, quantidade, data_envio`

// ShipmentRepo implementación del puerto ShipmentRepository sobre envios_filiais.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create inserta el envío. BranchID nil se guarda como NULL (Matriz).
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.BranchShipment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO envios_filiais (id, filial_id, produto_id, quantidade, data_envio)
		VALUES ($1, ($2::text)::bigint, $3, $4, $5)`,
		s.ID, s.BranchID, s.ProductID, s.Quantity, s.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert envio_filial: %w", err)
	}
	return nil
}

// List devuelve todos los envíos, más recientes primero.
func (r *ShipmentRepo) List(ctx context.Context) ([]*entity.BranchShipment, error) {
	return r.list(ctx, `SELECT `+shipmentColumns+` FROM envios_filiais ORDER BY data_envio DESC`)
}

// ListByBranch devuelve los envíos de la filial; nil filtra filial_id IS NULL.
func (r *ShipmentRepo) ListByBranch(ctx context.Context, branchID *string) ([]*entity.BranchShipment, error) {
	if branchID == nil {
		return r.list(ctx, `SELECT `+shipmentColumns+` FROM envios_filiais WHERE filial_id IS NULL ORDER BY data_envio DESC`)
	}
	return r.list(ctx, `SELECT `+shipmentColumns+` FROM envios_filiais WHERE filial_id::text = $1 ORDER BY data_envio DESC`, *branchID)
}

func (r *ShipmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.BranchShipment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list envios_filiais: %w", err)
	}
	defer rows.Close()
	var list []*entity.BranchShipment
	for rows.Next() {
		var s entity.BranchShipment
		if err := rows.Scan(&s.ID, &s.BranchID, &s.ProductID, &s.Quantity, &s.SentAt); err != nil {
			return nil, fmt.Errorf("scan envio_filial: %w", err)
		}
		if s.Quantity <= 0 {
			return nil, fmt.Errorf("envio_filial %s com quantidade não positiva (%d)", s.ID, s.Quantity)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
