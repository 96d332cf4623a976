package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// filial_id es bigint en Supabase; se lee como texto para mantener BranchID opaco.
const movementColumns = `m.id, m.produto_id, m.tipo, m.quantidade, m.responsavel, m.solicitante, m.chamado,
	m.setor, m.observacoes, m.filial_id::text, m.data`

// MovementRepo implementación del puerto MovementRepository sobre movimentacoes (pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta la movimentação.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimentacoes (id, produto_id, tipo, quantidade, responsavel, solicitante, chamado, setor, observacoes, filial_id, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, ($10::text)::bigint, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Responsible,
		nullableText(m.Requester), nullableText(m.Ticket), nullableText(m.Sector), nullableText(m.Notes),
		m.BranchID, m.Date,
	)
	if err != nil {
		return fmt.Errorf("insert movimentacao: %w", err)
	}
	return nil
}

// ListWithProduct devuelve todas las movimentações con el produto unido, más recientes primero.
func (r *MovementRepo) ListWithProduct(ctx context.Context) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `, p.id, p.nome, p.codigo, p.categoria
		FROM movimentacoes m
		LEFT JOIN produtos p ON p.id = m.produto_id
		ORDER BY m.data DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var (
			pID, pName, pCode, pCategory *string
		)
		m, err := scanMovement(rows, &pID, &pName, &pCode, &pCategory)
		if err != nil {
			return nil, fmt.Errorf("scan movimentacao: %w", err)
		}
		if pID != nil {
			m.Product = &entity.Product{
				ID:       *pID,
				Name:     textOrEmpty(pName),
				Code:     textOrEmpty(pCode),
				Category: textOrEmpty(pCategory),
			}
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LatestFor busca la movimentação más reciente del produto hacia la filial (nil = filial_id IS NULL).
func (r *MovementRepo) LatestFor(ctx context.Context, productID string, branchID *string) (*entity.Movement, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	query := `SELECT ` + movementColumns + ` FROM movimentacoes m WHERE m.produto_id = $1 AND `
	args := []any{productID}
	if branchID == nil {
		query += `m.filial_id IS NULL`
	} else {
		query += `m.filial_id::text = $2`
		args = append(args, *branchID)
	}
	query += ` ORDER BY m.data DESC LIMIT 1`

	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest movimentacao: %w", err)
	}
	return m, nil
}

// DeleteByProduct elimina todas las movimentações del produto.
func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if !isUUID(productID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM movimentacoes WHERE produto_id = $1`, productID); err != nil {
		return fmt.Errorf("delete movimentacoes: %w", err)
	}
	return nil
}

// scanMovement lee las columnas de movementColumns seguidas de extra.
func scanMovement(row pgx.Row, extra ...any) (*entity.Movement, error) {
	var (
		m                                    entity.Movement
		requester, ticket, sector, notes, rp *string
	)
	dest := []any{&m.ID, &m.ProductID, &m.Type, &m.Quantity, &rp,
		&requester, &ticket, &sector, &notes, &m.BranchID, &m.Date}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	m.Responsible = textOrEmpty(rp)
	m.Requester = textOrEmpty(requester)
	m.Ticket = textOrEmpty(ticket)
	m.Sector = textOrEmpty(sector)
	m.Notes = textOrEmpty(notes)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
