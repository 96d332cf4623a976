package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, nome, codigo, quantidade, quantidade_minima, categoria, descricao, notify_on_low, notify_email, created_at`

// ProductRepo implementación del puerto ProductRepository sobre la tabla produtos (pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo produto. Código repetido → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO produtos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Code, p.Quantity, p.MinQuantity,
		nullableText(p.Category), nullableText(p.Description), p.NotifyOnLow, nullableText(p.NotifyEmail), p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtiene un produto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

// MaxCode devuelve el mayor codigo (orden textual, todos tienen el mismo ancho).
func (r *ProductRepo) MaxCode(ctx context.Context) (string, error) {
	var code string
	err := r.q.QueryRow(ctx, `SELECT codigo FROM produtos ORDER BY codigo DESC LIMIT 1`).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max codigo: %w", err)
	}
	return code, nil
}

// Update actualiza los campos editables. No toca codigo ni quantidade.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !isUUID(p.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE produtos SET nome = $2, quantidade_minima = $3, categoria = $4, descricao = $5,
			notify_on_low = $6, notify_email = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.MinQuantity, nullableText(p.Category), nullableText(p.Description),
		p.NotifyOnLow, nullableText(p.NotifyEmail),
	)
	if err != nil {
		return fmt.Errorf("update produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantity aplica compare-and-set sobre quantidade.
func (r *ProductRepo) SetQuantity(ctx context.Context, id string, previous, quantity int) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE produtos SET quantidade = $3 WHERE id = $1 AND quantidade = $2`,
		id, previous, quantity,
	)
	if err != nil {
		return fmt.Errorf("update quantidade: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List devuelve todos los produtos ordenados por nome.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM produtos ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un produto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                        entity.Product
		category, desc, notifyTo *string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Quantity, &p.MinQuantity,
		&category, &desc, &p.NotifyOnLow, &notifyTo, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Category = textOrEmpty(category)
	p.Description = textOrEmpty(desc)
	p.NotifyEmail = textOrEmpty(notifyTo)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
