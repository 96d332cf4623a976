package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// movementTxOptions la quantidade se protege con compare-and-set en SetQuantity,
// así que READ COMMITTED alcanza.
var movementTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// TxRunner agrupa el insert en movimentacoes y el update de produtos.quantidade.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con repos atados a la tx. Los errores de fn vuelven intactos
// (ErrConflict, ErrInsufficientStock); los de begin/commit se envuelven.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	var fnErr error
	err := pgx.BeginTxFunc(ctx, r.pool, movementTxOptions, func(tx pgx.Tx) error {
		fnErr = fn(NewMovementRepository(tx), NewProductRepository(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("transação de movimentação: %w", err)
	}
	return nil
}
