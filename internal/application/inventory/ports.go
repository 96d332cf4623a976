package inventory

import (
	"context"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/domain/inventory"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// La inserción de la movimentação y el cambio de quantidade se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Refresher recarga el snapshot después de una acción que muta datos.
type Refresher interface {
	Reload(ctx context.Context) error
}

// Notifier despacha la alerta de estoque baixo/zerado y devuelve el aviso para el operador.
type Notifier interface {
	Notify(ctx context.Context, alert inventory.Alert) dto.Notice
}
