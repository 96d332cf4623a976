package inventory

import (
	"context"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
)

// RegisterMovementFromRequest adapta el body HTTP al caso de uso.
// Si el formulario no trae responsável se usa el operador autenticado.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, username string, in dto.RegisterMovementRequest) (*MovementResult, error) {
	responsible := in.Responsible
	if responsible == "" {
		responsible = username
	}
	return uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Responsible: responsible,
		Requester:   in.Requester,
		Ticket:      in.Ticket,
		Sector:      in.Sector,
		Notes:       in.Notes,
		Destination: in.Destination,
	})
}
