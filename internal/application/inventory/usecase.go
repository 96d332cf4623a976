package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/inventory"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

// Mensajes mostrados al operador.
const (
	msgMovementSaved   = "Movimentação registrada e estoque atualizado com sucesso"
	msgShipmentFailed  = "Movimentação salva, mas falha ao registrar envio para filial"
	msgShipmentSaved   = "Envio registrado com sucesso"
	msgReloadFailed    = "Erro ao carregar dados"
	msgInvalidMovement = "preencha produto, tipo e quantidade válidos"
)

// RegisterMovementUseCase registra entradas y salidas: lee el produto una vez, valida el saldo,
// guarda movimentação y nueva quantidade en una transacción y luego dispara los efectos
// secundarios (notificación y envio_filial) sin deshacer lo confirmado si fallan.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	shipmentRepo repository.ShipmentRepository
	notifier     Notifier
	refresher    Refresher
	log          zerolog.Logger
	now          func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	shipmentRepo repository.ShipmentRepository,
	notifier Notifier,
	refresher Refresher,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		shipmentRepo: shipmentRepo,
		notifier:     notifier,
		refresher:    refresher,
		log:          log,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// MovementInputDTO entrada del formulario de movimentação.
// Destination: "" local, entity.DestinationVanTag, entity.DestinationHeadquartersTag o id de filial.
type MovementInputDTO struct {
	ProductID   string
	Type        string
	Quantity    int
	Responsible string
	Requester   string
	Ticket      string
	Sector      string
	Notes       string
	Destination string
}

// MovementResult resultado de una movimentação confirmada.
type MovementResult struct {
	MovementID  string
	NewQuantity int
	Notices     []dto.Notice
}

// RegisterMovement valida, confirma y aplica los efectos secundarios de la movimentação.
// Solo devuelve error si nada se escribió; los fallos posteriores llegan como Notices.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*MovementResult, error) {
	input.ProductID = strings.TrimSpace(input.ProductID)
	if input.ProductID == "" || !entity.IsValidMovementType(input.Type) || input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgInvalidMovement)
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	newQty, err := inventory.ApplyMovement(input.Type, product.Quantity, input.Quantity)
	if err != nil {
		return nil, err
	}

	dest := entity.ParseDestination(input.Destination)
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Responsible: strings.TrimSpace(input.Responsible),
		Requester:   strings.TrimSpace(input.Requester),
		Ticket:      strings.TrimSpace(input.Ticket),
		Sector:      strings.TrimSpace(input.Sector),
		Notes:       strings.TrimSpace(input.Notes),
		BranchID:    dest.BranchRef(),
		Date:        uc.now(),
	}
	if dest.Kind == entity.DestinationVan {
		mov.Sector = entity.DestinationVanTag
	}
	// Entradas no tienen solicitante ni chamado.
	if input.Type == entity.MovementTypeIn {
		mov.Requester = ""
		mov.Ticket = ""
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return productRepo.SetQuantity(ctx, product.ID, product.Quantity, newQty)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", product.ID).
		Str("type", mov.Type).
		Int("quantity", mov.Quantity).
		Int("new_quantity", newQty).
		Msg("movimentação registrada")

	res := &MovementResult{MovementID: mov.ID, NewQuantity: newQty}

	if alert, ok := inventory.AlertFor(product, newQty); ok {
		alert.MovementType = mov.Type
		alert.Responsible = mov.Responsible
		alert.Notes = mov.Notes
		res.Notices = append(res.Notices, uc.notifier.Notify(ctx, alert))
	}

	if mov.Type == entity.MovementTypeOut && dest.RecordsShipment() {
		shipment := &entity.BranchShipment{
			ID:        uuid.New().String(),
			BranchID:  dest.BranchRef(),
			ProductID: product.ID,
			Quantity:  mov.Quantity,
			SentAt:    mov.Date,
		}
		if err := uc.shipmentRepo.Create(ctx, shipment); err != nil {
			uc.log.Error().Err(err).Str("movement_id", mov.ID).Str("product_id", product.ID).
				Msg("falha ao registrar envio para filial")
			res.Notices = append(res.Notices, dto.ErrorNotice(msgShipmentFailed))
		}
	}

	res.Notices = append(res.Notices, dto.SuccessNotice(msgMovementSaved))
	res.Notices = append(res.Notices, uc.reload(ctx)...)
	return res, nil
}

// ShipmentInputDTO entrada del formulario "novo envio" (envío manual sin movimentação).
type ShipmentInputDTO struct {
	Target    string // entity.DestinationHeadquartersTag o id de filial
	ProductID string
	Quantity  int
}

// RegisterShipment registra un envio_filial manual. No altera la quantidade del produto.
func (uc *RegisterMovementUseCase) RegisterShipment(ctx context.Context, input ShipmentInputDTO) (*dto.ActionResponse, error) {
	dest, ok := entity.ParseShipmentTarget(input.Target)
	if !ok || strings.TrimSpace(input.ProductID) == "" || input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: selecione filial, produto e quantidade válidos", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	shipment := &entity.BranchShipment{
		ID:        uuid.New().String(),
		BranchID:  dest.BranchRef(),
		ProductID: product.ID,
		Quantity:  input.Quantity,
		SentAt:    uc.now(),
	}
	if err := uc.shipmentRepo.Create(ctx, shipment); err != nil {
		uc.log.Error().Err(err).Str("product_id", product.ID).Msg("falha ao registrar envio")
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}

	notices := []dto.Notice{dto.SuccessNotice(msgShipmentSaved)}
	notices = append(notices, uc.reload(ctx)...)
	return &dto.ActionResponse{ID: shipment.ID, Notices: notices}, nil
}

func (uc *RegisterMovementUseCase) reload(ctx context.Context) []dto.Notice {
	if uc.refresher == nil {
		return nil
	}
	if err := uc.refresher.Reload(ctx); err != nil {
		uc.log.Error().Err(err).Msg("falha ao recarregar snapshot")
		return []dto.Notice{dto.ErrorNotice(msgReloadFailed)}
	}
	return nil
}
