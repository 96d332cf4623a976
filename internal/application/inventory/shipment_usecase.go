package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

// HeadquartersName nombre mostrado para el selector de la Matriz.
const HeadquartersName = "Agricopel (Matriz)"

// Bandas de intensidad de un envío según la quantidade.
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// SnapshotSource provee el snapshot cargado (state.Cache).
type SnapshotSource interface {
	Snapshot() *state.Snapshot
}

// ShipmentUseCase navegación de envios_filiais por filial.
type ShipmentUseCase struct {
	shipmentRepo repository.ShipmentRepository
	movRepo      repository.MovementRepository
	snapshots    SnapshotSource
	log          zerolog.Logger
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(
	shipmentRepo repository.ShipmentRepository,
	movRepo repository.MovementRepository,
	snapshots SnapshotSource,
	log zerolog.Logger,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		shipmentRepo: shipmentRepo,
		movRepo:      movRepo,
		snapshots:    snapshots,
		log:          log,
	}
}

// ListBranches devuelve la Matriz seguida de las filiais ordenadas por nome.
func (uc *ShipmentUseCase) ListBranches() []dto.BranchResponse {
	snap := uc.snapshots.Snapshot()
	out := make([]dto.BranchResponse, 0, len(snap.Branches)+1)
	out = append(out, dto.BranchResponse{ID: entity.DestinationHeadquartersTag, Name: HeadquartersName})
	for _, b := range snap.Branches {
		out = append(out, dto.BranchResponse{ID: b.ID, Name: b.Name})
	}
	return out
}

// ListShipments lista los envíos de la filial (o Matriz), más recientes primero, y completa
// cada uno con solicitante y observações de la última movimentação del produto hacia esa filial.
func (uc *ShipmentUseCase) ListShipments(ctx context.Context, selector string) (*dto.ShipmentListResponse, error) {
	dest, ok := entity.ParseShipmentTarget(selector)
	if !ok {
		return nil, fmt.Errorf("%w: selecione uma filial", domain.ErrInvalidInput)
	}
	snap := uc.snapshots.Snapshot()

	branch := dto.BranchResponse{ID: entity.DestinationHeadquartersTag, Name: HeadquartersName}
	if dest.Kind == entity.DestinationBranch {
		branch = dto.BranchResponse{ID: dest.BranchID, Name: snap.BranchName(dest.BranchRef())}
	}

	shipments, err := uc.shipmentRepo.ListByBranch(ctx, dest.BranchRef())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}

	items := make([]dto.ShipmentRow, 0, len(shipments))
	for _, sh := range shipments {
		row := dto.ShipmentRow{
			ID:          sh.ID,
			ProductID:   sh.ProductID,
			ProductName: "—",
			Quantity:    sh.Quantity,
			Intensity:   Intensity(sh.Quantity),
			SentAt:      sh.SentAt,
			Requester:   "—",
			Notes:       "—",
		}
		if p := snap.Product(sh.ProductID); p != nil && p.Name != "" {
			row.ProductName = p.Name
		}
		// Una consulta por envío, igual que la consola.
		mov, err := uc.movRepo.LatestFor(ctx, sh.ProductID, sh.BranchID)
		if err != nil {
			uc.log.Warn().Err(err).Str("shipment_id", sh.ID).Msg("falha ao buscar movimentação do envio")
		} else if mov != nil {
			row.Requester = orDash(mov.Requester)
			row.Notes = orDash(mov.Notes)
		}
		items = append(items, row)
	}
	return &dto.ShipmentListResponse{Branch: branch, Items: items}, nil
}

// Intensity clasifica la quantidade enviada: low ≤ 2, medium ≤ 5, high en otro caso.
func Intensity(quantity int) string {
	switch {
	case quantity <= 2:
		return IntensityLow
	case quantity <= 5:
		return IntensityMedium
	default:
		return IntensityHigh
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
