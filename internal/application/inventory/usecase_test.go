package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/inventory"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/memory"
)

// ─── fakes ────────────────────────────────────────────────────────────────────

type fakeNotifier struct {
	alerts []inventory.Alert
}

func (f *fakeNotifier) Notify(_ context.Context, a inventory.Alert) dto.Notice {
	f.alerts = append(f.alerts, a)
	return dto.SuccessNotice("Notificação enviada para " + a.Email)
}

type fixture struct {
	store    *memory.Store
	cache    *state.Cache
	notifier *fakeNotifier
	uc       *appinventory.RegisterMovementUseCase
}

var fixedNow = time.Date(2024, 7, 10, 14, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, products ...*entity.Product) *fixture {
	t.Helper()
	s := memory.NewStore().WithClock(func() time.Time { return fixedNow })
	s.Seed(products, nil, []*entity.Branch{{ID: "7", Name: "Posto Itajaí"}}, nil)
	cache := state.NewCache(s.Products(), s.Movements(), s.Branches(), s.Shipments(), time.UTC).
		WithClock(func() time.Time { return fixedNow })
	require.NoError(t, cache.Reload(context.Background()))

	n := &fakeNotifier{}
	uc := appinventory.NewRegisterMovementUseCase(
		memory.NewTxRunner(s), s.Products(), s.Shipments(), n, cache, zerolog.Nop(),
	).WithClock(func() time.Time { return fixedNow })
	return &fixture{store: s, cache: cache, notifier: n, uc: uc}
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func noticeMessages(ns []dto.Notice) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Level+": "+n.Message)
	}
	return out
}

// ─── saldo ────────────────────────────────────────────────────────────────────

func TestRegisterMovement_InboundAddsQuantity(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Mouse", Code: "000001", Quantity: 4, MinQuantity: 1})

	res, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 6, Responsible: "suporte",
		Requester: "fulano", Ticket: "123",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.NewQuantity)
	assert.Equal(t, 10, f.quantity(t, "p1"))

	movs, _ := f.store.Movements().ListWithProduct(context.Background())
	require.Len(t, movs, 1)
	assert.Empty(t, movs[0].Requester, "entrada não guarda solicitante")
	assert.Empty(t, movs[0].Ticket)
	assert.Nil(t, movs[0].BranchID)

	assert.Equal(t, 1, f.cache.Snapshot().Stats.TodayMovements, "snapshot recarregado")
}

func TestRegisterMovement_OutboundSubtracts(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Mouse", Code: "000001", Quantity: 9, MinQuantity: 1})

	res, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.NewQuantity)
	assert.Equal(t, 5, f.quantity(t, "p1"))
	assert.Contains(t, noticeMessages(res.Notices), "success: Movimentação registrada e estoque atualizado com sucesso")
}

func TestRegisterMovement_InsufficientStockWritesNothing(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Mouse", Code: "000001", Quantity: 2})

	_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 3, Destination: "7",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.quantity(t, "p1"))

	movs, _ := f.store.Movements().ListWithProduct(context.Background())
	assert.Empty(t, movs)
	shipments, _ := f.store.Shipments().List(context.Background())
	assert.Empty(t, shipments)
	assert.Empty(t, f.notifier.alerts)
}

func TestRegisterMovement_Validation(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Mouse", Code: "000001", Quantity: 2})
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, appinventory.MovementInputDTO{ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RegisterMovement(ctx, appinventory.MovementInputDTO{ProductID: "p1", Type: "ajuste", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RegisterMovement(ctx, appinventory.MovementInputDTO{Type: entity.MovementTypeIn, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RegisterMovement(ctx, appinventory.MovementInputDTO{ProductID: "nope", Type: entity.MovementTypeIn, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_GatewayFailureRollsBack(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Mouse", Code: "000001", Quantity: 5})
	f.store.FailOn(memory.OpProductSetQty, errors.New("connection reset"))

	_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrGateway)

	f.store.FailOn(memory.OpProductSetQty, nil)
	assert.Equal(t, 5, f.quantity(t, "p1"))
	movs, _ := f.store.Movements().ListWithProduct(context.Background())
	assert.Empty(t, movs, "movimentação desfeita junto com a quantidade")
}

func TestRegisterMovement_CancelledContextWritesNothing(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Mouse", Code: "000001", Quantity: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.RegisterMovement(ctx, appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 3, Destination: "7",
	})
	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Equal(t, 10, f.quantity(t, "p1"), "erro devolvido implica nada gravado")
	movs, _ := f.store.Movements().ListWithProduct(context.Background())
	assert.Empty(t, movs)
	shipments, _ := f.store.Shipments().List(context.Background())
	assert.Empty(t, shipments)
}

// ─── destinos ─────────────────────────────────────────────────────────────────

func TestRegisterMovement_HeadquartersCreatesShipmentWithNullBranch(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Notebook", Code: "000001", Quantity: 10})

	_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 3, Destination: entity.DestinationHeadquartersTag,
	})
	require.NoError(t, err)

	shipments, err := f.store.Shipments().List(context.Background())
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	assert.Nil(t, shipments[0].BranchID)
	assert.Equal(t, "p1", shipments[0].ProductID)
	assert.Equal(t, 3, shipments[0].Quantity)

	movs, _ := f.store.Movements().ListWithProduct(context.Background())
	require.Len(t, movs, 1)
	assert.Nil(t, movs[0].BranchID)
}

func TestRegisterMovement_BranchAndVanDestinations(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Cabo", Code: "000001", Quantity: 10})
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 2, Destination: "7", Sector: "Vendas",
	})
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(ctx, appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 1, Destination: entity.DestinationVanTag, Sector: "TI",
	})
	require.NoError(t, err)

	movs, _ := f.store.Movements().ListWithProduct(ctx)
	require.Len(t, movs, 2)
	var van, branch *entity.Movement
	for _, m := range movs {
		if m.Quantity == 1 {
			van = m
		} else {
			branch = m
		}
	}
	require.NotNil(t, branch.BranchID)
	assert.Equal(t, "7", *branch.BranchID)
	assert.Equal(t, "Vendas", branch.Sector)
	assert.Nil(t, van.BranchID)
	assert.Equal(t, entity.DestinationVanTag, van.Sector)

	shipments, _ := f.store.Shipments().List(ctx)
	require.Len(t, shipments, 1, "van não gera envio")
	assert.Equal(t, "7", *shipments[0].BranchID)
}

func TestRegisterMovement_InboundToBranchDoesNotShip(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Cabo", Code: "000001", Quantity: 1})
	_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 2, Destination: "7",
	})
	require.NoError(t, err)
	shipments, _ := f.store.Shipments().List(context.Background())
	assert.Empty(t, shipments)
}

// ─── efeitos secundários ──────────────────────────────────────────────────────

func TestRegisterMovement_ZeroedNotification(t *testing.T) {
	f := newFixture(t, &entity.Product{
		ID: "p1", Name: "Toner", Code: "000001", Quantity: 2, MinQuantity: 5,
		NotifyOnLow: true, NotifyEmail: "ti@agricopel.com.br",
	})

	res, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 2, Responsible: "suporte",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewQuantity)

	require.Len(t, f.notifier.alerts, 1)
	a := f.notifier.alerts[0]
	assert.Equal(t, inventory.AlertZeroed, a.Status)
	assert.Equal(t, 0, a.Quantity)
	assert.Equal(t, 5, a.MinQuantity)
	assert.Equal(t, "ti@agricopel.com.br", a.Email)
	assert.Equal(t, "suporte", a.Responsible)
	assert.Equal(t, []string{
		"success: Notificação enviada para ti@agricopel.com.br",
		"success: Movimentação registrada e estoque atualizado com sucesso",
	}, noticeMessages(res.Notices))
}

func TestRegisterMovement_NoNotificationAboveMinimum(t *testing.T) {
	f := newFixture(t, &entity.Product{
		ID: "p1", Name: "Toner", Code: "000001", Quantity: 20, MinQuantity: 5,
		NotifyOnLow: true, NotifyEmail: "ti@agricopel.com.br",
	})
	_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.alerts)
}

func TestRegisterMovement_ShipmentFailureIsNotice(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Cabo", Code: "000001", Quantity: 10})
	f.store.FailOn(memory.OpShipmentCreate, errors.New("insert failed"))

	res, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: 4, Destination: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, f.quantity(t, "p1"), "movimentação continua confirmada")
	assert.Equal(t, []string{
		"error: Movimentação salva, mas falha ao registrar envio para filial",
		"success: Movimentação registrada e estoque atualizado com sucesso",
	}, noticeMessages(res.Notices))
}

func TestRegisterMovement_ReloadFailureIsNotice(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Cabo", Code: "000001", Quantity: 10})
	f.store.FailOn(memory.OpBranchList, errors.New("timeout"))

	res, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInputDTO{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Contains(t, noticeMessages(res.Notices), "error: Erro ao carregar dados")
}

// ─── envio manual ─────────────────────────────────────────────────────────────

func TestRegisterShipment(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Cabo", Code: "000001", Quantity: 10})
	ctx := context.Background()

	res, err := f.uc.RegisterShipment(ctx, appinventory.ShipmentInputDTO{Target: "7", ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 10, f.quantity(t, "p1"))

	_, err = f.uc.RegisterShipment(ctx, appinventory.ShipmentInputDTO{Target: entity.DestinationVanTag, ProductID: "p1", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RegisterShipment(ctx, appinventory.ShipmentInputDTO{Target: "7", ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RegisterShipment(ctx, appinventory.ShipmentInputDTO{Target: "7", ProductID: "x", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovementFromRequest_DefaultsResponsible(t *testing.T) {
	f := newFixture(t, &entity.Product{ID: "p1", Name: "Cabo", Code: "000001", Quantity: 10})
	_, err := f.uc.RegisterMovementFromRequest(context.Background(), "operador", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 1,
	})
	require.NoError(t, err)
	movs, _ := f.store.Movements().ListWithProduct(context.Background())
	require.Len(t, movs, 1)
	assert.Equal(t, "operador", movs[0].Responsible)
}
