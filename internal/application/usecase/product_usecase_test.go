package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/application/usecase"
	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/memory"
)

func newProductUseCase(s *memory.Store) (*usecase.ProductUseCase, *state.Cache) {
	cache := state.NewCache(s.Products(), s.Movements(), s.Branches(), s.Shipments(), time.UTC)
	return usecase.NewProductUseCase(s.Products(), memory.NewTxRunner(s), cache, zerolog.Nop()), cache
}

func TestCreate_NextSequentialCode(t *testing.T) {
	s := memory.NewStore()
	s.Seed([]*entity.Product{{ID: "a", Name: "Antigo", Code: "000041"}}, nil, nil, nil)
	uc, cache := newProductUseCase(s)

	res, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: "  Headset ", Quantity: 3, MinQuantity: 1, NotifyEmail: "  ti@agricopel.com.br ",
	})
	require.NoError(t, err)
	assert.Equal(t, "000042", res.Product.Code)
	assert.Equal(t, "Headset", res.Product.Name)
	assert.Equal(t, "ti@agricopel.com.br", res.Product.NotifyEmail)
	assert.Equal(t, dto.NoticeSuccess, res.Notices[0].Level)
	assert.Equal(t, 2, cache.Snapshot().Stats.TotalProducts, "snapshot recarregado após criar")
}

func TestCreate_FirstProductAndValidation(t *testing.T) {
	uc, _ := newProductUseCase(memory.NewStore())
	ctx := context.Background()

	res, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Mouse"})
	require.NoError(t, err)
	assert.Equal(t, "000001", res.Product.Code)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", MinQuantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_DuplicateCodeSurfacesAsDuplicate(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newProductUseCase(s)
	s.FailOn(memory.OpProductCreate, domain.ErrDuplicate)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Mouse"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "Já existe um produto com esse código.")
}

func TestCreate_GatewayFailure(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newProductUseCase(s)
	s.FailOn(memory.OpProductGet, errors.New("offline"))

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Mouse"})
	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestUpdate_KeepsCodeAndQuantity(t *testing.T) {
	s := memory.NewStore()
	s.Seed([]*entity.Product{{ID: "a", Name: "Mouse", Code: "000007", Quantity: 4, MinQuantity: 1}}, nil, nil, nil)
	uc, _ := newProductUseCase(s)

	res, err := uc.Update(context.Background(), "a", dto.UpdateProductRequest{
		Name: "Mouse sem fio", MinQuantity: 2, Category: "Periféricos", NotifyOnLow: true, NotifyEmail: "ti@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "000007", res.Product.Code)
	assert.Equal(t, 4, res.Product.Quantity)

	got, err := uc.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Mouse sem fio", got.Name)
	assert.Equal(t, "Periféricos", got.Category)
	assert.True(t, got.NotifyOnLow)

	_, err = uc.Update(context.Background(), "zzz", dto.UpdateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesMovementsFirst(t *testing.T) {
	s := memory.NewStore()
	s.Seed(
		[]*entity.Product{{ID: "a", Name: "Mouse", Code: "000001"}, {ID: "b", Name: "Cabo", Code: "000002"}},
		[]*entity.Movement{
			{ProductID: "a", Type: entity.MovementTypeIn, Quantity: 1},
			{ProductID: "b", Type: entity.MovementTypeIn, Quantity: 1},
		},
		nil,
		[]*entity.BranchShipment{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 2}},
	)
	uc, _ := newProductUseCase(s)
	ctx := context.Background()

	res, err := uc.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Produto e movimentações excluídos com sucesso", res.Notices[0].Message)

	movs, _ := s.Movements().ListWithProduct(ctx)
	require.Len(t, movs, 1)
	assert.Equal(t, "b", movs[0].ProductID)

	// envios_filiais caen en cascada con el produto
	shipments, _ := s.Shipments().List(ctx)
	require.Len(t, shipments, 1)
	assert.Equal(t, "b", shipments[0].ProductID)

	_, err = uc.GetByID(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Delete(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
