package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	domaininv "github.com/jhoicas/estoque-ti/internal/domain/inventory"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

// ProductUseCase alta, edición y baja de produtos. La quantidade solo cambia por movimentações
// (salvo la inicial del alta) y el código no se edita.
type ProductUseCase struct {
	repo      repository.ProductRepository
	txRunner  inventory.TxRunner
	refresher inventory.Refresher
	log       zerolog.Logger
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	refresher inventory.Refresher,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, refresher: refresher, log: log, now: time.Now}
}

// Create genera el próximo código (mayor código + 1, seis dígitos) y persiste el produto.
// Dos altas simultáneas pueden calcular el mismo código: la segunda recibe ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductActionResponse, error) {
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantidade não pode ser negativa", domain.ErrInvalidInput)
	}
	product := &entity.Product{
		ID:       uuid.New().String(),
		Quantity: in.Quantity,
	}
	if err := applyEditable(product, in.Name, in.MinQuantity, in.Category, in.Description, in.NotifyOnLow, in.NotifyEmail); err != nil {
		return nil, err
	}

	last, err := uc.repo.MaxCode(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("erro ao gerar código do produto")
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	code, err := domaininv.NextProductCode(last)
	if err != nil {
		return nil, err
	}
	product.Code = code
	product.CreatedAt = uc.now()

	if err := uc.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: Já existe um produto com esse código.", domain.ErrDuplicate)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).Msg("produto criado")

	return &dto.ProductActionResponse{
		Product: ToProductResponse(product),
		Notices: uc.withReload(ctx, dto.SuccessNotice("Produto criado com sucesso")),
	}, nil
}

// GetByID obtiene un produto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza los campos editables; código y quantidade se conservan.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductActionResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyEditable(product, in.Name, in.MinQuantity, in.Category, in.Description, in.NotifyOnLow, in.NotifyEmail); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	return &dto.ProductActionResponse{
		Product: ToProductResponse(product),
		Notices: uc.withReload(ctx, dto.SuccessNotice("Produto atualizado com sucesso")),
	}, nil
}

// Delete elimina las movimentações del produto y luego el produto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (*dto.ProductActionResponse, error) {
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := movRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("product_id", id).Msg("erro ao excluir produto")
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	return &dto.ProductActionResponse{
		Notices: uc.withReload(ctx, dto.SuccessNotice("Produto e movimentações excluídos com sucesso")),
	}, nil
}

func (uc *ProductUseCase) withReload(ctx context.Context, notices ...dto.Notice) []dto.Notice {
	if uc.refresher == nil {
		return notices
	}
	if err := uc.refresher.Reload(ctx); err != nil {
		uc.log.Error().Err(err).Msg("falha ao recarregar snapshot")
		notices = append(notices, dto.ErrorNotice("Erro ao carregar dados"))
	}
	return notices
}

func applyEditable(p *entity.Product, name string, minQty int, category, description string, notify bool, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: nome é obrigatório", domain.ErrInvalidInput)
	}
	if minQty < 0 {
		return fmt.Errorf("%w: quantidade mínima não pode ser negativa", domain.ErrInvalidInput)
	}
	p.Name = name
	p.MinQuantity = minQty
	p.Category = strings.TrimSpace(category)
	p.Description = strings.TrimSpace(description)
	p.NotifyOnLow = notify
	p.NotifyEmail = strings.TrimSpace(email)
	return nil
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		Category:    p.Category,
		Description: p.Description,
		NotifyOnLow: p.NotifyOnLow,
		NotifyEmail: p.NotifyEmail,
		CreatedAt:   p.CreatedAt,
	}
}
