package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/application/view"
)

// MovementHandler maneja movimentações y el formulario asociado (protegido).
type MovementHandler struct {
	uc       *inventory.RegisterMovementUseCase
	renderer *view.Renderer
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase, renderer *view.Renderer) *MovementHandler {
	return &MovementHandler{uc: uc, renderer: renderer}
}

// Register godoc
// @Summary      Registrar movimentação de estoque
// @Description  destination: "" local, "VAN", "AGRICOPEL" (Matriz) ou id da filial.
// @Description  Falhas de notificação ou de envio chegam como notices de nível error.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimentação"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.RegisterMovementFromRequest(c.Context(), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:          res.MovementID,
		NewQuantity: res.NewQuantity,
		Notices:     res.Notices,
	})
}

// Recent godoc
// @Summary      Movimentações recentes (20)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementRow
// @Router       /api/movements [get]
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	return c.JSON(h.renderer.RecentMovements())
}

// History godoc
// @Summary      Histórico completo de movimentações
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementRow
// @Router       /api/movements/history [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	return c.JSON(h.renderer.HistoryRows())
}

// Form godoc
// @Summary      Opções do formulário de movimentação
// @Tags         forms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementFormResponse
// @Router       /api/forms/movement [get]
func (h *MovementHandler) Form(c *fiber.Ctx) error {
	return c.JSON(h.renderer.MovementForm())
}
