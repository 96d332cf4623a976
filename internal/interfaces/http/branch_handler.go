package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/inventory"
)

// BranchHandler filiais y envios_filiais (protegido).
type BranchHandler struct {
	shipments *inventory.ShipmentUseCase
	movements *inventory.RegisterMovementUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(shipments *inventory.ShipmentUseCase, movements *inventory.RegisterMovementUseCase) *BranchHandler {
	return &BranchHandler{shipments: shipments, movements: movements}
}

// List godoc
// @Summary      Listar filiais (Matriz primeiro)
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.shipments.ListBranches())
}

// ListShipments godoc
// @Summary      Envios de uma filial
// @Description  id "AGRICOPEL" seleciona a Matriz (envios com filial nula).
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da filial ou AGRICOPEL"
// @Success      200  {object}  dto.ShipmentListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/shipments [get]
func (h *BranchHandler) ListShipments(c *fiber.Ctx) error {
	out, err := h.shipments.ListShipments(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterShipment godoc
// @Summary      Registrar envio manual para a filial
// @Description  Não altera a quantidade do produto.
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da filial ou AGRICOPEL"
// @Param        body  body  dto.RegisterShipmentRequest  true  "Produto e quantidade"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/shipments [post]
func (h *BranchHandler) RegisterShipment(c *fiber.Ctx) error {
	var in dto.RegisterShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.RegisterShipment(c.Context(), inventory.ShipmentInputDTO{
		Target:    c.Params("id"),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
