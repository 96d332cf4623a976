package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/application/view"
)

// DashboardHandler indicadores, widgets y recarga del snapshot (protegido).
type DashboardHandler struct {
	renderer  *view.Renderer
	refresher inventory.Refresher
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(renderer *view.Renderer, refresher inventory.Refresher) *DashboardHandler {
	return &DashboardHandler{renderer: renderer, refresher: refresher}
}

// Dashboard godoc
// @Summary      Indicadores e widgets do dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.renderer.Dashboard())
}

// State godoc
// @Summary      Indicadores do snapshot carregado
// @Tags         state
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsDTO
// @Router       /api/state [get]
func (h *DashboardHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.renderer.Stats())
}

// Reload godoc
// @Summary      Recarregar produtos, movimentações, filiais e envios
// @Description  Se falhar, o snapshot anterior continua valendo.
// @Tags         state
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/state/reload [post]
func (h *DashboardHandler) Reload(c *fiber.Ctx) error {
	if err := h.refresher.Reload(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.renderer.Stats())
}
