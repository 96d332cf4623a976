package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
)

// ReportHandler relatórios y su exportación (protegido).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Build godoc
// @Summary      Gerar relatório
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "estoque | movimentacoes | categorias | historico"
// @Success      200   {object}  dto.ReportTable
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ReportHandler) Build(c *fiber.Ctx) error {
	out, err := h.uc.Build(c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar relatório
// @Description  O arquivo se chama "<tipo>.<formato>"; no xlsx a planilha leva o nome do tipo.
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Produce      application/pdf
// @Param        type    path   string  true   "estoque | movimentacoes | categorias | historico"
// @Param        format  query  string  false  "xlsx | csv | pdf"  default(xlsx)
// @Success      200     {file}  binary
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/{type}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	file, err := h.uc.Export(c.Params("type"), c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
