package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alfamart-stock-api/internal/application/report"
)

// ReportHandler expone el reporte de reposición en PDF (protegido).
type ReportHandler struct {
	uc *report.LowStockReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.LowStockReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStockPDF godoc
// @Summary      Reporte de reposición (PDF)
// @Description  PDF con los productos bajo mínimo y su cantidad sugerida de pedido.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/low-stock.pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	data, err := h.uc.GeneratePDF(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	filename := "reposicion-" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
