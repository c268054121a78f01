package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// ReportHandler expone reportes financieros y el resumen del dashboard.
type ReportHandler struct {
	reportUC    *usecase.ReportUseCase
	dashboardUC *usecase.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *usecase.ReportUseCase, dashboardUC *usecase.DashboardUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, dashboardUC: dashboardUC}
}

// GetReport godoc
// @Summary      Reporte financiero (hoy / semana / mes + productos más y menos vendidos)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ReportResponse
// @Router       /api/reports [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	out, err := h.reportUC.GetReport(c.UserContext(), GetSession(c).StoreID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetDashboard godoc
// @Summary      Resumen del día (ventas, compras, gastos, utilidad y stock bajo)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.GetSummary(c.UserContext(), GetSession(c).StoreID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
