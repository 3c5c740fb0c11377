package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
)

// DashboardHandler maneja las vistas agregadas y el export (protegido).
type DashboardHandler struct {
	uc       *usecase.DashboardUseCase
	periodUC *usecase.PeriodUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, periodUC *usecase.PeriodUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, periodUC: periodUC}
}

// dashboardRequest arma el DTO de filtros desde la query string. Las listas
// van separadas por comas: ?agent_ids=a,b&area_ids=norte.
func dashboardRequest(c *fiber.Ctx) dto.DashboardRequest {
	return dto.DashboardRequest{
		Month:      c.Query("month"),
		AgentIDs:   splitQuery(c.Query("agent_ids")),
		AreaIDs:    splitQuery(c.Query("area_ids")),
		ProductIDs: splitQuery(c.Query("product_ids")),
	}
}

func splitQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Summary godoc
// @Summary      Dashboard por agente
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month        query  string  true   "Mes YYYY-MM"
// @Param        agent_ids    query  string  false  "IDs de agente separados por coma"
// @Param        area_ids     query  string  false  "Zonas separadas por coma"
// @Param        product_ids  query  string  false  "IDs de producto separados por coma"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), dashboardRequest(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser YYYY-MM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle agente×producto
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month        query  string  true   "Mes YYYY-MM"
// @Param        agent_ids    query  string  false  "IDs de agente separados por coma"
// @Param        area_ids     query  string  false  "Zonas separadas por coma"
// @Param        product_ids  query  string  false  "IDs de producto separados por coma"
// @Success      200  {object}  dto.DashboardDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/detail [get]
func (h *DashboardHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.UserContext(), dashboardRequest(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser YYYY-MM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar dashboard a CSV
// @Tags         dashboard
// @Security     Bearer
// @Produce      text/csv
// @Param        month        query  string  true   "Mes YYYY-MM"
// @Param        agent_ids    query  string  false  "IDs de agente separados por coma"
// @Param        area_ids     query  string  false  "Zonas separadas por coma"
// @Param        product_ids  query  string  false  "IDs de producto separados por coma"
// @Success      200  {string}  string  "CSV"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/export [get]
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	content, filename, err := h.uc.ExportCSV(c.UserContext(), dashboardRequest(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser YYYY-MM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

// Months godoc
// @Summary      Meses disponibles
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PeriodListResponse
// @Router       /api/months [get]
func (h *DashboardHandler) Months(c *fiber.Ctx) error {
	out, err := h.periodUC.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
