package http

import (
	"bytes"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
)

// ImportHandler maneja las importaciones masivas (protegido).
type ImportHandler struct {
	uc *usecase.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *usecase.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// csvBody devuelve el contenido CSV de la petición: el archivo "file" si es
// multipart, o el cuerpo crudo en su defecto.
func csvBody(c *fiber.Ctx) (io.Reader, func(), error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, nil, errors.New("cuerpo vacío")
	}
	return bytes.NewReader(body), func() {}, nil
}

// Budget godoc
// @Summary      Importar budget desde CSV
// @Description  Cabecera ym,agent_code,product_code,qty,amount. Upsert por (ym, agente, producto).
// @Tags         import
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file         formData  file  true   "Archivo CSV"
// @Param        auto_create  query     bool  false  "Crear agentes/productos desconocidos"
// @Success      200  {object}  dto.ImportResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import/budget [post]
func (h *ImportHandler) Budget(c *fiber.Ctx) error {
	r, closeFn, err := csvBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un archivo CSV"})
	}
	defer closeFn()

	opts := dto.ImportOptions{AutoCreate: c.QueryBool("auto_create")}
	out, err := h.uc.ImportBudgetCSV(c.UserContext(), r, opts)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Importar ventas desde CSV
// @Description  Cabecera ym,agent_code,product_code,qty,amount[,source,external_ref]. Las ventas se anexan.
// @Tags         import
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file         formData  file  true   "Archivo CSV"
// @Param        auto_create  query     bool  false  "Crear agentes/productos desconocidos"
// @Success      200  {object}  dto.ImportResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import/sales [post]
func (h *ImportHandler) Sales(c *fiber.Ctx) error {
	r, closeFn, err := csvBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un archivo CSV"})
	}
	defer closeFn()

	opts := dto.ImportOptions{AutoCreate: c.QueryBool("auto_create")}
	out, err := h.uc.ImportSalesCSV(c.UserContext(), r, opts)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// KPI godoc
// @Summary      Cargar snapshot de KPIs externos
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportKPIRequest  true  "Periodo y payload JSON crudo"
// @Success      201   {object}  dto.ImportKPIResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/kpi [post]
func (h *ImportHandler) KPI(c *fiber.Ctx) error {
	var in dto.ImportKPIRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ImportKPI(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPeriod):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period debe ser YYYY-MM"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
