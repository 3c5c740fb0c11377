package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
)

// AgentHandler maneja las peticiones HTTP para agentes (protegido).
type AgentHandler struct {
	uc *usecase.AgentUseCase
}

// NewAgentHandler construye el handler.
func NewAgentHandler(uc *usecase.AgentUseCase) *AgentHandler {
	return &AgentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear agente
// @Tags         agents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAgentRequest  true  "Datos del agente"
// @Success      201   {object}  dto.AgentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/agents [post]
func (h *AgentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAgentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código de agente ya existe"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener agente por ID
// @Tags         agents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del agente"
// @Success      200  {object}  dto.AgentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agents/{id} [get]
func (h *AgentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "agente no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar agente
// @Tags         agents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del agente"
// @Param        body  body  dto.UpdateAgentRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AgentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/agents/{id} [put]
func (h *AgentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAgentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "agente no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar agentes
// @Tags         agents
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.AgentListResponse
// @Router       /api/agents [get]
func (h *AgentHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar agente
// @Tags         agents
// @Security     Bearer
// @Param        id  path  string  true  "ID del agente"
// @Success      204
// @Router       /api/agents/{id} [delete]
func (h *AgentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
