package dto

import "time"

// CreateAgentRequest alta de agente comercial.
type CreateAgentRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
	Area string `json:"area"`
}

// UpdateAgentRequest actualización parcial; los campos nil no se tocan.
type UpdateAgentRequest struct {
	Name     *string `json:"name"`
	Area     *string `json:"area"`
	IsActive *bool   `json:"is_active"`
}

// AgentResponse representación de un agente en respuestas.
type AgentResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Area      string    `json:"area"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgentListResponse listado paginado de agentes.
type AgentListResponse struct {
	Items []AgentResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
