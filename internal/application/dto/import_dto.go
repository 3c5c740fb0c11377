package dto

import "encoding/json"

// ImportOptions opciones comunes de importación CSV.
type ImportOptions struct {
	// AutoCreate crea agentes/productos ausentes a partir del código del CSV.
	// En false, las filas con códigos desconocidos se saltan y se reportan.
	AutoCreate bool `query:"auto_create"`
}

// ImportResultDTO resumen de una importación CSV.
type ImportResultDTO struct {
	Inserted        int      `json:"inserted"`
	Updated         int      `json:"updated"`
	Skipped         int      `json:"skipped"`
	CreatedAgents   int      `json:"created_agents"`
	CreatedProducts int      `json:"created_products"`
	Errors          []string `json:"errors,omitempty"`
}

// ImportKPIRequest carga de un snapshot de KPIs externos en crudo.
type ImportKPIRequest struct {
	Period  string          `json:"period" validate:"required"`
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

// ImportKPIResponse confirmación de la carga.
type ImportKPIResponse struct {
	ID     string `json:"id"`
	Period string `json:"period"`
}
