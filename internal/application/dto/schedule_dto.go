package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TierDTO un tramo del tarifario: [min, max) → tasa. Max nil = tramo abierto.
type TierDTO struct {
	MinAvgPrice decimal.Decimal  `json:"min_avg_price"`
	MaxAvgPrice *decimal.Decimal `json:"max_avg_price"`
	Rate        decimal.Decimal  `json:"rate"`
}

// CreateScheduleRequest alta de tarifario de comisión. Las fechas van en
// formato YYYY-MM-DD; ValidTo vacío significa vigencia abierta.
type CreateScheduleRequest struct {
	ValidFrom string    `json:"valid_from" validate:"required"`
	ValidTo   string    `json:"valid_to"`
	Currency  string    `json:"currency"`
	Tiers     []TierDTO `json:"tiers" validate:"required"`
}

// ScheduleResponse representación de un tarifario en respuestas.
type ScheduleResponse struct {
	ID        string    `json:"id"`
	ValidFrom string    `json:"valid_from"`
	ValidTo   *string   `json:"valid_to"`
	Currency  string    `json:"currency"`
	Tiers     []TierDTO `json:"tiers"`
	CreatedAt time.Time `json:"created_at"`
}

// ScheduleListResponse listado completo de tarifarios.
type ScheduleListResponse struct {
	Items []ScheduleResponse `json:"items"`
}
