package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier es un tramo contiguo de precio medio dentro de un tarifario.
// MaxAvgPrice nil marca el tramo abierto final (sin tope superior).
// El intervalo es [MinAvgPrice, MaxAvgPrice): mínimo inclusivo, máximo exclusivo.
type Tier struct {
	MinAvgPrice decimal.Decimal  `json:"min_avg_price"`
	MaxAvgPrice *decimal.Decimal `json:"max_avg_price"`
	Rate        decimal.Decimal  `json:"rate"` // fracción en [0,1], ej: 0.025 = 2.5%
}

// CommissionSchedule es un tarifario de comisiones con vigencia temporal.
// ValidTo nil significa vigencia abierta. El almacenamiento no prohíbe
// solapes ni huecos entre tarifarios: resolverlos es trabajo del resolver,
// no del modelo.
type CommissionSchedule struct {
	ID        string
	ValidFrom time.Time
	ValidTo   *time.Time
	Currency  string
	Tiers     []Tier
	CreatedAt time.Time
}

// ActiveAt indica si el tarifario está vigente en la fecha dada.
func (s CommissionSchedule) ActiveAt(asOf time.Time) bool {
	if s.ValidFrom.After(asOf) {
		return false
	}
	return s.ValidTo == nil || !s.ValidTo.Before(asOf)
}
