// Package commission resuelve la tasa de comisión aplicable a partir de los
// tarifarios escalonados con vigencia temporal.
//
// Política de errores: este motor NUNCA falla. Datos de tarifario ausentes o
// malformados (solapes, huecos entre tramos, sin tramo abierto) degradan a
// tasa 0 — el dashboard siempre debe renderizar. La validación de tramos
// ocurre en el flujo de autoría (application/usecase), antes de persistir.
package commission

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// ActiveSchedule selecciona el tarifario vigente en asOf.
//
// Vigente: ValidFrom <= asOf y (ValidTo nil o ValidTo >= asOf). Si hay más de
// uno vigente (los solapes no están prohibidos en el almacén), gana el de
// ValidFrom más reciente: la regla introducida más tarde prevalece. La
// selección es explícita y determinista; nunca se confía en el orden en que
// el repositorio devolvió las filas.
//
// Devuelve nil si ningún tarifario está vigente.
func ActiveSchedule(schedules []entity.CommissionSchedule, asOf time.Time) *entity.CommissionSchedule {
	var selected *entity.CommissionSchedule
	for i := range schedules {
		s := &schedules[i]
		if !s.ActiveAt(asOf) {
			continue
		}
		if selected == nil || s.ValidFrom.After(selected.ValidFrom) {
			selected = s
		}
	}
	return selected
}

// TierRate busca el tramo que contiene avgPrice y devuelve su tasa.
//
// Un tramo aplica si avgPrice >= MinAvgPrice y (MaxAvgPrice nil o
// avgPrice < MaxAvgPrice): mínimo inclusivo, máximo exclusivo. Con tramos
// bien formados (contiguos, ascendentes, último abierto) exactamente uno
// aplica para cualquier avgPrice >= 0; si ninguno aplica (datos malformados)
// la tasa es 0.
func TierRate(tiers []entity.Tier, avgPrice decimal.Decimal) decimal.Decimal {
	for _, t := range tiers {
		if avgPrice.LessThan(t.MinAvgPrice) {
			continue
		}
		if t.MaxAvgPrice == nil || avgPrice.LessThan(*t.MaxAvgPrice) {
			return t.Rate
		}
	}
	return decimal.Zero
}

// ResolveRate combina ambos pasos: tarifario vigente en asOf y tramo por
// precio medio. Sin tarifario vigente la tasa es 0 y no se consulta ningún
// tramo. avgPrice debe ser >= 0 (se calcula como importe/cantidad sobre
// sumas no negativas).
func ResolveRate(schedules []entity.CommissionSchedule, asOf time.Time, avgPrice decimal.Decimal) decimal.Decimal {
	s := ActiveSchedule(schedules, asOf)
	if s == nil {
		return decimal.Zero
	}
	return TierRate(s.Tiers, avgPrice)
}
