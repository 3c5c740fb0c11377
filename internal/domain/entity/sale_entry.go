package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleEntry es una venta realizada. A diferencia de BudgetEntry puede haber
// varias filas para la misma terna (periodo, agente, producto): el agregador
// siempre suma, nunca asume correspondencia 1:1 con el budget.
type SaleEntry struct {
	ID          string
	YM          string // periodo YYYY-MM
	AgentID     string
	ProductID   string
	Qty         decimal.Decimal
	Amount      decimal.Decimal
	Source      string // opcional: origen del dato (import CSV, ERP, etc.)
	ExternalRef string // opcional: referencia del sistema origen
	CreatedAt   time.Time
}
