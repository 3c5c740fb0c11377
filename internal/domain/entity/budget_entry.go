package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetEntry es el objetivo planificado para (periodo, agente, producto).
// La unicidad de esa terna la garantiza el upsert en el repositorio; el
// modelo en memoria no la impone.
type BudgetEntry struct {
	ID        string
	YM        string // periodo YYYY-MM
	AgentID   string
	ProductID string
	Qty       decimal.Decimal
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
