package repository

import (
	"context"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// BudgetRepository define el puerto de persistencia para las entradas de
// budget mensual (DIP).
type BudgetRepository interface {
	// Upsert inserta o reemplaza la entrada con la misma clave natural
	// (ym, agent_id, product_id). Las reimportaciones son idempotentes.
	// Devuelve true si la fila fue insertada, false si se actualizó una existente.
	Upsert(ctx context.Context, entry *entity.BudgetEntry) (created bool, err error)
	ListByMonth(ctx context.Context, ym string) ([]entity.BudgetEntry, error)
	DeleteByMonth(ctx context.Context, ym string) error
}
