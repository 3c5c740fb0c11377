package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo implementación del puerto BudgetRepository sobre PostgreSQL (usable con pool o tx).
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador de budgets. Pasar pool o tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

// Upsert inserta o reemplaza por la clave natural (ym, agent_id, product_id).
// El truco xmax = 0 distingue insert de update sin segunda consulta.
func (r *BudgetRepo) Upsert(ctx context.Context, entry *entity.BudgetEntry) (bool, error) {
	query := `
		INSERT INTO budgets (id, ym, agent_id, product_id, qty, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ym, agent_id, product_id)
		DO UPDATE SET qty = EXCLUDED.qty, amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var created bool
	err := r.q.QueryRow(ctx, query,
		entry.ID, entry.YM, entry.AgentID, entry.ProductID,
		entry.Qty, entry.Amount, entry.CreatedAt, entry.UpdatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert budget: %w", err)
	}
	return created, nil
}

// ListByMonth devuelve todas las entradas de budget del mes.
func (r *BudgetRepo) ListByMonth(ctx context.Context, ym string) ([]entity.BudgetEntry, error) {
	query := `
		SELECT id, ym, agent_id, product_id, qty, amount, created_at, updated_at
		FROM budgets WHERE ym = $1`
	rows, err := r.q.Query(ctx, query, ym)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	var list []entity.BudgetEntry
	for rows.Next() {
		var b entity.BudgetEntry
		if err := rows.Scan(&b.ID, &b.YM, &b.AgentID, &b.ProductID,
			&b.Qty, &b.Amount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// DeleteByMonth elimina todas las entradas del mes.
func (r *BudgetRepo) DeleteByMonth(ctx context.Context, ym string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM budgets WHERE ym = $1`, ym)
	if err != nil {
		return fmt.Errorf("delete budgets: %w", err)
	}
	return nil
}
