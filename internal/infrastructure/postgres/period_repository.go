package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var _ repository.PeriodRepository = (*PeriodRepo)(nil)

// PeriodRepo implementación del puerto PeriodRepository sobre PostgreSQL (usable con pool o tx).
type PeriodRepo struct {
	q Querier
}

// NewPeriodRepository construye el adaptador de meses. Pasar pool o tx (Querier).
func NewPeriodRepository(q Querier) *PeriodRepo {
	return &PeriodRepo{q: q}
}

// Ensure inserta el mes si no existe; idempotente.
func (r *PeriodRepo) Ensure(ctx context.Context, ym string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO months (ym) VALUES ($1) ON CONFLICT (ym) DO NOTHING`, ym)
	if err != nil {
		return fmt.Errorf("ensure month: %w", err)
	}
	return nil
}

// List devuelve los meses en orden descendente.
func (r *PeriodRepo) List(ctx context.Context) ([]entity.Period, error) {
	rows, err := r.q.Query(ctx, `SELECT ym FROM months ORDER BY ym DESC`)
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	defer rows.Close()
	var list []entity.Period
	for rows.Next() {
		var p entity.Period
		if err := rows.Scan(&p.YM); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Exists indica si el mes está registrado.
func (r *PeriodRepo) Exists(ctx context.Context, ym string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM months WHERE ym = $1)`, ym).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("month exists: %w", err)
	}
	return exists, nil
}
