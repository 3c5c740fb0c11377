package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var _ repository.KPIRepository = (*KPIRepo)(nil)

// KPIRepo implementación del puerto KPIRepository sobre PostgreSQL (usable con pool o tx).
type KPIRepo struct {
	q Querier
}

// NewKPIRepository construye el adaptador de snapshots KPI. Pasar pool o tx (Querier).
func NewKPIRepository(q Querier) *KPIRepo {
	return &KPIRepo{q: q}
}

// Create guarda un snapshot en crudo.
func (r *KPIRepo) Create(ctx context.Context, snapshot *entity.KPISnapshot) error {
	query := `
		INSERT INTO appointments_kpi_raw (id, period, source, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		snapshot.ID, snapshot.Period, snapshot.Source, []byte(snapshot.Payload), snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert kpi snapshot: %w", err)
	}
	return nil
}

// ListByPeriod devuelve los snapshots de un periodo, el más reciente primero.
func (r *KPIRepo) ListByPeriod(ctx context.Context, period string) ([]entity.KPISnapshot, error) {
	query := `
		SELECT id, period, source, payload, created_at
		FROM appointments_kpi_raw WHERE period = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("list kpi snapshots: %w", err)
	}
	defer rows.Close()
	var list []entity.KPISnapshot
	for rows.Next() {
		var s entity.KPISnapshot
		var payload []byte
		if err := rows.Scan(&s.ID, &s.Period, &s.Source, &payload, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan kpi snapshot: %w", err)
		}
		s.Payload = payload
		list = append(list, s)
	}
	return list, rows.Err()
}
