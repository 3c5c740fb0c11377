package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const insertSaleQuery = `
	INSERT INTO sales (id, ym, agent_id, product_id, qty, amount, source, external_ref, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create anexa una venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.SaleEntry) error {
	_, err := r.q.Exec(ctx, insertSaleQuery,
		sale.ID, sale.YM, sale.AgentID, sale.ProductID,
		sale.Qty, sale.Amount, sale.Source, sale.ExternalRef, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateBatch anexa un lote de ventas en una sola ida (pgx.Batch).
func (r *SaleRepo) CreateBatch(ctx context.Context, sales []entity.SaleEntry) error {
	if len(sales) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, s := range sales {
		batch.Queue(insertSaleQuery,
			s.ID, s.YM, s.AgentID, s.ProductID,
			s.Qty, s.Amount, s.Source, s.ExternalRef, s.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range sales {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch insert sales: %w", err)
		}
	}
	return nil
}

// ListByMonth devuelve todas las ventas del mes.
func (r *SaleRepo) ListByMonth(ctx context.Context, ym string) ([]entity.SaleEntry, error) {
	query := `
		SELECT id, ym, agent_id, product_id, qty, amount,
		       COALESCE(source, ''), COALESCE(external_ref, ''), created_at
		FROM sales WHERE ym = $1`
	rows, err := r.q.Query(ctx, query, ym)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []entity.SaleEntry
	for rows.Next() {
		var s entity.SaleEntry
		if err := rows.Scan(&s.ID, &s.YM, &s.AgentID, &s.ProductID,
			&s.Qty, &s.Amount, &s.Source, &s.ExternalRef, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// DeleteByMonth elimina todas las ventas del mes.
func (r *SaleRepo) DeleteByMonth(ctx context.Context, ym string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE ym = $1`, ym)
	if err != nil {
		return fmt.Errorf("delete sales: %w", err)
	}
	return nil
}
