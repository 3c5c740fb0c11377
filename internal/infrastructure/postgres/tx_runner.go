package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var _ usecase.ImportTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunImport inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Una importación CSV entra completa o no entra.
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	agentRepo repository.AgentRepository,
	productRepo repository.ProductRepository,
	periodRepo repository.PeriodRepository,
	budgetRepo repository.BudgetRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	agentRepo := NewAgentRepository(tx)
	productRepo := NewProductRepository(tx)
	periodRepo := NewPeriodRepository(tx)
	budgetRepo := NewBudgetRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(agentRepo, productRepo, periodRepo, budgetRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
