package repository

import (
	"context"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// KPIRepository define el puerto de persistencia para los snapshots de KPI
// importados en crudo (DIP).
type KPIRepository interface {
	Create(ctx context.Context, snapshot *entity.KPISnapshot) error
	ListByPeriod(ctx context.Context, period string) ([]entity.KPISnapshot, error)
}
