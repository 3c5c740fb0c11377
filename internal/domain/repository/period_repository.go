package repository

import (
	"context"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// PeriodRepository define el puerto de persistencia para los meses (YYYY-MM)
// disponibles en el selector del dashboard.
type PeriodRepository interface {
	// Ensure inserta el mes si no existe; idempotente.
	Ensure(ctx context.Context, ym string) error
	// List devuelve los meses en orden descendente (el más reciente primero).
	List(ctx context.Context) ([]entity.Period, error)
	Exists(ctx context.Context, ym string) (bool, error)
}
