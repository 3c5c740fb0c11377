package repository

import (
	"context"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para las ventas (DIP).
// A diferencia del budget, las ventas se anexan: no hay clave natural única
// y cada importación agrega filas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.SaleEntry) error
	CreateBatch(ctx context.Context, sales []entity.SaleEntry) error
	ListByMonth(ctx context.Context, ym string) ([]entity.SaleEntry, error)
	DeleteByMonth(ctx context.Context, ym string) error
}
