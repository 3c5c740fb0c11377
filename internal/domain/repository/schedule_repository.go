package repository

import (
	"context"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// ScheduleRepository define el puerto de persistencia para los tarifarios de
// comisión (DIP). El almacén no prohíbe solapes de vigencia: el desempate es
// responsabilidad del motor de resolución, no del repositorio.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.CommissionSchedule) error
	GetByID(ctx context.Context, id string) (*entity.CommissionSchedule, error)
	// ListAll devuelve todos los tarifarios; el motor selecciona el vigente.
	ListAll(ctx context.Context) ([]entity.CommissionSchedule, error)
	Update(ctx context.Context, schedule *entity.CommissionSchedule) error
	Delete(ctx context.Context, id string) error
}
