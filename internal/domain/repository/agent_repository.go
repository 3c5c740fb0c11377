package repository

import (
	"context"

	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// AgentRepository define el puerto de persistencia para Agent (DIP).
type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	GetByID(ctx context.Context, id string) (*entity.Agent, error)
	GetByCode(ctx context.Context, code string) (*entity.Agent, error)
	Update(ctx context.Context, agent *entity.Agent) error
	List(ctx context.Context, limit, offset int) ([]*entity.Agent, error)
	// ListAll devuelve la referencia completa de agentes, sin paginar.
	// El dashboard la necesita entera para resolver zonas y nombres.
	ListAll(ctx context.Context) ([]entity.Agent, error)
	Delete(ctx context.Context, id string) error
}
