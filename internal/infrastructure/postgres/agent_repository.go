package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var _ repository.AgentRepository = (*AgentRepo)(nil)

// AgentRepo implementación del puerto AgentRepository sobre PostgreSQL (usable con pool o tx).
type AgentRepo struct {
	q Querier
}

// NewAgentRepository construye el adaptador de persistencia para agentes. Pasar pool o tx (Querier).
func NewAgentRepository(q Querier) *AgentRepo {
	return &AgentRepo{q: q}
}

const agentColumns = `id, code, name, area, is_active, created_at, updated_at`

// Create persiste un nuevo agente.
func (r *AgentRepo) Create(ctx context.Context, agent *entity.Agent) error {
	query := `
		INSERT INTO agents (id, code, name, area, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		agent.ID, agent.Code, agent.Name, agent.Area, agent.IsActive,
		agent.CreatedAt, agent.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

// GetByID obtiene un agente por ID.
func (r *AgentRepo) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get agent")
}

// GetByCode obtiene un agente por su código (clave de matching en importaciones).
func (r *AgentRepo) GetByCode(ctx context.Context, code string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE code = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, code), "get agent by code")
}

// Update actualiza un agente existente. El código no se toca.
func (r *AgentRepo) Update(ctx context.Context, agent *entity.Agent) error {
	query := `
		UPDATE agents SET name = $2, area = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		agent.ID, agent.Name, agent.Area, agent.IsActive, agent.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update agent: %w", err)
	}
	return nil
}

// List lista agentes con paginación, ordenados por código.
func (r *AgentRepo) List(ctx context.Context, limit, offset int) ([]*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Agent
	for rows.Next() {
		var a entity.Agent
		if err := scanAgent(rows, &a); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListAll devuelve la referencia completa de agentes.
func (r *AgentRepo) ListAll(ctx context.Context) ([]entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all agents: %w", err)
	}
	defer rows.Close()
	var list []entity.Agent
	for rows.Next() {
		var a entity.Agent
		if err := scanAgent(rows, &a); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina un agente por ID.
func (r *AgentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	return nil
}

func (r *AgentRepo) scanOne(row pgx.Row, op string) (*entity.Agent, error) {
	var a entity.Agent
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Area, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func scanAgent(rows pgx.Rows, a *entity.Agent) error {
	return rows.Scan(&a.ID, &a.Code, &a.Name, &a.Area, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
}
