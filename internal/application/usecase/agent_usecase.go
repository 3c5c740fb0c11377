package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

// AgentUseCase casos de uso CRUD para agentes comerciales.
type AgentUseCase struct {
	repo repository.AgentRepository
}

// NewAgentUseCase construye el caso de uso.
func NewAgentUseCase(repo repository.AgentRepository) *AgentUseCase {
	return &AgentUseCase{repo: repo}
}

// Create crea un agente. El código debe ser único.
func (uc *AgentUseCase) Create(ctx context.Context, in dto.CreateAgentRequest) (*dto.AgentResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(ctx, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	agent := &entity.Agent{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Area:      in.Area,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, agent); err != nil {
		return nil, err
	}
	return toAgentResponse(agent), nil
}

// GetByID obtiene un agente por ID.
func (uc *AgentUseCase) GetByID(ctx context.Context, id string) (*dto.AgentResponse, error) {
	agent, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, nil
	}
	return toAgentResponse(agent), nil
}

// Update actualiza un agente. El código no se modifica: es la clave con la
// que matchean las importaciones CSV.
func (uc *AgentUseCase) Update(ctx context.Context, id string, in dto.UpdateAgentRequest) (*dto.AgentResponse, error) {
	agent, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, nil
	}
	if in.Name != nil {
		agent.Name = *in.Name
	}
	if in.Area != nil {
		agent.Area = *in.Area
	}
	if in.IsActive != nil {
		agent.IsActive = *in.IsActive
	}
	agent.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, agent); err != nil {
		return nil, err
	}
	return toAgentResponse(agent), nil
}

// List lista agentes con paginación.
func (uc *AgentUseCase) List(ctx context.Context, limit, offset int) (*dto.AgentListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AgentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAgentResponse(a))
	}
	return &dto.AgentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un agente.
func (uc *AgentUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toAgentResponse(a *entity.Agent) *dto.AgentResponse {
	return &dto.AgentResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Area:      a.Area,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
