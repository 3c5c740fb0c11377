package usecase

import (
	"context"

	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

// PeriodUseCase gestiona los meses disponibles en el selector del dashboard.
type PeriodUseCase struct {
	repo repository.PeriodRepository
}

// NewPeriodUseCase construye el caso de uso.
func NewPeriodUseCase(repo repository.PeriodRepository) *PeriodUseCase {
	return &PeriodUseCase{repo: repo}
}

// List devuelve los meses disponibles, el más reciente primero.
func (uc *PeriodUseCase) List(ctx context.Context) (*dto.PeriodListResponse, error) {
	periods, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	months := make([]string, 0, len(periods))
	for _, p := range periods {
		months = append(months, p.YM)
	}
	return &dto.PeriodListResponse{Months: months}, nil
}

// Ensure registra un mes si no existe. Valida el formato YYYY-MM.
func (uc *PeriodUseCase) Ensure(ctx context.Context, ym string) error {
	if !entity.ValidYM(ym) {
		return domain.ErrInvalidPeriod
	}
	return uc.repo.Ensure(ctx, ym)
}
