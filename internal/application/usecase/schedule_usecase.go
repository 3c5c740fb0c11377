package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var one = decimal.NewFromInt(1)

// ScheduleUseCase autoría de tarifarios de comisión. La validación de tramos
// vive aquí, en la puerta de entrada: el motor de resolución asume que lo que
// hay en el almacén pasó por este filtro (y aun así degrada a 0 si no).
type ScheduleUseCase struct {
	repo repository.ScheduleRepository
}

// NewScheduleUseCase construye el caso de uso.
func NewScheduleUseCase(repo repository.ScheduleRepository) *ScheduleUseCase {
	return &ScheduleUseCase{repo: repo}
}

// Create valida y persiste un tarifario nuevo.
func (uc *ScheduleUseCase) Create(ctx context.Context, in dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	validFrom, err := time.Parse("2006-01-02", in.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: valid_from debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	var validTo *time.Time
	if in.ValidTo != "" {
		t, err := time.Parse("2006-01-02", in.ValidTo)
		if err != nil {
			return nil, fmt.Errorf("%w: valid_to debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		if t.Before(validFrom) {
			return nil, fmt.Errorf("%w: valid_to anterior a valid_from", domain.ErrInvalidPeriod)
		}
		validTo = &t
	}

	tiers := toTiers(in.Tiers)
	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}
	schedule := &entity.CommissionSchedule{
		ID:        uuid.New().String(),
		ValidFrom: validFrom,
		ValidTo:   validTo,
		Currency:  currency,
		Tiers:     tiers,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

// GetByID obtiene un tarifario por ID.
func (uc *ScheduleUseCase) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, nil
	}
	return toScheduleResponse(schedule), nil
}

// List devuelve todos los tarifarios.
func (uc *ScheduleUseCase) List(ctx context.Context) (*dto.ScheduleListResponse, error) {
	schedules, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		items = append(items, *toScheduleResponse(&schedules[i]))
	}
	return &dto.ScheduleListResponse{Items: items}, nil
}

// Delete elimina un tarifario.
func (uc *ScheduleUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ValidateTiers comprueba que los tramos forman una escalera bien formada:
// no vacía, mínimos no negativos y estrictamente crecientes, cada máximo
// igual al mínimo del tramo siguiente (sin huecos ni solapes), tasas en
// [0, 1] y exactamente el último tramo abierto (max nil).
func ValidateTiers(tiers []entity.Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: se requiere al menos un tramo", domain.ErrInvalidTiers)
	}
	for i, t := range tiers {
		if t.MinAvgPrice.IsNegative() {
			return fmt.Errorf("%w: tramo %d con mínimo negativo", domain.ErrInvalidTiers, i)
		}
		if t.Rate.IsNegative() || t.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: tramo %d con tasa fuera de [0, 1]", domain.ErrInvalidTiers, i)
		}
		last := i == len(tiers)-1
		if last {
			if t.MaxAvgPrice != nil {
				return fmt.Errorf("%w: el último tramo debe ser abierto", domain.ErrInvalidTiers)
			}
			continue
		}
		if t.MaxAvgPrice == nil {
			return fmt.Errorf("%w: solo el último tramo puede ser abierto", domain.ErrInvalidTiers)
		}
		if !t.MaxAvgPrice.GreaterThan(t.MinAvgPrice) {
			return fmt.Errorf("%w: tramo %d con máximo <= mínimo", domain.ErrInvalidTiers, i)
		}
		if !tiers[i+1].MinAvgPrice.Equal(*t.MaxAvgPrice) {
			return fmt.Errorf("%w: hueco o solape entre los tramos %d y %d", domain.ErrInvalidTiers, i, i+1)
		}
	}
	return nil
}

func toTiers(in []dto.TierDTO) []entity.Tier {
	tiers := make([]entity.Tier, 0, len(in))
	for _, t := range in {
		tiers = append(tiers, entity.Tier{
			MinAvgPrice: t.MinAvgPrice,
			MaxAvgPrice: t.MaxAvgPrice,
			Rate:        t.Rate,
		})
	}
	return tiers
}

func toScheduleResponse(s *entity.CommissionSchedule) *dto.ScheduleResponse {
	tiers := make([]dto.TierDTO, 0, len(s.Tiers))
	for _, t := range s.Tiers {
		tiers = append(tiers, dto.TierDTO{
			MinAvgPrice: t.MinAvgPrice,
			MaxAvgPrice: t.MaxAvgPrice,
			Rate:        t.Rate,
		})
	}
	var validTo *string
	if s.ValidTo != nil {
		v := s.ValidTo.Format("2006-01-02")
		validTo = &v
	}
	return &dto.ScheduleResponse{
		ID:        s.ID,
		ValidFrom: s.ValidFrom.Format("2006-01-02"),
		ValidTo:   validTo,
		Currency:  s.Currency,
		Tiers:     tiers,
		CreatedAt: s.CreatedAt,
	}
}
