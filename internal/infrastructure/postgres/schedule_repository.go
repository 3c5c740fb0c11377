package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
)

var _ repository.ScheduleRepository = (*ScheduleRepo)(nil)

// ScheduleRepo implementación del puerto ScheduleRepository sobre PostgreSQL
// (usable con pool o tx). Los tramos se guardan como JSONB: son un documento
// que viaja junto, no filas que se consulten por separado.
type ScheduleRepo struct {
	q Querier
}

// NewScheduleRepository construye el adaptador de tarifarios. Pasar pool o tx (Querier).
func NewScheduleRepository(q Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

// Create persiste un tarifario nuevo.
func (r *ScheduleRepo) Create(ctx context.Context, schedule *entity.CommissionSchedule) error {
	tiers, err := json.Marshal(schedule.Tiers)
	if err != nil {
		return fmt.Errorf("marshal tiers: %w", err)
	}
	query := `
		INSERT INTO commission_schedules (id, valid_from, valid_to, currency, tiers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(ctx, query,
		schedule.ID, schedule.ValidFrom, schedule.ValidTo, schedule.Currency, tiers, schedule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

// GetByID obtiene un tarifario por ID.
func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (*entity.CommissionSchedule, error) {
	query := `
		SELECT id, valid_from, valid_to, currency, tiers, created_at
		FROM commission_schedules WHERE id = $1`
	var s entity.CommissionSchedule
	var tiers []byte
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ValidFrom, &s.ValidTo, &s.Currency, &tiers, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if err := json.Unmarshal(tiers, &s.Tiers); err != nil {
		return nil, fmt.Errorf("unmarshal tiers: %w", err)
	}
	return &s, nil
}

// ListAll devuelve todos los tarifarios, el más reciente primero.
func (r *ScheduleRepo) ListAll(ctx context.Context) ([]entity.CommissionSchedule, error) {
	query := `
		SELECT id, valid_from, valid_to, currency, tiers, created_at
		FROM commission_schedules ORDER BY valid_from DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()
	var list []entity.CommissionSchedule
	for rows.Next() {
		var s entity.CommissionSchedule
		var tiers []byte
		if err := rows.Scan(&s.ID, &s.ValidFrom, &s.ValidTo, &s.Currency, &tiers, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		if err := json.Unmarshal(tiers, &s.Tiers); err != nil {
			return nil, fmt.Errorf("unmarshal tiers: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update reemplaza vigencia, moneda y tramos de un tarifario.
func (r *ScheduleRepo) Update(ctx context.Context, schedule *entity.CommissionSchedule) error {
	tiers, err := json.Marshal(schedule.Tiers)
	if err != nil {
		return fmt.Errorf("marshal tiers: %w", err)
	}
	query := `
		UPDATE commission_schedules
		SET valid_from = $2, valid_to = $3, currency = $4, tiers = $5
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		schedule.ID, schedule.ValidFrom, schedule.ValidTo, schedule.Currency, tiers,
	)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return nil
}

// Delete elimina un tarifario por ID.
func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM commission_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
