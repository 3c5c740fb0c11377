package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs con datos: devuelven colecciones fijas para las lecturas del dashboard.
// ──────────────────────────────────────────────────────────────────────────────

type stubBudgetRepo struct {
	fakeBudgetRepo
	rows []entity.BudgetEntry
}

func (s *stubBudgetRepo) ListByMonth(context.Context, string) ([]entity.BudgetEntry, error) {
	return s.rows, nil
}

type stubSaleRepo struct {
	fakeSaleRepo
}

func (s *stubSaleRepo) ListByMonth(context.Context, string) ([]entity.SaleEntry, error) {
	return s.rows, nil
}

type stubAgentRepo struct {
	fakeAgentRepo
	rows []entity.Agent
}

func (s *stubAgentRepo) ListAll(context.Context) ([]entity.Agent, error) { return s.rows, nil }

type stubProductRepo struct {
	fakeProductRepo
	rows []entity.Product
}

func (s *stubProductRepo) ListAll(context.Context) ([]entity.Product, error) { return s.rows, nil }

type stubScheduleRepo struct {
	rows []entity.CommissionSchedule
}

func (s *stubScheduleRepo) Create(context.Context, *entity.CommissionSchedule) error { return nil }
func (s *stubScheduleRepo) GetByID(context.Context, string) (*entity.CommissionSchedule, error) {
	return nil, nil
}
func (s *stubScheduleRepo) ListAll(context.Context) ([]entity.CommissionSchedule, error) {
	return s.rows, nil
}
func (s *stubScheduleRepo) Update(context.Context, *entity.CommissionSchedule) error { return nil }
func (s *stubScheduleRepo) Delete(context.Context, string) error                     { return nil }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newDashboardFixture(
	budgets []entity.BudgetEntry,
	sales []entity.SaleEntry,
	agents []entity.Agent,
	schedules []entity.CommissionSchedule,
) *usecase.DashboardUseCase {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return usecase.NewDashboardUseCase(
		&stubBudgetRepo{rows: budgets},
		&stubSaleRepo{fakeSaleRepo: fakeSaleRepo{rows: sales}},
		&stubAgentRepo{rows: agents},
		&stubProductRepo{},
		&stubScheduleRepo{rows: schedules},
		log,
	)
}

func dashboardSchedules() []entity.CommissionSchedule {
	return []entity.CommissionSchedule{
		{
			ID:        "sch-1",
			ValidFrom: day("2024-01-01"),
			Currency:  "EUR",
			Tiers: []entity.Tier{
				tier("0", decPtr("50"), "0.015"),
				tier("50", decPtr("100"), "0.020"),
				tier("100", decPtr("150"), "0.025"),
				tier("150", nil, "0.030"),
			},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_EscenarioReferencia(t *testing.T) {
	uc := newDashboardFixture(
		[]entity.BudgetEntry{
			{ID: "b-1", YM: "2024-03", AgentID: "ag-1", ProductID: "pr-1", Qty: dec("10"), Amount: dec("1000")},
		},
		[]entity.SaleEntry{
			{ID: "s-1", YM: "2024-03", AgentID: "ag-1", ProductID: "pr-1", Qty: dec("8"), Amount: dec("960")},
		},
		[]entity.Agent{{ID: "ag-1", Code: "A001", Name: "Rossi", Area: "norte"}},
		dashboardSchedules(),
	)

	out, err := uc.GetSummary(context.Background(), dto.DashboardRequest{Month: "2024-03"})
	require.NoError(t, err)

	require.Len(t, out.Rows, 1)
	row := out.Rows[0]
	assert.Equal(t, "Rossi", row.AgentName)
	assert.True(t, row.AvgPrice.Equal(dec("120")), "960/8")
	assert.True(t, row.Rate.Equal(dec("0.025")), "tramo [100,150)")
	assert.True(t, row.Commission.Equal(dec("24")), "960×0.025")
	assert.True(t, row.TargetPct.Equal(dec("96")))
	assert.True(t, row.Deviation.Equal(dec("-40")))

	assert.True(t, out.TotalBudget.Equal(dec("1000")))
	assert.True(t, out.TotalSales.Equal(dec("960")))
	assert.True(t, out.TotalCommissions.Equal(dec("24")))
	assert.True(t, out.AvgTargetPct.Equal(dec("96")))
	assert.Len(t, out.TopAgents, 1)
}

func TestGetSummary_MesInvalido(t *testing.T) {
	uc := newDashboardFixture(nil, nil, nil, nil)

	_, err := uc.GetSummary(context.Background(), dto.DashboardRequest{Month: "marzo-2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

// Sin tarifario vigente el dashboard responde igual, con comisiones en 0.
func TestGetSummary_SinTarifarioComisionCero(t *testing.T) {
	uc := newDashboardFixture(
		nil,
		[]entity.SaleEntry{
			{ID: "s-1", YM: "2024-03", AgentID: "ag-1", ProductID: "pr-1", Qty: dec("8"), Amount: dec("960")},
		},
		[]entity.Agent{{ID: "ag-1", Code: "A001", Name: "Rossi"}},
		nil,
	)

	out, err := uc.GetSummary(context.Background(), dto.DashboardRequest{Month: "2024-03"})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.True(t, out.Rows[0].Rate.IsZero())
	assert.True(t, out.Rows[0].Commission.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ExportCSV
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_FormatoYNombre(t *testing.T) {
	uc := newDashboardFixture(
		[]entity.BudgetEntry{
			{ID: "b-1", YM: "2024-03", AgentID: "ag-1", ProductID: "pr-1", Qty: dec("10"), Amount: dec("1000")},
		},
		[]entity.SaleEntry{
			{ID: "s-1", YM: "2024-03", AgentID: "ag-1", ProductID: "pr-1", Qty: dec("8"), Amount: dec("960")},
		},
		[]entity.Agent{{ID: "ag-1", Code: "A001", Name: "Rossi", Area: "norte"}},
		dashboardSchedules(),
	)

	content, filename, err := uc.ExportCSV(context.Background(), dto.DashboardRequest{Month: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, "export_agentes_2024-03.csv", filename)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"ym,agent_code,agent_name,area,budget_amount,sales_amount,achievement_pct,avg_price_agent,rate,commission,deviation",
		lines[0])
	// Importes con 2 decimales, tasa con 4.
	assert.Equal(t,
		"2024-03,A001,Rossi,norte,1000.00,960.00,96.00,120.00,0.0250,24.00,-40.00",
		lines[1])
}

func TestExportCSV_MesInvalido(t *testing.T) {
	uc := newDashboardFixture(nil, nil, nil, nil)

	_, _, err := uc.ExportCSV(context.Background(), dto.DashboardRequest{Month: "2024/03"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
