package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/report"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testSchedules() []entity.CommissionSchedule {
	return []entity.CommissionSchedule{
		{
			ID:        "sch-1",
			ValidFrom: date("2024-01-01"),
			Currency:  "EUR",
			Tiers: []entity.Tier{
				{MinAvgPrice: dec("0"), MaxAvgPrice: decPtr("50"), Rate: dec("0.015")},
				{MinAvgPrice: dec("50"), MaxAvgPrice: decPtr("100"), Rate: dec("0.020")},
				{MinAvgPrice: dec("100"), MaxAvgPrice: decPtr("150"), Rate: dec("0.025")},
				{MinAvgPrice: dec("150"), MaxAvgPrice: nil, Rate: dec("0.030")},
			},
		},
	}
}

// Escenario de referencia de extremo a extremo: budget 1000 con venta de 8
// unidades por 960. avgPrice 120 cae en [100,150) → 2.5%; comisión 24;
// cumplimiento 96%; desviación -40.
func TestAggregateByAgent_EscenarioDeReferencia(t *testing.T) {
	budgets := []entity.BudgetEntry{budget("2024-03", "ag-1", "pr-1", "10", "1000")}
	sales := []entity.SaleEntry{sale("2024-03", "ag-1", "pr-1", "8", "960")}

	rows := report.AggregateByAgent(budgets, sales, testAgents(), testSchedules(), date("2024-03-01"))

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "ag-1", r.AgentID)
	assert.Equal(t, "Rossi", r.AgentName)
	assert.True(t, dec("120").Equal(r.AvgPrice), "avgPrice = 960/8")
	assert.True(t, dec("0.025").Equal(r.Rate))
	assert.True(t, dec("24").Equal(r.Commission), "comisión = 960 × 0.025")
	assert.True(t, dec("96").Equal(r.TargetPct), "cumplimiento = 960/1000 × 100")
	assert.True(t, dec("-40").Equal(r.Deviation))
}

func TestAggregateByAgent_UnaFilaPorAgente(t *testing.T) {
	budgets := []entity.BudgetEntry{
		budget("2024-03", "ag-1", "pr-1", "10", "600"),
		budget("2024-03", "ag-1", "pr-2", "4", "400"),
	}
	sales := []entity.SaleEntry{
		sale("2024-03", "ag-1", "pr-1", "5", "500"),
		sale("2024-03", "ag-1", "pr-2", "3", "220"),
	}

	rows := report.AggregateByAgent(budgets, sales, testAgents(), testSchedules(), date("2024-03-01"))

	require.Len(t, rows, 1, "varias entradas del mismo agente colapsan en una fila")
	assert.True(t, dec("1000").Equal(rows[0].BudgetAmount))
	assert.True(t, dec("720").Equal(rows[0].SalesAmount))
	assert.True(t, dec("8").Equal(rows[0].SalesQty))
}

// Un agente con ventas pero sin budget (y al revés) también produce fila,
// con la suma ausente en 0.
func TestAggregateByAgent_AgentesSoloEnUnaColeccion(t *testing.T) {
	budgets := []entity.BudgetEntry{budget("2024-03", "ag-1", "pr-1", "10", "1000")}
	sales := []entity.SaleEntry{sale("2024-03", "ag-2", "pr-1", "4", "400")}

	rows := report.AggregateByAgent(budgets, sales, testAgents(), testSchedules(), date("2024-03-01"))

	require.Len(t, rows, 2)
	byID := make(map[string]report.AgentPerformance)
	for _, r := range rows {
		byID[r.AgentID] = r
	}
	assert.True(t, byID["ag-1"].SalesAmount.IsZero(), "solo budget: ventas en 0")
	assert.True(t, byID["ag-2"].BudgetAmount.IsZero(), "solo ventas: budget en 0")
}

func TestAggregateByAgent_DenominadoresEnCero(t *testing.T) {
	// Sin ventas: salesQty = 0 y el budget queda sin cumplimiento que derive
	// de una división.
	budgets := []entity.BudgetEntry{budget("2024-03", "ag-1", "pr-1", "10", "1000")}

	rows := report.AggregateByAgent(budgets, nil, testAgents(), testSchedules(), date("2024-03-01"))

	require.Len(t, rows, 1)
	r := rows[0]
	assert.True(t, r.AvgPrice.IsZero(), "salesQty = 0 → avgPrice 0, no panic")
	assert.True(t, r.TargetPct.IsZero())
	assert.True(t, r.Commission.IsZero())
	assert.True(t, dec("-1000").Equal(r.Deviation))

	// Sin budget: budgetAmount = 0 → targetPct 0.
	sales := []entity.SaleEntry{sale("2024-03", "ag-1", "pr-1", "4", "400")}
	rows = report.AggregateByAgent(nil, sales, testAgents(), testSchedules(), date("2024-03-01"))

	require.Len(t, rows, 1)
	assert.True(t, rows[0].TargetPct.IsZero(), "budgetAmount = 0 → targetPct 0")
}

func TestAggregateByAgent_OrdenDescendentePorVentas(t *testing.T) {
	agents := []entity.Agent{
		{ID: "ag-1", Name: "Rossi"},
		{ID: "ag-2", Name: "Bianchi"},
		{ID: "ag-3", Name: "Verdi"},
	}
	sales := []entity.SaleEntry{
		sale("2024-03", "ag-1", "pr-1", "1", "100"),
		sale("2024-03", "ag-2", "pr-1", "5", "500"),
		sale("2024-03", "ag-3", "pr-1", "3", "300"),
	}

	rows := report.AggregateByAgent(nil, sales, agents, testSchedules(), date("2024-03-01"))

	require.Len(t, rows, 3)
	assert.True(t, dec("500").Equal(rows[0].SalesAmount))
	assert.True(t, dec("300").Equal(rows[1].SalesAmount))
	assert.True(t, dec("100").Equal(rows[2].SalesAmount))
}

// Mismas entradas, misma salida (incluido el orden): la agregación no depende
// del orden de iteración de mapas.
func TestAggregateByAgent_Determinista(t *testing.T) {
	budgets := []entity.BudgetEntry{
		budget("2024-03", "ag-1", "pr-1", "10", "1000"),
		budget("2024-03", "ag-2", "pr-1", "10", "1000"),
	}
	sales := []entity.SaleEntry{
		sale("2024-03", "ag-1", "pr-1", "5", "500"),
		sale("2024-03", "ag-2", "pr-1", "5", "500"),
	}

	first := report.AggregateByAgent(budgets, sales, testAgents(), testSchedules(), date("2024-03-01"))
	for i := 0; i < 10; i++ {
		again := report.AggregateByAgent(budgets, sales, testAgents(), testSchedules(), date("2024-03-01"))
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].AgentID, again[j].AgentID, "iteración %d, fila %d", i, j)
		}
	}
}

func TestAggregateByAgent_SinTarifarioComisionCero(t *testing.T) {
	sales := []entity.SaleEntry{sale("2024-03", "ag-1", "pr-1", "8", "960")}

	rows := report.AggregateByAgent(nil, sales, testAgents(), nil, date("2024-03-01"))

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Rate.IsZero(), "sin tarifario la fila sale con tasa 0, nunca error")
	assert.True(t, rows[0].Commission.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Detalle agente×producto
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregateByAgentProduct_FilaPorEntradaDeBudget(t *testing.T) {
	budgets := []entity.BudgetEntry{
		budget("2024-03", "ag-1", "pr-1", "10", "1000"),
		budget("2024-03", "ag-1", "pr-2", "4", "400"),
	}
	sales := []entity.SaleEntry{
		sale("2024-03", "ag-1", "pr-1", "8", "960"),
	}
	products := []entity.Product{
		{ID: "pr-1", Code: "P001", Name: "Filtro aire"},
		{ID: "pr-2", Code: "P002", Name: "Aceite 5W30"},
	}

	rows := report.AggregateByAgentProduct(budgets, sales, testAgents(), products)

	require.Len(t, rows, 2)
	assert.Equal(t, "Filtro aire", rows[0].ProductName)
	assert.True(t, dec("120").Equal(rows[0].AvgPrice))
	assert.True(t, dec("96").Equal(rows[0].TargetPct))
	assert.True(t, rows[1].SalesAmount.IsZero(), "budget sin venta: métricas de venta en 0")
	assert.True(t, dec("-400").Equal(rows[1].Deviation))
}

func TestAggregateByAgentProduct_VentaSinBudgetNoProduceFila(t *testing.T) {
	sales := []entity.SaleEntry{sale("2024-03", "ag-1", "pr-9", "2", "200")}

	rows := report.AggregateByAgentProduct(nil, sales, testAgents(), nil)

	assert.Empty(t, rows, "el detalle parte del budget; la venta huérfana no aparece")
}
