package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/budget-comisiones/internal/domain/commission"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// AgentPerformance es el desempeño agregado de un agente en el mes filtrado.
// Es un derivado efímero: se reconstruye completo en cada pasada y no se
// persiste nunca.
type AgentPerformance struct {
	AgentID      string
	AgentCode    string
	AgentName    string
	Area         string
	BudgetAmount decimal.Decimal
	SalesAmount  decimal.Decimal
	SalesQty     decimal.Decimal
	AvgPrice     decimal.Decimal
	Rate         decimal.Decimal
	Commission   decimal.Decimal
	TargetPct    decimal.Decimal
	Deviation    decimal.Decimal // venta - budget, con signo
}

// AgentProductRow es una fila del detalle agente×producto, a grano de
// entrada de budget individual (no agregada).
type AgentProductRow struct {
	AgentID      string
	AgentName    string
	ProductID    string
	ProductName  string
	BudgetQty    decimal.Decimal
	BudgetAmount decimal.Decimal
	SalesQty     decimal.Decimal
	SalesAmount  decimal.Decimal
	AvgPrice     decimal.Decimal
	TargetPct    decimal.Decimal
	Deviation    decimal.Decimal
}

type accumulator struct {
	agentID      string
	budgetAmount decimal.Decimal
	salesAmount  decimal.Decimal
	salesQty     decimal.Decimal
}

// AggregateByAgent agrupa budgets y ventas por agente y deriva las métricas
// del dashboard. Produce una fila por cada agente presente en cualquiera de
// las dos colecciones: un agente con ventas pero sin budget (o al revés)
// también aparece, con la suma ausente en 0.
//
// Derivadas por fila:
//
//	avgPrice   = salesAmount / salesQty        (0 si salesQty = 0)
//	rate       = tarifario vigente en asOf, tramo por avgPrice
//	commission = salesAmount × rate
//	targetPct  = salesAmount / budgetAmount × 100 (0 si budgetAmount = 0)
//	deviation  = salesAmount − budgetAmount
//
// Los denominadores en cero cortocircuitan a 0, nunca a error. El orden de
// salida es descendente por salesAmount y es parte del contrato: los
// consumidores de top-N (gráfico de los 10 mejores) dependen de él.
func AggregateByAgent(
	budgets []entity.BudgetEntry,
	sales []entity.SaleEntry,
	agents []entity.Agent,
	schedules []entity.CommissionSchedule,
	asOf time.Time,
) []AgentPerformance {
	accs := make(map[string]*accumulator)
	order := make([]string, 0) // ids en orden de primera aparición, para salida estable

	get := func(agentID string) *accumulator {
		acc, ok := accs[agentID]
		if !ok {
			acc = &accumulator{agentID: agentID}
			accs[agentID] = acc
			order = append(order, agentID)
		}
		return acc
	}

	for _, b := range budgets {
		acc := get(b.AgentID)
		acc.budgetAmount = acc.budgetAmount.Add(b.Amount)
	}
	for _, s := range sales {
		acc := get(s.AgentID)
		acc.salesAmount = acc.salesAmount.Add(s.Amount)
		acc.salesQty = acc.salesQty.Add(s.Qty)
	}

	agentByID := make(map[string]entity.Agent, len(agents))
	for _, a := range agents {
		agentByID[a.ID] = a
	}

	rows := make([]AgentPerformance, 0, len(order))
	for _, id := range order {
		acc := accs[id]

		avgPrice := decimal.Zero
		if acc.salesQty.IsPositive() {
			avgPrice = acc.salesAmount.Div(acc.salesQty)
		}
		rate := commission.ResolveRate(schedules, asOf, avgPrice)

		targetPct := decimal.Zero
		if acc.budgetAmount.IsPositive() {
			targetPct = acc.salesAmount.Div(acc.budgetAmount).Mul(hundred)
		}

		agent := agentByID[id] // cero-valor si el agente no está en la referencia
		rows = append(rows, AgentPerformance{
			AgentID:      id,
			AgentCode:    agent.Code,
			AgentName:    agent.Name,
			Area:         agent.Area,
			BudgetAmount: acc.budgetAmount,
			SalesAmount:  acc.salesAmount,
			SalesQty:     acc.salesQty,
			AvgPrice:     avgPrice,
			Rate:         rate,
			Commission:   acc.salesAmount.Mul(rate),
			TargetPct:    targetPct,
			Deviation:    acc.salesAmount.Sub(acc.budgetAmount),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SalesAmount.GreaterThan(rows[j].SalesAmount)
	})
	return rows
}

// AggregateByAgentProduct produce el detalle agente×producto: una fila por
// entrada de budget, cruzada con la primera venta que comparte agente y
// producto (se espera a lo sumo una, pero no se impone). Las métricas se
// derivan al grano de la fila individual, no agregadas.
//
// Limitación de alcance deliberada: una venta sin budget correspondiente no
// aparece en esta vista (sí en AggregateByAgent). Está marcada para revisión
// de producto; no cambiar aquí sin esa decisión.
func AggregateByAgentProduct(
	budgets []entity.BudgetEntry,
	sales []entity.SaleEntry,
	agents []entity.Agent,
	products []entity.Product,
) []AgentProductRow {
	agentByID := make(map[string]entity.Agent, len(agents))
	for _, a := range agents {
		agentByID[a.ID] = a
	}
	productByID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	rows := make([]AgentProductRow, 0, len(budgets))
	for _, b := range budgets {
		salesQty := decimal.Zero
		salesAmount := decimal.Zero
		for _, s := range sales {
			if s.AgentID == b.AgentID && s.ProductID == b.ProductID {
				salesQty = s.Qty
				salesAmount = s.Amount
				break
			}
		}

		avgPrice := decimal.Zero
		if salesQty.IsPositive() {
			avgPrice = salesAmount.Div(salesQty)
		}
		targetPct := decimal.Zero
		if b.Amount.IsPositive() {
			targetPct = salesAmount.Div(b.Amount).Mul(hundred)
		}

		rows = append(rows, AgentProductRow{
			AgentID:      b.AgentID,
			AgentName:    agentByID[b.AgentID].Name,
			ProductID:    b.ProductID,
			ProductName:  productByID[b.ProductID].Name,
			BudgetQty:    b.Qty,
			BudgetAmount: b.Amount,
			SalesQty:     salesQty,
			SalesAmount:  salesAmount,
			AvgPrice:     avgPrice,
			TargetPct:    targetPct,
			Deviation:    salesAmount.Sub(b.Amount),
		})
	}
	return rows
}
