package dto

import "github.com/shopspring/decimal"

// DashboardRequest filtros del dashboard. Month es obligatorio (YYYY-MM);
// las listas vacías no restringen su dimensión.
type DashboardRequest struct {
	Month      string   `query:"month" validate:"required"`
	AgentIDs   []string `query:"agent_ids"`
	AreaIDs    []string `query:"area_ids"`
	ProductIDs []string `query:"product_ids"`
}

// AgentPerformanceDTO fila de desempeño por agente.
type AgentPerformanceDTO struct {
	AgentID      string          `json:"agent_id"`
	AgentCode    string          `json:"agent_code"`
	AgentName    string          `json:"agent_name"`
	Area         string          `json:"area"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	SalesAmount  decimal.Decimal `json:"sales_amount"`
	SalesQty     decimal.Decimal `json:"sales_qty"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	Rate         decimal.Decimal `json:"rate"`
	Commission   decimal.Decimal `json:"commission"`
	TargetPct    decimal.Decimal `json:"target_pct"`
	Deviation    decimal.Decimal `json:"deviation"`
}

// DashboardResponse respuesta de GET /api/dashboard.
// Rows viene ordenado descendente por ventas; TopAgents son las 10 primeras
// filas (el gráfico del frontend las consume tal cual).
type DashboardResponse struct {
	Month            string                `json:"month"`
	TotalBudget      decimal.Decimal       `json:"total_budget"`
	TotalSales       decimal.Decimal       `json:"total_sales"`
	TotalCommissions decimal.Decimal       `json:"total_commissions"`
	AvgTargetPct     decimal.Decimal       `json:"avg_target_pct"` // ventas totales / budget total × 100
	Rows             []AgentPerformanceDTO `json:"rows"`
	TopAgents        []AgentPerformanceDTO `json:"top_agents"`
}

// AgentProductRowDTO fila del detalle agente×producto.
type AgentProductRowDTO struct {
	AgentID      string          `json:"agent_id"`
	AgentName    string          `json:"agent_name"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	BudgetQty    decimal.Decimal `json:"budget_qty"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	SalesQty     decimal.Decimal `json:"sales_qty"`
	SalesAmount  decimal.Decimal `json:"sales_amount"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	TargetPct    decimal.Decimal `json:"target_pct"`
	Deviation    decimal.Decimal `json:"deviation"`
}

// DashboardDetailResponse respuesta de GET /api/dashboard/detail.
type DashboardDetailResponse struct {
	Month string               `json:"month"`
	Rows  []AgentProductRowDTO `json:"rows"`
}

// PeriodListResponse meses disponibles para el selector, el más reciente primero.
type PeriodListResponse struct {
	Months []string `json:"months"`
}
