package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/commission"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/report"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
	"github.com/tu-usuario/budget-comisiones/pkg/logger"
)

const topAgentsLimit = 10

var hundred = decimal.NewFromInt(100)

// DashboardUseCase arma la vista agregada del dashboard: carga los datos del
// mes, aplica los filtros y deriva las métricas por agente. La carga desde el
// almacén y la derivación están separadas: la segunda es pura (report,
// commission) y se testea sin base de datos.
type DashboardUseCase struct {
	budgetRepo   repository.BudgetRepository
	saleRepo     repository.SaleRepository
	agentRepo    repository.AgentRepository
	productRepo  repository.ProductRepository
	scheduleRepo repository.ScheduleRepository
	log          *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	budgetRepo repository.BudgetRepository,
	saleRepo repository.SaleRepository,
	agentRepo repository.AgentRepository,
	productRepo repository.ProductRepository,
	scheduleRepo repository.ScheduleRepository,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		budgetRepo:   budgetRepo,
		saleRepo:     saleRepo,
		agentRepo:    agentRepo,
		productRepo:  productRepo,
		scheduleRepo: scheduleRepo,
		log:          log,
	}
}

type monthData struct {
	budgets   []entity.BudgetEntry
	sales     []entity.SaleEntry
	agents    []entity.Agent
	schedules []entity.CommissionSchedule
}

// loadMonth trae en paralelo las cuatro colecciones que necesita cualquier
// vista del dashboard (llamadas independientes entre sí).
func (uc *DashboardUseCase) loadMonth(ctx context.Context, ym string) (*monthData, error) {
	type budgetsResult struct {
		rows []entity.BudgetEntry
		err  error
	}
	type salesResult struct {
		rows []entity.SaleEntry
		err  error
	}
	type agentsResult struct {
		rows []entity.Agent
		err  error
	}
	type schedulesResult struct {
		rows []entity.CommissionSchedule
		err  error
	}

	bChan := make(chan budgetsResult, 1)
	sChan := make(chan salesResult, 1)
	aChan := make(chan agentsResult, 1)
	schChan := make(chan schedulesResult, 1)

	go func() {
		rows, err := uc.budgetRepo.ListByMonth(ctx, ym)
		bChan <- budgetsResult{rows, err}
	}()
	go func() {
		rows, err := uc.saleRepo.ListByMonth(ctx, ym)
		sChan <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.agentRepo.ListAll(ctx)
		aChan <- agentsResult{rows, err}
	}()
	go func() {
		rows, err := uc.scheduleRepo.ListAll(ctx)
		schChan <- schedulesResult{rows, err}
	}()

	bRes := <-bChan
	sRes := <-sChan
	aRes := <-aChan
	schRes := <-schChan

	if bRes.err != nil {
		return nil, fmt.Errorf("dashboard: budgets: %w", bRes.err)
	}
	if sRes.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sRes.err)
	}
	if aRes.err != nil {
		return nil, fmt.Errorf("dashboard: agentes: %w", aRes.err)
	}
	if schRes.err != nil {
		return nil, fmt.Errorf("dashboard: tarifarios: %w", schRes.err)
	}
	return &monthData{
		budgets:   bRes.rows,
		sales:     sRes.rows,
		agents:    aRes.rows,
		schedules: schRes.rows,
	}, nil
}

// GetSummary devuelve la vista por agente con los KPIs del mes filtrado.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardResponse, error) {
	if !entity.ValidYM(req.Month) {
		return nil, domain.ErrInvalidPeriod
	}
	data, err := uc.loadMonth(ctx, req.Month)
	if err != nil {
		return nil, err
	}

	rows := uc.aggregate(data, req)

	var totalBudget, totalSales, totalCommissions decimal.Decimal
	for _, r := range rows {
		totalBudget = totalBudget.Add(r.BudgetAmount)
		totalSales = totalSales.Add(r.SalesAmount)
		totalCommissions = totalCommissions.Add(r.Commission)
	}
	avgTargetPct := decimal.Zero
	if totalBudget.IsPositive() {
		avgTargetPct = totalSales.Div(totalBudget).Mul(hundred)
	}

	items := toPerformanceDTOs(rows)
	top := items
	if len(top) > topAgentsLimit {
		top = top[:topAgentsLimit]
	}

	return &dto.DashboardResponse{
		Month:            req.Month,
		TotalBudget:      totalBudget,
		TotalSales:       totalSales,
		TotalCommissions: totalCommissions,
		AvgTargetPct:     avgTargetPct,
		Rows:             items,
		TopAgents:        top,
	}, nil
}

// GetDetail devuelve el detalle agente×producto del mes filtrado.
func (uc *DashboardUseCase) GetDetail(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardDetailResponse, error) {
	if !entity.ValidYM(req.Month) {
		return nil, domain.ErrInvalidPeriod
	}
	data, err := uc.loadMonth(ctx, req.Month)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", err)
	}

	budgets, sales := report.Filter(data.budgets, data.sales, data.agents, toSelection(req))
	rows := report.AggregateByAgentProduct(budgets, sales, data.agents, products)

	items := make([]dto.AgentProductRowDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.AgentProductRowDTO{
			AgentID:      r.AgentID,
			AgentName:    r.AgentName,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			BudgetQty:    r.BudgetQty,
			BudgetAmount: r.BudgetAmount,
			SalesQty:     r.SalesQty,
			SalesAmount:  r.SalesAmount,
			AvgPrice:     r.AvgPrice,
			TargetPct:    r.TargetPct,
			Deviation:    r.Deviation,
		})
	}
	return &dto.DashboardDetailResponse{Month: req.Month, Rows: items}, nil
}

// ExportCSV serializa la vista por agente del mes filtrado. Importes con 2
// decimales, tasa con 4. Devuelve el contenido y el nombre de archivo sugerido.
func (uc *DashboardUseCase) ExportCSV(ctx context.Context, req dto.DashboardRequest) ([]byte, string, error) {
	if !entity.ValidYM(req.Month) {
		return nil, "", domain.ErrInvalidPeriod
	}
	data, err := uc.loadMonth(ctx, req.Month)
	if err != nil {
		return nil, "", err
	}
	rows := uc.aggregate(data, req)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"ym", "agent_code", "agent_name", "area", "budget_amount",
		"sales_amount", "achievement_pct", "avg_price_agent", "rate",
		"commission", "deviation",
	}
	if err := w.Write(header); err != nil {
		return nil, "", fmt.Errorf("export csv: %w", err)
	}
	for _, r := range rows {
		record := []string{
			req.Month,
			r.AgentCode,
			r.AgentName,
			r.Area,
			r.BudgetAmount.StringFixed(2),
			r.SalesAmount.StringFixed(2),
			r.TargetPct.StringFixed(2),
			r.AvgPrice.StringFixed(2),
			r.Rate.StringFixed(4),
			r.Commission.StringFixed(2),
			r.Deviation.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, "", fmt.Errorf("export csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("export csv: %w", err)
	}
	filename := fmt.Sprintf("export_agentes_%s.csv", req.Month)
	return buf.Bytes(), filename, nil
}

// aggregate aplica filtros y deriva las filas por agente. Si no hay tarifario
// vigente lo deja en el log: la respuesta sale igual, con comisiones en 0.
func (uc *DashboardUseCase) aggregate(data *monthData, req dto.DashboardRequest) []report.AgentPerformance {
	budgets, sales := report.Filter(data.budgets, data.sales, data.agents, toSelection(req))

	asOf, _ := entity.FirstDayOf(req.Month) // el formato ya se validó
	if commission.ActiveSchedule(data.schedules, asOf) == nil {
		uc.log.Warn().Str("month", req.Month).Msg("sin tarifario vigente; comisiones en 0")
	}
	return report.AggregateByAgent(budgets, sales, data.agents, data.schedules, asOf)
}

func toSelection(req dto.DashboardRequest) report.Selection {
	return report.Selection{
		Month:      req.Month,
		AgentIDs:   req.AgentIDs,
		AreaIDs:    req.AreaIDs,
		ProductIDs: req.ProductIDs,
	}
}

func toPerformanceDTOs(rows []report.AgentPerformance) []dto.AgentPerformanceDTO {
	items := make([]dto.AgentPerformanceDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.AgentPerformanceDTO{
			AgentID:      r.AgentID,
			AgentCode:    r.AgentCode,
			AgentName:    r.AgentName,
			Area:         r.Area,
			BudgetAmount: r.BudgetAmount,
			SalesAmount:  r.SalesAmount,
			SalesQty:     r.SalesQty,
			AvgPrice:     r.AvgPrice,
			Rate:         r.Rate,
			Commission:   r.Commission,
			TargetPct:    r.TargetPct,
			Deviation:    r.Deviation,
		})
	}
	return items
}
