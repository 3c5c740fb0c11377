package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
	"github.com/tu-usuario/budget-comisiones/pkg/logger"
)

// ImportTxRunner ejecuta una importación completa dentro de una transacción:
// o entran todas las filas válidas o no entra ninguna.
type ImportTxRunner interface {
	RunImport(ctx context.Context, fn func(
		agentRepo repository.AgentRepository,
		productRepo repository.ProductRepository,
		periodRepo repository.PeriodRepository,
		budgetRepo repository.BudgetRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ImportUseCase importación masiva de budgets y ventas desde CSV, y carga de
// snapshots de KPI externos en crudo.
//
// Las filas matchean agentes y productos por código (no por ID): el código es
// la clave estable que comparten los sistemas origen. Con AutoCreate activo,
// los códigos desconocidos generan la referencia al vuelo con nombre = código,
// igual que el alta manual posterior la completará.
type ImportUseCase struct {
	tx      ImportTxRunner
	kpiRepo repository.KPIRepository
	log     *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx ImportTxRunner, kpiRepo repository.KPIRepository, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{tx: tx, kpiRepo: kpiRepo, log: log}
}

type csvRow struct {
	line        int
	ym          string
	agentCode   string
	productCode string
	qty         decimal.Decimal
	amount      decimal.Decimal
	source      string
	externalRef string
}

// ImportBudgetCSV procesa un CSV con cabecera ym,agent_code,product_code,qty,amount.
// Los budgets se upsertan por (ym, agent_id, product_id): reimportar el mismo
// archivo es idempotente.
func (uc *ImportUseCase) ImportBudgetCSV(ctx context.Context, r io.Reader, opts dto.ImportOptions) (*dto.ImportResultDTO, error) {
	rows, result, err := parseImportCSV(r)
	if err != nil {
		return nil, err
	}

	err = uc.tx.RunImport(ctx, func(
		agentRepo repository.AgentRepository,
		productRepo repository.ProductRepository,
		periodRepo repository.PeriodRepository,
		budgetRepo repository.BudgetRepository,
		_ repository.SaleRepository,
	) error {
		res := newResolver(ctx, agentRepo, productRepo, periodRepo, opts.AutoCreate, result)
		for _, row := range rows {
			agentID, productID, ok, err := res.resolve(row)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			now := time.Now()
			created, err := budgetRepo.Upsert(ctx, &entity.BudgetEntry{
				ID:        uuid.New().String(),
				YM:        row.ym,
				AgentID:   agentID,
				ProductID: productID,
				Qty:       row.qty,
				Amount:    row.amount,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("import budget línea %d: %w", row.line, err)
			}
			if created {
				result.Inserted++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("importación de budget completada")
	return result, nil
}

// ImportSalesCSV procesa un CSV con cabecera ym,agent_code,product_code,qty,amount
// y columnas opcionales source,external_ref. Las ventas se anexan, nunca se
// upsertan: cada importación agrega filas.
func (uc *ImportUseCase) ImportSalesCSV(ctx context.Context, r io.Reader, opts dto.ImportOptions) (*dto.ImportResultDTO, error) {
	rows, result, err := parseImportCSV(r)
	if err != nil {
		return nil, err
	}

	err = uc.tx.RunImport(ctx, func(
		agentRepo repository.AgentRepository,
		productRepo repository.ProductRepository,
		periodRepo repository.PeriodRepository,
		_ repository.BudgetRepository,
		saleRepo repository.SaleRepository,
	) error {
		res := newResolver(ctx, agentRepo, productRepo, periodRepo, opts.AutoCreate, result)
		batch := make([]entity.SaleEntry, 0, len(rows))
		for _, row := range rows {
			agentID, productID, ok, err := res.resolve(row)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			batch = append(batch, entity.SaleEntry{
				ID:          uuid.New().String(),
				YM:          row.ym,
				AgentID:     agentID,
				ProductID:   productID,
				Qty:         row.qty,
				Amount:      row.amount,
				Source:      row.source,
				ExternalRef: row.externalRef,
				CreatedAt:   time.Now(),
			})
		}
		if len(batch) == 0 {
			return nil
		}
		if err := saleRepo.CreateBatch(ctx, batch); err != nil {
			return fmt.Errorf("import ventas: %w", err)
		}
		result.Inserted = len(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Msg("importación de ventas completada")
	return result, nil
}

// ImportKPI guarda un snapshot de KPIs externos tal cual llega. El payload no
// se interpreta: solo se valida que sea JSON y que el periodo tenga formato.
func (uc *ImportUseCase) ImportKPI(ctx context.Context, in dto.ImportKPIRequest) (*dto.ImportKPIResponse, error) {
	if !entity.ValidYM(in.Period) {
		return nil, domain.ErrInvalidPeriod
	}
	if !json.Valid(in.Payload) {
		return nil, fmt.Errorf("%w: payload no es JSON válido", domain.ErrInvalidInput)
	}
	source := in.Source
	if source == "" {
		source = "external"
	}
	snapshot := &entity.KPISnapshot{
		ID:        uuid.New().String(),
		Period:    in.Period,
		Source:    source,
		Payload:   in.Payload,
		CreatedAt: time.Now(),
	}
	if err := uc.kpiRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}
	return &dto.ImportKPIResponse{ID: snapshot.ID, Period: snapshot.Period}, nil
}

// parseImportCSV lee el archivo completo y separa filas válidas de inválidas.
// Las filas con campos obligatorios ausentes o números no parseables se saltan
// y quedan reportadas en el resultado, igual que hace la carga manual.
func parseImportCSV(r io.Reader) ([]csvRow, *dto.ImportResultDTO, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: CSV sin cabecera", domain.ErrInvalidInput)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"ym", "agent_code", "product_code", "qty", "amount"} {
		if _, ok := col[required]; !ok {
			return nil, nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	result := &dto.ImportResultDTO{}
	var rows []csvRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: línea %d malformada", domain.ErrInvalidInput, line)
		}

		row := csvRow{
			line:        line,
			ym:          field(record, "ym"),
			agentCode:   field(record, "agent_code"),
			productCode: field(record, "product_code"),
			source:      field(record, "source"),
			externalRef: field(record, "external_ref"),
		}
		if row.ym == "" || row.agentCode == "" || row.productCode == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("línea %d: campos obligatorios vacíos", line))
			continue
		}
		if !entity.ValidYM(row.ym) {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("línea %d: ym %q inválido", line, row.ym))
			continue
		}
		qty, err := decimal.NewFromString(field(record, "qty"))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("línea %d: qty no numérico", line))
			continue
		}
		amount, err := decimal.NewFromString(field(record, "amount"))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("línea %d: amount no numérico", line))
			continue
		}
		row.qty = qty
		row.amount = amount
		rows = append(rows, row)
	}
	return rows, result, nil
}

// refResolver resuelve códigos de agente/producto a IDs dentro de la
// transacción de importación, con caché local y alta al vuelo opcional.
// También garantiza que el mes de cada fila exista en el selector.
type refResolver struct {
	ctx         context.Context
	agentRepo   repository.AgentRepository
	productRepo repository.ProductRepository
	periodRepo  repository.PeriodRepository
	autoCreate  bool
	result      *dto.ImportResultDTO

	agents  map[string]string // code -> id
	prods   map[string]string
	periods map[string]bool
}

func newResolver(
	ctx context.Context,
	agentRepo repository.AgentRepository,
	productRepo repository.ProductRepository,
	periodRepo repository.PeriodRepository,
	autoCreate bool,
	result *dto.ImportResultDTO,
) *refResolver {
	return &refResolver{
		ctx:         ctx,
		agentRepo:   agentRepo,
		productRepo: productRepo,
		periodRepo:  periodRepo,
		autoCreate:  autoCreate,
		result:      result,
		agents:      make(map[string]string),
		prods:       make(map[string]string),
		periods:     make(map[string]bool),
	}
}

// resolve devuelve los IDs de agente y producto de la fila. ok=false indica
// fila saltada (código desconocido sin AutoCreate); solo los errores de
// infraestructura abortan la importación.
func (r *refResolver) resolve(row csvRow) (agentID, productID string, ok bool, err error) {
	agentID, found, err := r.lookupAgent(row.agentCode)
	if err != nil {
		return "", "", false, err
	}
	if !found {
		r.result.Skipped++
		r.result.Errors = append(r.result.Errors,
			fmt.Sprintf("línea %d: agente %q no existe", row.line, row.agentCode))
		return "", "", false, nil
	}

	productID, found, err = r.lookupProduct(row.productCode)
	if err != nil {
		return "", "", false, err
	}
	if !found {
		r.result.Skipped++
		r.result.Errors = append(r.result.Errors,
			fmt.Sprintf("línea %d: producto %q no existe", row.line, row.productCode))
		return "", "", false, nil
	}

	if !r.periods[row.ym] {
		if err := r.periodRepo.Ensure(r.ctx, row.ym); err != nil {
			return "", "", false, fmt.Errorf("import: mes %s: %w", row.ym, err)
		}
		r.periods[row.ym] = true
	}
	return agentID, productID, true, nil
}

func (r *refResolver) lookupAgent(code string) (string, bool, error) {
	if id, ok := r.agents[code]; ok {
		return id, true, nil
	}
	agent, err := r.agentRepo.GetByCode(r.ctx, code)
	if err != nil {
		return "", false, fmt.Errorf("import: agente %s: %w", code, err)
	}
	if agent == nil {
		if !r.autoCreate {
			return "", false, nil
		}
		now := time.Now()
		agent = &entity.Agent{
			ID:        uuid.New().String(),
			Code:      code,
			Name:      code, // se completa después desde el CRUD
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.agentRepo.Create(r.ctx, agent); err != nil {
			return "", false, fmt.Errorf("import: crear agente %s: %w", code, err)
		}
		r.result.CreatedAgents++
	}
	r.agents[code] = agent.ID
	return agent.ID, true, nil
}

func (r *refResolver) lookupProduct(code string) (string, bool, error) {
	if id, ok := r.prods[code]; ok {
		return id, true, nil
	}
	product, err := r.productRepo.GetByCode(r.ctx, code)
	if err != nil {
		return "", false, fmt.Errorf("import: producto %s: %w", code, err)
	}
	if product == nil {
		if !r.autoCreate {
			return "", false, nil
		}
		now := time.Now()
		product = &entity.Product{
			ID:        uuid.New().String(),
			Code:      code,
			Name:      code,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.productRepo.Create(r.ctx, product); err != nil {
			return "", false, fmt.Errorf("import: crear producto %s: %w", code, err)
		}
		r.result.CreatedProducts++
	}
	r.prods[code] = product.ID
	return product.ID, true, nil
}
