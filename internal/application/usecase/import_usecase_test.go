package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
	"github.com/tu-usuario/budget-comisiones/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Implementan los puertos de persistencia sobre mapas para
// testear el flujo de importación sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeAgentRepo struct {
	byCode map[string]*entity.Agent
}

func (f *fakeAgentRepo) Create(_ context.Context, a *entity.Agent) error {
	f.byCode[a.Code] = a
	return nil
}
func (f *fakeAgentRepo) GetByID(context.Context, string) (*entity.Agent, error) { return nil, nil }
func (f *fakeAgentRepo) GetByCode(_ context.Context, code string) (*entity.Agent, error) {
	return f.byCode[code], nil
}
func (f *fakeAgentRepo) Update(context.Context, *entity.Agent) error { return nil }
func (f *fakeAgentRepo) List(context.Context, int, int) ([]*entity.Agent, error) {
	return nil, nil
}
func (f *fakeAgentRepo) ListAll(context.Context) ([]entity.Agent, error) { return nil, nil }
func (f *fakeAgentRepo) Delete(context.Context, string) error            { return nil }

type fakeProductRepo struct {
	byCode map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.byCode[p.Code] = p
	return nil
}
func (f *fakeProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	return f.byCode[code], nil
}
func (f *fakeProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (f *fakeProductRepo) List(context.Context, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListAll(context.Context) ([]entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(context.Context, string) error              { return nil }

type fakePeriodRepo struct {
	months map[string]bool
}

func (f *fakePeriodRepo) Ensure(_ context.Context, ym string) error {
	f.months[ym] = true
	return nil
}
func (f *fakePeriodRepo) List(context.Context) ([]entity.Period, error) { return nil, nil }
func (f *fakePeriodRepo) Exists(_ context.Context, ym string) (bool, error) {
	return f.months[ym], nil
}

type fakeBudgetRepo struct {
	byKey map[string]*entity.BudgetEntry // ym|agent|product
}

func budgetKey(e *entity.BudgetEntry) string {
	return e.YM + "|" + e.AgentID + "|" + e.ProductID
}

func (f *fakeBudgetRepo) Upsert(_ context.Context, e *entity.BudgetEntry) (bool, error) {
	key := budgetKey(e)
	_, exists := f.byKey[key]
	f.byKey[key] = e
	return !exists, nil
}
func (f *fakeBudgetRepo) ListByMonth(context.Context, string) ([]entity.BudgetEntry, error) {
	return nil, nil
}
func (f *fakeBudgetRepo) DeleteByMonth(context.Context, string) error { return nil }

type fakeSaleRepo struct {
	rows []entity.SaleEntry
}

func (f *fakeSaleRepo) Create(_ context.Context, s *entity.SaleEntry) error {
	f.rows = append(f.rows, *s)
	return nil
}
func (f *fakeSaleRepo) CreateBatch(_ context.Context, sales []entity.SaleEntry) error {
	f.rows = append(f.rows, sales...)
	return nil
}
func (f *fakeSaleRepo) ListByMonth(context.Context, string) ([]entity.SaleEntry, error) {
	return nil, nil
}
func (f *fakeSaleRepo) DeleteByMonth(context.Context, string) error { return nil }

// fakeTxRunner pasa los fakes directamente al callback, sin transacción real.
type fakeTxRunner struct {
	agents   *fakeAgentRepo
	products *fakeProductRepo
	periods  *fakePeriodRepo
	budgets  *fakeBudgetRepo
	sales    *fakeSaleRepo
}

func (f *fakeTxRunner) RunImport(_ context.Context, fn func(
	repository.AgentRepository,
	repository.ProductRepository,
	repository.PeriodRepository,
	repository.BudgetRepository,
	repository.SaleRepository,
) error) error {
	return fn(f.agents, f.products, f.periods, f.budgets, f.sales)
}

func newImportFixture() (*usecase.ImportUseCase, *fakeTxRunner) {
	tx := &fakeTxRunner{
		agents:   &fakeAgentRepo{byCode: map[string]*entity.Agent{}},
		products: &fakeProductRepo{byCode: map[string]*entity.Product{}},
		periods:  &fakePeriodRepo{months: map[string]bool{}},
		budgets:  &fakeBudgetRepo{byKey: map[string]*entity.BudgetEntry{}},
		sales:    &fakeSaleRepo{},
	}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := usecase.NewImportUseCase(tx, nil, log)
	return uc, tx
}

func seedRefs(tx *fakeTxRunner) {
	tx.agents.byCode["A001"] = &entity.Agent{ID: "ag-1", Code: "A001", Name: "Rossi"}
	tx.products.byCode["P001"] = &entity.Product{ID: "pr-1", Code: "P001", Name: "Filtro aire"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Import de budget
// ──────────────────────────────────────────────────────────────────────────────

func TestImportBudgetCSV_FlujoCompleto(t *testing.T) {
	uc, tx := newImportFixture()
	seedRefs(tx)

	csv := "ym,agent_code,product_code,qty,amount\n" +
		"2024-03,A001,P001,10,1000\n"

	res, err := uc.ImportBudgetCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 0, res.Skipped)
	assert.True(t, tx.periods.months["2024-03"], "el mes se registra automáticamente")

	entry := tx.budgets.byKey["2024-03|ag-1|pr-1"]
	require.NotNil(t, entry)
	assert.True(t, entry.Amount.Equal(dec("1000")))
}

// Reimportar la misma clave natural reemplaza la fila en vez de duplicarla.
func TestImportBudgetCSV_ReimportarActualiza(t *testing.T) {
	uc, tx := newImportFixture()
	seedRefs(tx)

	csv := "ym,agent_code,product_code,qty,amount\n2024-03,A001,P001,10,1000\n"
	_, err := uc.ImportBudgetCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{})
	require.NoError(t, err)

	csv2 := "ym,agent_code,product_code,qty,amount\n2024-03,A001,P001,12,1200\n"
	res, err := uc.ImportBudgetCSV(context.Background(), strings.NewReader(csv2), dto.ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, tx.budgets.byKey, 1)
	assert.True(t, tx.budgets.byKey["2024-03|ag-1|pr-1"].Amount.Equal(dec("1200")))
}

func TestImportBudgetCSV_FilasInvalidasSeSaltan(t *testing.T) {
	uc, tx := newImportFixture()
	seedRefs(tx)

	csv := "ym,agent_code,product_code,qty,amount\n" +
		"2024-03,A001,P001,10,1000\n" +
		",A001,P001,10,1000\n" + // ym vacío
		"2024-13,A001,P001,10,1000\n" + // mes 13
		"2024-03,A001,P001,diez,1000\n" // qty no numérico

	res, err := uc.ImportBudgetCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{})
	require.NoError(t, err, "las filas malas no abortan la importación")

	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, res.Errors, 3)
}

func TestImportBudgetCSV_CodigoDesconocido(t *testing.T) {
	uc, tx := newImportFixture()
	seedRefs(tx)

	csv := "ym,agent_code,product_code,qty,amount\n2024-03,A999,P001,10,1000\n"

	// Sin auto_create la fila se salta y queda reportada.
	res, err := uc.ImportBudgetCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 1, res.Skipped)

	// Con auto_create el agente nace con nombre = código.
	res, err = uc.ImportBudgetCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{AutoCreate: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.CreatedAgents)
	created := tx.agents.byCode["A999"]
	require.NotNil(t, created)
	assert.Equal(t, "A999", created.Name)
}

func TestImportBudgetCSV_SinCabeceraObligatoria(t *testing.T) {
	uc, _ := newImportFixture()

	csv := "ym,agent_code,qty,amount\n2024-03,A001,10,1000\n"
	_, err := uc.ImportBudgetCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{})
	assert.Error(t, err, "falta product_code en la cabecera")
}

// ──────────────────────────────────────────────────────────────────────────────
// Import de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestImportSalesCSV_AnexaNoUpserta(t *testing.T) {
	uc, tx := newImportFixture()
	seedRefs(tx)

	csv := "ym,agent_code,product_code,qty,amount,source,external_ref\n" +
		"2024-03,A001,P001,8,960,erp,FACT-001\n"

	_, err := uc.ImportSalesCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{})
	require.NoError(t, err)
	_, err = uc.ImportSalesCSV(context.Background(), strings.NewReader(csv), dto.ImportOptions{})
	require.NoError(t, err)

	require.Len(t, tx.sales.rows, 2, "cada importación anexa; no hay clave natural")
	assert.Equal(t, "erp", tx.sales.rows[0].Source)
	assert.Equal(t, "FACT-001", tx.sales.rows[0].ExternalRef)
}
