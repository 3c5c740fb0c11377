package commission_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/budget-comisiones/internal/domain/commission"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// standardTiers son los cuatro tramos de referencia del negocio:
// [0,50)→1.5%, [50,100)→2.0%, [100,150)→2.5%, [150,∞)→3.0%.
func standardTiers() []entity.Tier {
	return []entity.Tier{
		{MinAvgPrice: dec("0"), MaxAvgPrice: decPtr("50"), Rate: dec("0.015")},
		{MinAvgPrice: dec("50"), MaxAvgPrice: decPtr("100"), Rate: dec("0.020")},
		{MinAvgPrice: dec("100"), MaxAvgPrice: decPtr("150"), Rate: dec("0.025")},
		{MinAvgPrice: dec("150"), MaxAvgPrice: nil, Rate: dec("0.030")},
	}
}

func scheduleFrom(validFrom string, validTo *time.Time) entity.CommissionSchedule {
	return entity.CommissionSchedule{
		ID:        "sch-" + validFrom,
		ValidFrom: date(validFrom),
		ValidTo:   validTo,
		Currency:  "EUR",
		Tiers:     standardTiers(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de tarifario por fecha
// ──────────────────────────────────────────────────────────────────────────────

func TestActiveSchedule_VigenciaAbierta(t *testing.T) {
	schedules := []entity.CommissionSchedule{scheduleFrom("2024-01-01", nil)}

	s := commission.ActiveSchedule(schedules, date("2024-03-01"))
	require.NotNil(t, s, "un tarifario con ValidTo abierto debe estar vigente después de ValidFrom")
	assert.Equal(t, date("2024-01-01"), s.ValidFrom)
}

func TestActiveSchedule_FueraDeVigencia(t *testing.T) {
	schedules := []entity.CommissionSchedule{
		{ValidFrom: date("2024-01-01"), ValidTo: datePtr("2024-02-29"), Tiers: standardTiers()},
	}

	assert.Nil(t, commission.ActiveSchedule(schedules, date("2024-03-01")),
		"después de ValidTo el tarifario no debe estar vigente")
	assert.Nil(t, commission.ActiveSchedule(schedules, date("2023-12-31")),
		"antes de ValidFrom el tarifario no debe estar vigente")
}

func TestActiveSchedule_BordesInclusivos(t *testing.T) {
	schedules := []entity.CommissionSchedule{
		{ValidFrom: date("2024-01-01"), ValidTo: datePtr("2024-06-30"), Tiers: standardTiers()},
	}

	assert.NotNil(t, commission.ActiveSchedule(schedules, date("2024-01-01")),
		"ValidFrom es inclusivo")
	assert.NotNil(t, commission.ActiveSchedule(schedules, date("2024-06-30")),
		"ValidTo es inclusivo")
}

// El desempate documentado: con dos tarifarios vigentes a la vez gana el de
// ValidFrom más reciente, sin importar el orden del slice de entrada.
func TestActiveSchedule_SolapeGanaValidFromMasReciente(t *testing.T) {
	enero := scheduleFrom("2024-01-01", nil)
	junio := scheduleFrom("2024-06-01", nil)

	for name, schedules := range map[string][]entity.CommissionSchedule{
		"enero primero": {enero, junio},
		"junio primero": {junio, enero},
	} {
		s := commission.ActiveSchedule(schedules, date("2024-07-15"))
		require.NotNil(t, s, name)
		assert.Equal(t, date("2024-06-01"), s.ValidFrom,
			"%s: debe ganar el tarifario introducido más tarde", name)
	}
}

func TestActiveSchedule_SinTarifarios(t *testing.T) {
	assert.Nil(t, commission.ActiveSchedule(nil, date("2024-03-01")))
	assert.Nil(t, commission.ActiveSchedule([]entity.CommissionSchedule{}, date("2024-03-01")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de tramo por precio medio
// ──────────────────────────────────────────────────────────────────────────────

func TestTierRate_BordesDeTramo(t *testing.T) {
	tiers := standardTiers()

	cases := []struct {
		avgPrice string
		want     string
		motivo   string
	}{
		{"0", "0.015", "el mínimo del primer tramo es inclusivo"},
		{"49.999", "0.015", "justo por debajo del límite sigue en el tramo inferior"},
		{"50", "0.020", "el límite inferior del tramo es inclusivo"},
		{"99.999", "0.020", "el máximo del tramo es exclusivo"},
		{"100", "0.025", "cambio de tramo exacto en 100"},
		{"150", "0.030", "entrada al tramo abierto"},
		{"1000", "0.030", "el tramo abierto no tiene tope"},
	}
	for _, c := range cases {
		got := commission.TierRate(tiers, dec(c.avgPrice))
		assert.True(t, dec(c.want).Equal(got),
			"avgPrice=%s: esperado %s, obtenido %s (%s)", c.avgPrice, c.want, got, c.motivo)
	}
}

// Tramos malformados (hueco entre 50 y 80): el resolver degrada a 0 en vez de
// fallar; el dashboard siempre renderiza.
func TestTierRate_HuecoEntreTramosDegradaACero(t *testing.T) {
	tiers := []entity.Tier{
		{MinAvgPrice: dec("0"), MaxAvgPrice: decPtr("50"), Rate: dec("0.015")},
		{MinAvgPrice: dec("80"), MaxAvgPrice: nil, Rate: dec("0.030")},
	}

	got := commission.TierRate(tiers, dec("65"))
	assert.True(t, got.IsZero(), "un avgPrice en el hueco debe resolver a tasa 0, no a error")
}

func TestTierRate_SinTramos(t *testing.T) {
	assert.True(t, commission.TierRate(nil, dec("100")).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveRate combinado
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveRate_SinTarifarioVigenteEsCero(t *testing.T) {
	schedules := []entity.CommissionSchedule{scheduleFrom("2024-06-01", nil)}

	got := commission.ResolveRate(schedules, date("2024-03-01"), dec("120"))
	assert.True(t, got.IsZero(),
		"sin tarifario vigente la tasa es 0 y no se consulta ningún tramo")
}

func TestResolveRate_EscenarioCompleto(t *testing.T) {
	schedules := []entity.CommissionSchedule{scheduleFrom("2024-01-01", nil)}

	got := commission.ResolveRate(schedules, date("2024-03-01"), dec("120"))
	assert.True(t, dec("0.025").Equal(got), "avgPrice 120 cae en [100,150) → 2.5%%")
}

// Mismo input, mismo output: el resolver es una función pura sin estado.
func TestResolveRate_Determinista(t *testing.T) {
	schedules := []entity.CommissionSchedule{
		scheduleFrom("2024-01-01", nil),
		scheduleFrom("2024-06-01", nil),
	}

	r1 := commission.ResolveRate(schedules, date("2024-07-01"), dec("55"))
	r2 := commission.ResolveRate(schedules, date("2024-07-01"), dec("55"))
	assert.True(t, r1.Equal(r2))
}
