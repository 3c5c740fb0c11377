// Package report contiene el motor puro del dashboard: filtrado de registros
// y agregación de desempeño por agente y por agente×producto. No hace I/O;
// opera sobre colecciones ya materializadas y es determinista: mismas
// entradas, misma salida.
package report

import "github.com/tu-usuario/budget-comisiones/internal/domain/entity"

// Selection es la selección de filtros del dashboard. Las listas vacías
// significan "sin restricción en esa dimensión", no "no coincide nada".
// Month es obligatorio y se compara por igualdad exacta (sin rangos).
type Selection struct {
	Month      string // YYYY-MM
	AgentIDs   []string
	AreaIDs    []string
	ProductIDs []string
}

// Filter reduce budgets y ventas al subconjunto que cumple la selección.
//
// El filtro de zona exige resolver el agente por ID contra la tabla de
// referencia: una fila cuyo agente no existe falla el filtro de zona (se
// excluye) para no colar filas sin filtrar; sin filtro de zona activo la
// misma fila pasa.
func Filter(
	budgets []entity.BudgetEntry,
	sales []entity.SaleEntry,
	agents []entity.Agent,
	sel Selection,
) ([]entity.BudgetEntry, []entity.SaleEntry) {
	agentIDs := toSet(sel.AgentIDs)
	areaIDs := toSet(sel.AreaIDs)
	productIDs := toSet(sel.ProductIDs)

	areaByAgent := make(map[string]string, len(agents))
	for _, a := range agents {
		areaByAgent[a.ID] = a.Area
	}

	matches := func(ym, agentID, productID string) bool {
		if ym != sel.Month {
			return false
		}
		if len(agentIDs) > 0 {
			if _, ok := agentIDs[agentID]; !ok {
				return false
			}
		}
		if len(productIDs) > 0 {
			if _, ok := productIDs[productID]; !ok {
				return false
			}
		}
		if len(areaIDs) > 0 {
			area, found := areaByAgent[agentID]
			if !found {
				return false
			}
			if _, ok := areaIDs[area]; !ok {
				return false
			}
		}
		return true
	}

	outBudgets := make([]entity.BudgetEntry, 0, len(budgets))
	for _, b := range budgets {
		if matches(b.YM, b.AgentID, b.ProductID) {
			outBudgets = append(outBudgets, b)
		}
	}
	outSales := make([]entity.SaleEntry, 0, len(sales))
	for _, s := range sales {
		if matches(s.YM, s.AgentID, s.ProductID) {
			outSales = append(outSales, s)
		}
	}
	return outBudgets, outSales
}

func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
