package entity

import (
	"regexp"
	"time"
)

// Period es el bucket mensual ("YYYY-MM") que delimita budgets y ventas.
type Period struct {
	YM string
}

var ymPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidYM verifica el formato YYYY-MM con mes 01..12.
func ValidYM(ym string) bool {
	return ymPattern.MatchString(ym)
}

// FirstDayOf devuelve el primer día del mes del periodo (fecha de corte
// usada para resolver el tarifario de comisiones vigente).
func FirstDayOf(ym string) (time.Time, error) {
	return time.Parse("2006-01-02", ym+"-01")
}
