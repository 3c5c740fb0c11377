package entity

import "time"

// Product representa un producto vendible (tabla de referencia editable).
// Mismas reglas de identidad que Agent: ID manda, Code cruza imports.
type Product struct {
	ID        string
	Code      string
	Name      string
	Category  string // opcional
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
