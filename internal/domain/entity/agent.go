package entity

import "time"

// Agent representa un agente comercial (tabla de referencia editable).
// Code es la clave legible usada para cruzar filas durante el import CSV;
// la identidad real siempre es ID.
type Agent struct {
	ID        string
	Code      string
	Name      string
	Area      string // opcional; usado por el filtro de zona del dashboard
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
