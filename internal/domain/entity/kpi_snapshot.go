package entity

import (
	"encoding/json"
	"time"
)

// KPISnapshot payload JSON crudo importado desde sistemas externos
// (citas, KPIs de campo). Se guarda tal cual para análisis posterior;
// el motor de agregación no lo consume.
type KPISnapshot struct {
	ID        string
	Period    string
	Source    string
	Payload   json.RawMessage
	CreatedAt time.Time
}
