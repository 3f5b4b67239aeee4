package entity

import "time"

// TimeLayout formato del timestamp persistido (hora local).
const TimeLayout = "2006-01-02 15:04:05"

// Entry representa un equipo escaneado durante el conteo, siempre asociado
// a una tienda y una caja registradora concretas.
//
// ID es la referencia interna estable: las operaciones de edición y borrado
// direccionan siempre por ID y nunca por igualdad de campos, para que dos
// escaneos idénticos no sean ambiguos.
type Entry struct {
	ID         string
	Shop       string
	Register   string
	Code       string   // texto escaneado, ya sin espacios en los extremos
	Category   Category // derivada del código, o fijada a mano
	Overridden bool     // true si Category fue fijada explícitamente por el operador
	RecordedAt time.Time
	Notes      string
}
