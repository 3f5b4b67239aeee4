package dto

import "time"

// AddEntryRequest entrada para registrar un equipo escaneado.
type AddEntryRequest struct {
	Shop     string
	Register string
	Code     string
	Notes    string
}

// UpdateEntryRequest entrada para editar una posición. Solo se tocan los
// campos no nulos. Si cambia Code y no viene Category explícita, la
// categoría se recalcula; una Category explícita queda fijada hasta la
// próxima edición de Code.
type UpdateEntryRequest struct {
	Code     *string
	Category *string
	Notes    *string
}

// EntryResponse salida de una posición del conteo.
type EntryResponse struct {
	Ref        string // referencia estable para editar/eliminar
	Shop       string
	Register   string
	Code       string
	Category   string
	Overridden bool
	RecordedAt time.Time
	Notes      string
}

// ScopeSummary totales de un par (tienda, caja) para la línea de estado y
// los reportes.
type ScopeSummary struct {
	Shop       string
	Register   string
	Count      int
	ByCategory map[string]int
}
