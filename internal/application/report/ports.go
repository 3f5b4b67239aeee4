package report

import (
	"time"

	"github.com/tu-usuario/inventario-equipos/internal/application/dto"
)

// Inventory es la vista de solo lectura del estado del conteo que consumen
// los reportes.
type Inventory interface {
	Shops() []string
	RegistersOf(shop string) []string
	ListEntries(shop, register string) []dto.EntryResponse
	Summary(shop, register string) dto.ScopeSummary
}

// CountSheet datos de la hoja de conteo de una tienda.
type CountSheet struct {
	Shop        string
	GeneratedAt time.Time
	Sections    []RegisterSection
}

// RegisterSection posiciones de una caja, en orden de inserción.
type RegisterSection struct {
	Register string
	Entries  []dto.EntryResponse
	Summary  dto.ScopeSummary
}

// PDFGenerator renderiza la hoja de conteo de una tienda.
type PDFGenerator interface {
	GenerateCountSheet(sheet *CountSheet) ([]byte, error)
}

// XLSXGenerator renderiza el libro completo (todas las tiendas).
type XLSXGenerator interface {
	GenerateWorkbook(sheets []*CountSheet, generatedAt time.Time) ([]byte, error)
}
