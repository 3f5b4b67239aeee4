package report

import (
	"fmt"
	"os"
	"time"

	"github.com/tu-usuario/inventario-equipos/internal/domain"
)

// UseCase genera los reportes del conteo (hoja PDF por tienda, libro XLSX
// completo) a partir de la vista de solo lectura del inventario.
type UseCase struct {
	inv  Inventory
	pdf  PDFGenerator
	xlsx XLSXGenerator
}

// NewUseCase construye el caso de uso inyectando los generadores.
func NewUseCase(inv Inventory, pdf PDFGenerator, xlsx XLSXGenerator) *UseCase {
	return &UseCase{inv: inv, pdf: pdf, xlsx: xlsx}
}

// ExportShopPDF genera la hoja de conteo de una tienda y la escribe en path.
// Devuelve domain.ErrInvalidScope si la tienda no está registrada.
func (uc *UseCase) ExportShopPDF(shop, path string) error {
	sheet, err := uc.buildSheet(shop, time.Now())
	if err != nil {
		return err
	}
	data, err := uc.pdf.GenerateCountSheet(sheet)
	if err != nil {
		return fmt.Errorf("reporte: generar PDF: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("reporte: escribir %s: %w", path, err)
	}
	return nil
}

// ExportWorkbook genera el libro XLSX con todas las tiendas y lo escribe en
// path.
func (uc *UseCase) ExportWorkbook(path string) error {
	now := time.Now()
	shops := uc.inv.Shops()
	sheets := make([]*CountSheet, 0, len(shops))
	for _, shop := range shops {
		sheet, err := uc.buildSheet(shop, now)
		if err != nil {
			return err
		}
		sheets = append(sheets, sheet)
	}
	data, err := uc.xlsx.GenerateWorkbook(sheets, now)
	if err != nil {
		return fmt.Errorf("reporte: generar XLSX: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("reporte: escribir %s: %w", path, err)
	}
	return nil
}

func (uc *UseCase) buildSheet(shop string, now time.Time) (*CountSheet, error) {
	known := false
	for _, s := range uc.inv.Shops() {
		if s == shop {
			known = true
			break
		}
	}
	if !known {
		return nil, domain.ErrInvalidScope
	}
	sheet := &CountSheet{Shop: shop, GeneratedAt: now}
	for _, register := range uc.inv.RegistersOf(shop) {
		sheet.Sections = append(sheet.Sections, RegisterSection{
			Register: register,
			Entries:  uc.inv.ListEntries(shop, register),
			Summary:  uc.inv.Summary(shop, register),
		})
	}
	return sheet, nil
}
