// Package excel implementa la exportación del conteo completo a un libro
// XLSX: una hoja "resumen" con los totales por ámbito y categoría, y una
// hoja "posiciones" con todas las posiciones en orden de inserción.
package excel

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/inventario-equipos/internal/application/report"
	"github.com/tu-usuario/inventario-equipos/internal/domain/entity"
)

var _ report.XLSXGenerator = (*XLSXReportGenerator)(nil)

// XLSXReportGenerator implementa report.XLSXGenerator usando excelize.
type XLSXReportGenerator struct{}

// NewXLSXReportGenerator construye el generador.
func NewXLSXReportGenerator() *XLSXReportGenerator { return &XLSXReportGenerator{} }

// GenerateWorkbook renderiza el libro y devuelve sus bytes.
func (g *XLSXReportGenerator) GenerateWorkbook(sheets []*report.CountSheet, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "resumen"
	entriesSheet := "posiciones"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(entriesSheet); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Inventario de equipos")
	_ = f.SetCellValue(summarySheet, "B1", generatedAt.Format(entity.TimeLayout))
	_ = f.SetCellValue(summarySheet, "A3", "Tienda")
	_ = f.SetCellValue(summarySheet, "B3", "Caja")
	_ = f.SetCellValue(summarySheet, "C3", "Posiciones")
	_ = f.SetCellValue(summarySheet, "D3", "Desglose")
	srow := 4
	for _, sheet := range sheets {
		for _, sec := range sheet.Sections {
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", srow), sheet.Shop)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", srow), sec.Register)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", srow), sec.Summary.Count)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", srow), formatBreakdown(sec.Summary.ByCategory))
			srow++
		}
	}

	_ = f.SetCellValue(entriesSheet, "A1", "Tienda")
	_ = f.SetCellValue(entriesSheet, "B1", "Caja")
	_ = f.SetCellValue(entriesSheet, "C1", "Código")
	_ = f.SetCellValue(entriesSheet, "D1", "Tipo")
	_ = f.SetCellValue(entriesSheet, "E1", "Registrado")
	_ = f.SetCellValue(entriesSheet, "F1", "Notas")
	erow := 2
	for _, sheet := range sheets {
		for _, sec := range sheet.Sections {
			for _, e := range sec.Entries {
				_ = f.SetCellValue(entriesSheet, fmt.Sprintf("A%d", erow), e.Shop)
				_ = f.SetCellValue(entriesSheet, fmt.Sprintf("B%d", erow), e.Register)
				_ = f.SetCellValue(entriesSheet, fmt.Sprintf("C%d", erow), e.Code)
				_ = f.SetCellValue(entriesSheet, fmt.Sprintf("D%d", erow), e.Category)
				_ = f.SetCellValue(entriesSheet, fmt.Sprintf("E%d", erow), e.RecordedAt.Format(entity.TimeLayout))
				_ = f.SetCellValue(entriesSheet, fmt.Sprintf("F%d", erow), e.Notes)
				erow++
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// formatBreakdown compone "Categoria=N" separados por coma, en el orden
// cerrado del enum; etiquetas fuera del conjunto van al final.
func formatBreakdown(byCategory map[string]int) string {
	var b bytes.Buffer
	emit := func(cat string, n int) {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%d", cat, n)
	}
	seen := map[string]bool{}
	for _, cat := range entity.Categories() {
		if n := byCategory[cat.String()]; n > 0 {
			emit(cat.String(), n)
			seen[cat.String()] = true
		}
	}
	var extra []string
	for cat := range byCategory {
		if !seen[cat] {
			extra = append(extra, cat)
		}
	}
	sort.Strings(extra)
	for _, cat := range extra {
		emit(cat, byCategory[cat])
	}
	return b.String()
}
