// Package pdf implementa la hoja de conteo imprimible de una tienda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por cada caja:                                              │
//	│    CAJA N (M posiciones)                                     │
//	│    TABLA: # | Código | Tipo | Registrado | Notas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES por categoría                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/inventario-equipos/internal/application/report"
	"github.com/tu-usuario/inventario-equipos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateCountSheet genera el PDF de la hoja de conteo y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateCountSheet(sheet *report.CountSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de conteo de equipos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	total := 0
	totals := map[string]int{}
	for _, sec := range sheet.Sections {
		m.AddRows(sectionTitleRow(sec))
		m.AddRows(tableHeaderRow())
		for _, r := range tableRows(sec) {
			m.AddRows(r)
		}
		m.AddRows(row.New(2))
		total += sec.Summary.Count
		for cat, n := range sec.Summary.ByCategory {
			totals[cat] += n
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(total, totals) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y fecha de generación (der).
func headerRow(sheet *report.CountSheet) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("INVENTARIO DE EQUIPOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Tienda "+sheet.Shop, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 5,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+sheet.GeneratedAt.Format(entity.TimeLayout), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// sectionTitleRow: título de la caja con su contador de posiciones.
func sectionTitleRow(sec report.RegisterSection) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("CAJA %s  (%d posiciones)", sec.Register, sec.Summary.Count), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla de posiciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("#", 1, align.Center),
		h("Código / N° serie", 4, align.Left),
		h("Tipo", 3, align.Left),
		h("Registrado", 2, align.Center),
		h("Notas", 2, align.Left),
	)
}

// tableRows: una fila por posición, numerada dentro de su caja.
func tableRows(sec report.RegisterSection) []core.Row {
	result := make([]core.Row, 0, len(sec.Entries))
	for i, e := range sec.Entries {
		result = append(result, row.New(5).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				e.Code,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				e.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				e.RecordedAt.Format("02/01 15:04"),
				props.Text{Size: 7.5, Align: align.Center, Top: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				e.Notes,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// totalsRows: total general + desglose por categoría en el orden cerrado del
// enum (las etiquetas fuera del conjunto van al final tal cual).
func totalsRows(total int, byCategory map[string]int) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("TOTAL: %d posiciones", total), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	emit := func(cat string, n int) {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(cat, props.Text{Size: 8, Top: 1, Left: 2})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", n), props.Text{
				Size: 8, Top: 1, Align: align.Right, Right: 2,
			})),
			col.New(6),
		))
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
	return rows
}
