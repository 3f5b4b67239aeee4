// Package classifier reconoce el tipo de equipo a partir del código o número
// de serie escaneado. Es una función pura: sin estado, sin errores; todo
// código que no calza con ninguna regla es CategoryUnknown.
package classifier

import (
	"regexp"
	"strings"

	"github.com/tu-usuario/inventario-equipos/internal/domain/entity"
)

// Reglas de reconocimiento, en orden de evaluación (gana la primera que
// calza). Todas son de coincidencia completa, no de substring, y son
// insensibles a mayúsculas. El patrón de Bin (EMPOSQCO) se evalúa antes que
// el de RFIDTray (EMPOS) porque comparten prefijo y el sufijo más largo debe
// capturar primero.
var rules = []struct {
	re       *regexp.Regexp
	category entity.Category
}{
	{regexp.MustCompile(`^\d{20,}$`), entity.CategoryPaymentTerminal},
	{regexp.MustCompile(`(?i)^\d{2}[A-Z]\d{7,}$`), entity.CategoryCashComputer},
	{regexp.MustCompile(`(?i)^[A-Z]{2}\d{9,}$`), entity.CategoryFiscalPrinterNS},
	{regexp.MustCompile(`(?i)^[A-Z]{3}\d{10,}$`), entity.CategoryFiscalPrinterNU},
	{regexp.MustCompile(`(?i)^[A-Z]\d{2,}[A-Z]\d{5,}$`), entity.CategoryScanner},
	{regexp.MustCompile(`(?i)^\(01\)\d{13}\(21\)EMPOSQCO\d{6,}$`), entity.CategoryBin},
	{regexp.MustCompile(`(?i)^\(01\)\d{13}\(21\)EMPOS\d{5,}$`), entity.CategoryRFIDTray},
}

// Classify determina la categoría de un código escaneado. Opera sobre el
// código sin espacios en los extremos; el vacío es CategoryUnknown.
func Classify(code string) entity.Category {
	s := strings.TrimSpace(code)
	if s == "" {
		return entity.CategoryUnknown
	}
	for _, r := range rules {
		if r.re.MatchString(s) {
			return r.category
		}
	}
	return entity.CategoryUnknown
}
