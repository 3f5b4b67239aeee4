package entity

// Category clasifica el tipo de equipo detectado a partir del código escaneado.
//
// El conjunto cerrado está dado por las constantes de abajo; sin embargo el
// tipo es un string porque en la carga de un archivo se conserva tal cual
// cualquier etiqueta fuera del conjunto (la capa de consumo permite fijar el
// tipo a mano).
type Category string

// Categorías de equipo conocidas.
const (
	CategoryUnknown         Category = "Unknown"
	CategoryPaymentTerminal Category = "PaymentTerminal"
	CategoryCashComputer    Category = "CashComputer"
	CategoryFiscalPrinterNS Category = "FiscalPrinterNS"
	CategoryFiscalPrinterNU Category = "FiscalPrinterNU"
	CategoryScanner         Category = "Scanner"
	CategoryRFIDTray        Category = "RFIDTray"
	CategoryBin             Category = "Bin"
)

// Categories devuelve el conjunto cerrado en orden de presentación.
func Categories() []Category {
	return []Category{
		CategoryUnknown,
		CategoryPaymentTerminal,
		CategoryCashComputer,
		CategoryFiscalPrinterNS,
		CategoryFiscalPrinterNU,
		CategoryScanner,
		CategoryRFIDTray,
		CategoryBin,
	}
}

// IsKnown indica si la categoría pertenece al conjunto cerrado.
func (c Category) IsKnown() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }
