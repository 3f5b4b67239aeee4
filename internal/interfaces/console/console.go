// Package console es el consumidor interactivo del núcleo: un bucle de
// línea de comandos que reproduce el flujo del conteo (elegir tienda y caja,
// escanear códigos, corregir, exportar). Toda la lógica vive en los casos de
// uso; aquí solo se traduce texto a llamadas y referencias a posiciones.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/inventario-equipos/internal/application/dto"
	"github.com/tu-usuario/inventario-equipos/internal/application/report"
	"github.com/tu-usuario/inventario-equipos/internal/application/usecase"
	"github.com/tu-usuario/inventario-equipos/internal/domain"
	"github.com/tu-usuario/inventario-equipos/internal/domain/entity"
	"github.com/tu-usuario/inventario-equipos/internal/infrastructure/csvfile"
	"github.com/tu-usuario/inventario-equipos/pkg/config"
	"github.com/tu-usuario/inventario-equipos/pkg/logger"
)

// Console bucle interactivo sobre un par de streams.
type Console struct {
	inv     *usecase.InventoryUseCase
	reports *report.UseCase
	export  config.ExportConfig
	log     *logger.Logger

	in  io.Reader
	out io.Writer

	shop     string // ámbito activo; vacío = sin seleccionar
	register string
}

// New construye la consola.
func New(inv *usecase.InventoryUseCase, reports *report.UseCase, export config.ExportConfig, log *logger.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{inv: inv, reports: reports, export: export, log: log, in: in, out: out}
}

// Run procesa líneas hasta EOF o "salir". Una línea que no es comando se
// interpreta como un código escaneado para el ámbito activo (el flujo
// principal del conteo: escanear y Enter).
func (c *Console) Run() error {
	c.printf("inventario de equipos — escriba 'ayuda' para ver los comandos\n")
	sc := bufio.NewScanner(c.in)
	for {
		c.prompt()
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "salir" {
			break
		}
		c.dispatch(line)
	}
	return sc.Err()
}

func (c *Console) dispatch(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "ayuda":
		c.help()
	case "tienda":
		c.cmdShop(args)
	case "caja":
		c.cmdRegister(args)
	case "lista":
		c.cmdList()
	case "editar":
		c.cmdEdit(args)
	case "borrar":
		c.cmdRemove(args)
	case "limpiar":
		c.cmdClear()
	case "quitar-caja":
		c.cmdRemoveRegister()
	case "quitar-tienda":
		c.cmdRemoveShop()
	case "importar":
		c.cmdImport(args)
	case "exportar":
		c.cmdExport(args)
	default:
		// Cualquier otra línea es un código escaneado.
		c.cmdScan(line)
	}
}

func (c *Console) help() {
	c.printf(`comandos:
  tienda <id>                    seleccionar (y registrar) una tienda
  caja <id>                      seleccionar (y registrar) una caja de la tienda activa
  <código>                       registrar un escaneo en el ámbito activo
  lista                          posiciones del ámbito activo
  editar <n> codigo <valor>      corregir el código de la posición n
  editar <n> tipo <valor>        fijar el tipo a mano
  editar <n> nota <texto>        cambiar la nota
  borrar <n> [n...]              eliminar posiciones por número
  limpiar                        vaciar el ámbito activo
  quitar-caja | quitar-tienda    eliminar en cascada la caja o tienda activa
  importar <ruta>                mezclar posiciones de otro archivo CSV
  exportar pdf | xlsx            generar reporte
  salir
`)
}

func (c *Console) cmdShop(args []string) {
	if len(args) != 1 {
		c.printf("uso: tienda <id>\n")
		return
	}
	id := args[0]
	if err := c.inv.AddShop(id); err != nil {
		c.fail(err)
	}
	c.shop, c.register = id, ""
	c.printf("tienda %s activa; cajas: %s\n", id, strings.Join(c.inv.RegistersOf(id), ", "))
}

func (c *Console) cmdRegister(args []string) {
	if len(args) != 1 {
		c.printf("uso: caja <id>\n")
		return
	}
	if c.shop == "" {
		c.printf("seleccione primero una tienda\n")
		return
	}
	id := args[0]
	if err := c.inv.AddRegister(c.shop, id); err != nil {
		c.fail(err)
		return
	}
	c.register = id
	c.status()
}

func (c *Console) cmdScan(code string) {
	if c.shop == "" || c.register == "" {
		c.printf("seleccione primero tienda y caja\n")
		return
	}
	e, err := c.inv.AddEntry(dto.AddEntryRequest{Shop: c.shop, Register: c.register, Code: code})
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("+ %s  →  %s\n", e.Code, e.Category)
	c.status()
}

func (c *Console) cmdList() {
	if c.shop == "" || c.register == "" {
		c.printf("seleccione primero tienda y caja\n")
		return
	}
	entries := c.inv.ListEntries(c.shop, c.register)
	for i, e := range entries {
		marker := " "
		if e.Overridden {
			marker = "*" // tipo fijado a mano
		}
		c.printf("%3d  %-30s %s%-16s %s  %s\n",
			i+1, e.Code, marker, e.Category, e.RecordedAt.Format("2006-01-02 15:04:05"), e.Notes)
	}
	c.status()
}

func (c *Console) cmdEdit(args []string) {
	if len(args) < 3 {
		c.printf("uso: editar <n> codigo|tipo|nota <valor>\n")
		return
	}
	ref, ok := c.resolve(args[0])
	if !ok {
		return
	}
	value := strings.Join(args[2:], " ")
	var in dto.UpdateEntryRequest
	switch args[1] {
	case "codigo":
		in.Code = &value
	case "tipo":
		if !entity.Category(value).IsKnown() {
			c.printf("aviso: %q no es una categoría conocida; se guarda tal cual\n", value)
		}
		in.Category = &value
	case "nota":
		in.Notes = &value
	default:
		c.printf("campo desconocido %q\n", args[1])
		return
	}
	e, err := c.inv.UpdateEntry(ref, in)
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("= %s  →  %s\n", e.Code, e.Category)
}

func (c *Console) cmdRemove(args []string) {
	if len(args) == 0 {
		c.printf("uso: borrar <n> [n...]\n")
		return
	}
	refs := make([]string, 0, len(args))
	for _, a := range args {
		ref, ok := c.resolve(a)
		if !ok {
			return
		}
		refs = append(refs, ref)
	}
	if err := c.inv.RemoveEntries(refs); err != nil {
		c.fail(err)
		return
	}
	c.status()
}

func (c *Console) cmdClear() {
	if c.shop == "" || c.register == "" {
		c.printf("seleccione primero tienda y caja\n")
		return
	}
	if err := c.inv.ClearScope(c.shop, c.register); err != nil {
		c.fail(err)
		return
	}
	c.status()
}

func (c *Console) cmdRemoveRegister() {
	if c.shop == "" || c.register == "" {
		c.printf("seleccione primero tienda y caja\n")
		return
	}
	if err := c.inv.RemoveRegister(c.shop, c.register); err != nil {
		c.fail(err)
		return
	}
	c.printf("caja %s eliminada\n", c.register)
	c.register = ""
}

func (c *Console) cmdRemoveShop() {
	if c.shop == "" {
		c.printf("seleccione primero una tienda\n")
		return
	}
	if err := c.inv.RemoveShop(c.shop); err != nil {
		c.fail(err)
		return
	}
	c.printf("tienda %s eliminada\n", c.shop)
	c.shop, c.register = "", ""
}

func (c *Console) cmdImport(args []string) {
	if len(args) != 1 {
		c.printf("uso: importar <ruta>\n")
		return
	}
	n, err := c.inv.Import(csvfile.New(args[0], c.log))
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("importadas %d posiciones\n", n)
}

func (c *Console) cmdExport(args []string) {
	if len(args) != 1 {
		c.printf("uso: exportar pdf|xlsx\n")
		return
	}
	stamp := time.Now().Format("20060102_150405")
	switch args[0] {
	case "pdf":
		if c.shop == "" {
			c.printf("seleccione primero una tienda\n")
			return
		}
		path := c.export.PDFPath(c.shop, stamp)
		if err := c.reports.ExportShopPDF(c.shop, path); err != nil {
			c.fail(err)
			return
		}
		c.printf("reporte escrito en %s\n", path)
	case "xlsx":
		path := c.export.XLSXPath(stamp)
		if err := c.reports.ExportWorkbook(path); err != nil {
			c.fail(err)
			return
		}
		c.printf("libro escrito en %s\n", path)
	default:
		c.printf("formato desconocido %q\n", args[0])
	}
}

// resolve convierte un número de posición (1..N dentro del ámbito activo) en
// la referencia estable de la posición. La numeración es solo de la vista:
// el núcleo nunca direcciona por posición.
func (c *Console) resolve(arg string) (string, bool) {
	if c.shop == "" || c.register == "" {
		c.printf("seleccione primero tienda y caja\n")
		return "", false
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		c.printf("número de posición inválido %q\n", arg)
		return "", false
	}
	entries := c.inv.ListEntries(c.shop, c.register)
	if n > len(entries) {
		c.printf("no existe la posición %d (hay %d)\n", n, len(entries))
		return "", false
	}
	return entries[n-1].Ref, true
}

func (c *Console) status() {
	if c.shop == "" || c.register == "" {
		return
	}
	s := c.inv.Summary(c.shop, c.register)
	c.printf("posiciones: %d\n", s.Count)
}

func (c *Console) prompt() {
	scope := "-"
	if c.shop != "" {
		scope = c.shop
		if c.register != "" {
			scope += "/" + c.register
		}
	}
	c.printf("[%s] ", scope)
}

// fail traduce errores de dominio a mensajes para el operador.
func (c *Console) fail(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidScope):
		c.printf("ámbito no registrado: agregue la tienda y la caja primero\n")
	case errors.Is(err, domain.ErrNotFound):
		c.printf("la posición ya no existe\n")
	default:
		c.printf("error: %v (el archivo puede estar atrasado respecto a la memoria)\n", err)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
