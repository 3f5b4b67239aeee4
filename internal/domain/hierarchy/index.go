// Package hierarchy mantiene la jerarquía de dos niveles tienda -> cajas
// registradoras, con los identificadores siempre ordenados bajo un
// comparador consciente de valores numéricos.
package hierarchy

import (
	"sort"
	"strconv"

	"github.com/tu-usuario/inventario-equipos/internal/domain"
)

// CompareIDs compara dos identificadores de tienda o caja.
//
// Regla (única en todo el sistema): se intenta interpretar cada identificador
// como entero; los numéricos ordenan por valor ascendente y siempre antes que
// los no numéricos; los no numéricos ordenan lexicográficamente entre sí.
// Dos numéricos de igual valor ("1" y "01") desempatan lexicográficamente
// para que el orden sea total y estable.
func CompareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
		// mismo valor numérico: desempate por string
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortIDs ordena in situ bajo CompareIDs.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return CompareIDs(ids[i], ids[j]) < 0 })
}

// Index conoce las tiendas registradas y, por tienda, sus cajas. No es
// seguro para uso concurrente: el núcleo asume un único escritor lógico.
type Index struct {
	shops     []string
	registers map[string][]string
}

// NewIndex construye un índice vacío.
func NewIndex() *Index {
	return &Index{registers: make(map[string][]string)}
}

// AddShop registra una tienda. No-op si ya existe.
func (ix *Index) AddShop(id string) {
	if ix.HasShop(id) {
		return
	}
	ix.shops = append(ix.shops, id)
	SortIDs(ix.shops)
	ix.registers[id] = nil
}

// RemoveShop elimina la tienda y su conjunto de cajas. No-op si no existe;
// el llamador es responsable de eliminar en cascada las posiciones.
func (ix *Index) RemoveShop(id string) {
	for i, s := range ix.shops {
		if s == id {
			ix.shops = append(ix.shops[:i], ix.shops[i+1:]...)
			delete(ix.registers, id)
			return
		}
	}
}

// AddRegister registra una caja bajo una tienda ya conocida.
// Devuelve domain.ErrInvalidScope si la tienda no existe.
func (ix *Index) AddRegister(shop, id string) error {
	if !ix.HasShop(shop) {
		return domain.ErrInvalidScope
	}
	for _, r := range ix.registers[shop] {
		if r == id {
			return nil
		}
	}
	ix.registers[shop] = append(ix.registers[shop], id)
	SortIDs(ix.registers[shop])
	return nil
}

// RemoveRegister elimina una caja. No-op si la tienda o la caja no existen.
func (ix *Index) RemoveRegister(shop, id string) {
	regs := ix.registers[shop]
	for i, r := range regs {
		if r == id {
			ix.registers[shop] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

// HasShop indica si la tienda está registrada.
func (ix *Index) HasShop(id string) bool {
	for _, s := range ix.shops {
		if s == id {
			return true
		}
	}
	return false
}

// HasScope indica si el par (tienda, caja) está registrado.
func (ix *Index) HasScope(shop, register string) bool {
	for _, r := range ix.registers[shop] {
		if r == register {
			return true
		}
	}
	return false
}

// Shops devuelve las tiendas ordenadas (copia).
func (ix *Index) Shops() []string {
	out := make([]string, len(ix.shops))
	copy(out, ix.shops)
	return out
}

// RegistersOf devuelve las cajas de una tienda ordenadas (copia).
// Secuencia vacía si la tienda no existe.
func (ix *Index) RegistersOf(shop string) []string {
	regs := ix.registers[shop]
	out := make([]string, len(regs))
	copy(out, regs)
	return out
}

// Rebuild reconstruye el índice como la unión de los pares (tienda, caja)
// observados, deduplicados y ordenados. Se usa tras una carga masiva, donde
// las posiciones definen la jerarquía.
func (ix *Index) Rebuild(pairs [][2]string) {
	ix.shops = nil
	ix.registers = make(map[string][]string)
	for _, p := range pairs {
		ix.AddShop(p[0])
		_ = ix.AddRegister(p[0], p[1])
	}
}
