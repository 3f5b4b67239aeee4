package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-equipos/internal/application/dto"
	"github.com/tu-usuario/inventario-equipos/internal/domain"
	"github.com/tu-usuario/inventario-equipos/internal/domain/classifier"
	"github.com/tu-usuario/inventario-equipos/internal/domain/entity"
	"github.com/tu-usuario/inventario-equipos/internal/domain/hierarchy"
	"github.com/tu-usuario/inventario-equipos/internal/domain/repository"
	"github.com/tu-usuario/inventario-equipos/pkg/logger"
)

// InventoryUseCase es el dueño del estado del conteo: la colección ordenada
// de posiciones, el índice tienda/caja y toda operación de mutación y
// consulta. Cada mutación escribe el estado completo al repositorio antes de
// retornar (write-through); si la escritura falla, la memoria NO se revierte
// y el error se propaga para que el consumidor avise que el archivo puede
// estar atrasado.
//
// No es seguro para uso concurrente: se asume un único escritor lógico
// (el bucle de eventos del consumidor).
type InventoryUseCase struct {
	log     *logger.Logger
	repo    repository.EntryRepository
	index   *hierarchy.Index
	entries []*entity.Entry // orden de inserción = orden canónico de vista
	byRef   map[string]*entity.Entry
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.EntryRepository, log *logger.Logger) *InventoryUseCase {
	return &InventoryUseCase{
		log:   log,
		repo:  repo,
		index: hierarchy.NewIndex(),
		byRef: make(map[string]*entity.Entry),
	}
}

// Load reemplaza el estado completo con el contenido persistido y reconstruye
// la jerarquía a partir de los pares (tienda, caja) observados. Archivo
// ausente equivale a estado vacío.
func (uc *InventoryUseCase) Load() error {
	entries, err := uc.repo.Load()
	if err != nil {
		return fmt.Errorf("cargar inventario: %w", err)
	}
	uc.entries = entries
	uc.byRef = make(map[string]*entity.Entry, len(entries))
	pairs := make([][2]string, 0, len(entries))
	for _, e := range entries {
		uc.byRef[e.ID] = e
		pairs = append(pairs, [2]string{e.Shop, e.Register})
	}
	uc.index.Rebuild(pairs)
	uc.log.Info().Int("posiciones", len(entries)).Int("tiendas", len(uc.index.Shops())).Msg("inventario cargado")
	return nil
}

// Import mezcla las posiciones de otro origen con el estado actual: la
// jerarquía se une, las posiciones se agregan al final, y el resultado se
// persiste. Devuelve cuántas posiciones se agregaron.
func (uc *InventoryUseCase) Import(src repository.EntryRepository) (int, error) {
	entries, err := src.Load()
	if err != nil {
		return 0, fmt.Errorf("importar inventario: %w", err)
	}
	for _, e := range entries {
		// Re-acuñar la referencia: el origen puede compartir IDs con el estado actual.
		e.ID = uuid.New().String()
		uc.index.AddShop(e.Shop)
		_ = uc.index.AddRegister(e.Shop, e.Register)
		uc.entries = append(uc.entries, e)
		uc.byRef[e.ID] = e
	}
	uc.log.Info().Int("posiciones", len(entries)).Msg("importación completada")
	return len(entries), uc.persist()
}

// AddShop registra una tienda. No-op si ya existe.
func (uc *InventoryUseCase) AddShop(id string) error {
	uc.index.AddShop(id)
	return uc.persist()
}

// RemoveShop elimina la tienda en cascada: sus cajas y todas sus posiciones.
func (uc *InventoryUseCase) RemoveShop(id string) error {
	uc.dropEntries(func(e *entity.Entry) bool { return e.Shop == id })
	uc.index.RemoveShop(id)
	uc.log.Debug().Str("tienda", id).Msg("tienda eliminada")
	return uc.persist()
}

// AddRegister registra una caja bajo una tienda existente.
// Devuelve domain.ErrInvalidScope si la tienda no está registrada.
func (uc *InventoryUseCase) AddRegister(shop, id string) error {
	if err := uc.index.AddRegister(shop, id); err != nil {
		return err
	}
	return uc.persist()
}

// RemoveRegister elimina la caja en cascada con sus posiciones.
func (uc *InventoryUseCase) RemoveRegister(shop, id string) error {
	uc.dropEntries(func(e *entity.Entry) bool { return e.Shop == shop && e.Register == id })
	uc.index.RemoveRegister(shop, id)
	return uc.persist()
}

// AddEntry registra un equipo escaneado en el par (tienda, caja) indicado,
// derivando la categoría del código y estampando la hora de registro.
// Devuelve la posición creada con su referencia estable.
func (uc *InventoryUseCase) AddEntry(in dto.AddEntryRequest) (*dto.EntryResponse, error) {
	if !uc.index.HasScope(in.Shop, in.Register) {
		return nil, domain.ErrInvalidScope
	}
	code := strings.TrimSpace(in.Code)
	e := &entity.Entry{
		ID:         uuid.New().String(),
		Shop:       in.Shop,
		Register:   in.Register,
		Code:       code,
		Category:   classifier.Classify(code),
		RecordedAt: time.Now(),
		Notes:      in.Notes,
	}
	uc.entries = append(uc.entries, e)
	uc.byRef[e.ID] = e
	uc.log.Debug().
		Str("tienda", e.Shop).
		Str("caja", e.Register).
		Str("codigo", e.Code).
		Str("tipo", e.Category.String()).
		Msg("posición registrada")
	if err := uc.persist(); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// UpdateEntry edita código, categoría o notas de una posición existente.
// Si cambia el código sin categoría explícita, la categoría se recalcula y
// deja de estar fijada; una categoría explícita queda fijada hasta la próxima
// edición del código. RecordedAt nunca cambia.
// Devuelve domain.ErrNotFound si la referencia ya no existe.
func (uc *InventoryUseCase) UpdateEntry(ref string, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	e, ok := uc.byRef[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		e.Code = strings.TrimSpace(*in.Code)
		if in.Category == nil {
			e.Category = classifier.Classify(e.Code)
			e.Overridden = false
		}
	}
	if in.Category != nil {
		e.Category = entity.Category(*in.Category)
		e.Overridden = true
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
	if err := uc.persist(); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// RemoveEntry elimina una posición por referencia. Una referencia ya
// eliminada es un no-op, no un error.
func (uc *InventoryUseCase) RemoveEntry(ref string) error {
	return uc.RemoveEntries([]string{ref})
}

// RemoveEntries elimina un lote de posiciones por referencia con una sola
// escritura de persistencia. Referencias inexistentes se ignoran.
func (uc *InventoryUseCase) RemoveEntries(refs []string) error {
	drop := make(map[string]bool, len(refs))
	for _, r := range refs {
		if _, ok := uc.byRef[r]; ok {
			drop[r] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}
	uc.dropEntries(func(e *entity.Entry) bool { return drop[e.ID] })
	return uc.persist()
}

// ClearScope elimina todas las posiciones del par (tienda, caja). La
// jerarquía no se toca. No-op si el ámbito no tiene posiciones.
func (uc *InventoryUseCase) ClearScope(shop, register string) error {
	before := len(uc.entries)
	uc.dropEntries(func(e *entity.Entry) bool { return e.Shop == shop && e.Register == register })
	if len(uc.entries) == before {
		return nil
	}
	return uc.persist()
}

// ListEntries devuelve las posiciones del ámbito en orden de inserción
// (vista de solo lectura). Vacía si el ámbito no existe o no tiene posiciones.
func (uc *InventoryUseCase) ListEntries(shop, register string) []dto.EntryResponse {
	var out []dto.EntryResponse
	for _, e := range uc.entries {
		if e.Shop == shop && e.Register == register {
			out = append(out, *toEntryResponse(e))
		}
	}
	return out
}

// Shops devuelve las tiendas registradas, ordenadas.
func (uc *InventoryUseCase) Shops() []string {
	return uc.index.Shops()
}

// RegistersOf devuelve las cajas de una tienda, ordenadas.
func (uc *InventoryUseCase) RegistersOf(shop string) []string {
	return uc.index.RegistersOf(shop)
}

// Summary devuelve el total de posiciones del ámbito y su desglose por
// categoría.
func (uc *InventoryUseCase) Summary(shop, register string) dto.ScopeSummary {
	s := dto.ScopeSummary{
		Shop:       shop,
		Register:   register,
		ByCategory: make(map[string]int),
	}
	for _, e := range uc.entries {
		if e.Shop == shop && e.Register == register {
			s.Count++
			s.ByCategory[e.Category.String()]++
		}
	}
	return s
}

// dropEntries elimina las posiciones que cumplen el predicado preservando el
// orden del resto.
func (uc *InventoryUseCase) dropEntries(match func(*entity.Entry) bool) {
	kept := uc.entries[:0]
	for _, e := range uc.entries {
		if match(e) {
			delete(uc.byRef, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	uc.entries = kept
}

// persist escribe el estado completo. La memoria sigue siendo la fuente de
// verdad aunque la escritura falle.
func (uc *InventoryUseCase) persist() error {
	if err := uc.repo.Save(uc.entries); err != nil {
		uc.log.Error().Err(err).Msg("persistencia fallida; el archivo puede estar atrasado respecto a la memoria")
		return fmt.Errorf("guardar inventario: %w", err)
	}
	return nil
}

func toEntryResponse(e *entity.Entry) *dto.EntryResponse {
	return &dto.EntryResponse{
		Ref:        e.ID,
		Shop:       e.Shop,
		Register:   e.Register,
		Code:       e.Code,
		Category:   e.Category.String(),
		Overridden: e.Overridden,
		RecordedAt: e.RecordedAt,
		Notes:      e.Notes,
	}
}
