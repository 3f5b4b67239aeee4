package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-equipos/internal/application/dto"
	"github.com/tu-usuario/inventario-equipos/internal/application/usecase"
	"github.com/tu-usuario/inventario-equipos/internal/domain"
	"github.com/tu-usuario/inventario-equipos/internal/domain/entity"
	"github.com/tu-usuario/inventario-equipos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeRepo repositorio en memoria que cuenta escrituras, para verificar el
// write-through sin tocar disco.
// ──────────────────────────────────────────────────────────────────────────────
type fakeRepo struct {
	saves   int
	last    []*entity.Entry
	loaded  []*entity.Entry
	saveErr error
}

func (r *fakeRepo) Save(entries []*entity.Entry) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.last = append([]*entity.Entry(nil), entries...)
	return nil
}

func (r *fakeRepo) Load() ([]*entity.Entry, error) {
	return r.loaded, nil
}

func newUC(t *testing.T) (*usecase.InventoryUseCase, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{}
	return usecase.NewInventoryUseCase(repo, logger.Nop()), repo
}

// seedScope deja registrada la tienda "1" con la caja "1".
func seedScope(t *testing.T, uc *usecase.InventoryUseCase) {
	t.Helper()
	require.NoError(t, uc.AddShop("1"))
	require.NoError(t, uc.AddRegister("1", "1"))
}

// TestAddEntry_Escenario el escenario de referencia: tienda "1", caja "1",
// un terminal de pago de 20 dígitos.
func TestAddEntry_Escenario(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)

	e, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "12345678901234567890"})
	require.NoError(t, err)
	assert.NotEmpty(t, e.Ref)
	assert.False(t, e.RecordedAt.IsZero(), "RecordedAt debe quedar estampado en la creación")

	list := uc.ListEntries("1", "1")
	require.Len(t, list, 1)
	assert.Equal(t, string(entity.CategoryPaymentTerminal), list[0].Category)
}

func TestAddEntry_AmbitoInvalido(t *testing.T) {
	uc, repo := newUC(t)
	seedScope(t, uc)

	_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "99", Code: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidScope)

	_, err = uc.AddEntry(dto.AddEntryRequest{Shop: "99", Register: "1", Code: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidScope)

	// Un alta rechazada no crea jerarquía ni escribe.
	assert.Equal(t, []string{"1"}, uc.Shops())
	assert.Equal(t, 2, repo.saves, "solo las dos escrituras de seedScope")
}

func TestAddEntry_RecortaCodigo(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)

	e, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "  AB123456789  "})
	require.NoError(t, err)
	assert.Equal(t, "AB123456789", e.Code)
	assert.Equal(t, string(entity.CategoryFiscalPrinterNS), e.Category)
}

// TestListEntries_OrdenDeInsercion el orden canónico de la vista es el orden
// de inserción, también con ámbitos intercalados.
func TestListEntries_OrdenDeInsercion(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)
	require.NoError(t, uc.AddRegister("1", "2"))

	for _, code := range []string{"uno", "dos", "tres"} {
		_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: code})
		require.NoError(t, err)
		_, err = uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "2", Code: code + "-b"})
		require.NoError(t, err)
	}

	list := uc.ListEntries("1", "1")
	require.Len(t, list, 3)
	assert.Equal(t, "uno", list[0].Code)
	assert.Equal(t, "dos", list[1].Code)
	assert.Equal(t, "tres", list[2].Code)

	assert.Empty(t, uc.ListEntries("1", "99"), "ámbito inexistente devuelve vista vacía")
}

// TestUpdateEntry_RecalculaCategoria editar el código sin categoría
// explícita recalcula y quita la marca de fijado.
func TestUpdateEntry_RecalculaCategoria(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)
	e, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "hello"})
	require.NoError(t, err)
	require.Equal(t, string(entity.CategoryUnknown), e.Category)

	code := "A12B34567"
	updated, err := uc.UpdateEntry(e.Ref, dto.UpdateEntryRequest{Code: &code})
	require.NoError(t, err)
	assert.Equal(t, string(entity.CategoryScanner), updated.Category)
	assert.False(t, updated.Overridden)
	assert.Equal(t, e.RecordedAt, updated.RecordedAt, "RecordedAt nunca se regenera en una edición")
}

// TestUpdateEntry_CategoriaFijada una asignación explícita gana hasta la
// próxima edición del código; editar la nota no la toca.
func TestUpdateEntry_CategoriaFijada(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)
	e, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "A12B34567"})
	require.NoError(t, err)

	cat := string(entity.CategoryBin)
	updated, err := uc.UpdateEntry(e.Ref, dto.UpdateEntryRequest{Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, cat, updated.Category)
	assert.True(t, updated.Overridden)

	// Una edición no relacionada no descarta la corrección manual.
	notes := "revisado"
	updated, err = uc.UpdateEntry(e.Ref, dto.UpdateEntryRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, cat, updated.Category)
	assert.True(t, updated.Overridden)

	// Editar el código sí recalcula.
	code := "AB123456789"
	updated, err = uc.UpdateEntry(e.Ref, dto.UpdateEntryRequest{Code: &code})
	require.NoError(t, err)
	assert.Equal(t, string(entity.CategoryFiscalPrinterNS), updated.Category)
	assert.False(t, updated.Overridden)
}

// TestUpdateEntry_CodigoYCategoriaJuntos si la misma llamada trae código y
// categoría, la categoría explícita gana sobre el recálculo.
func TestUpdateEntry_CodigoYCategoriaJuntos(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)
	e, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "hello"})
	require.NoError(t, err)

	code := "A12B34567"
	cat := string(entity.CategoryBin)
	updated, err := uc.UpdateEntry(e.Ref, dto.UpdateEntryRequest{Code: &code, Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, cat, updated.Category)
	assert.True(t, updated.Overridden)
}

func TestUpdateEntry_NoExiste(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)

	notes := "x"
	_, err := uc.UpdateEntry("no-existe", dto.UpdateEntryRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRemoveEntry_Idempotente borrar dos veces la misma referencia equivale
// a borrarla una vez.
func TestRemoveEntry_Idempotente(t *testing.T) {
	uc, repo := newUC(t)
	seedScope(t, uc)
	e, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "x"})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveEntry(e.Ref))
	saves := repo.saves
	require.NoError(t, uc.RemoveEntry(e.Ref), "la segunda eliminación es un no-op, no un error")
	assert.Equal(t, saves, repo.saves, "un no-op no escribe")
	assert.Empty(t, uc.ListEntries("1", "1"))
}

// TestRemoveEntries_Duplicados dos posiciones con campos idénticos se
// distinguen por referencia: borrar una no borra la otra.
func TestRemoveEntries_Duplicados(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)
	a, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "igual"})
	require.NoError(t, err)
	b, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "igual"})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveEntry(a.Ref))
	list := uc.ListEntries("1", "1")
	require.Len(t, list, 1)
	assert.Equal(t, b.Ref, list[0].Ref)
}

func TestRemoveEntries_UnaEscrituraPorLote(t *testing.T) {
	uc, repo := newUC(t)
	seedScope(t, uc)
	var refs []string
	for _, code := range []string{"a", "b", "c"} {
		e, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: code})
		require.NoError(t, err)
		refs = append(refs, e.Ref)
	}

	saves := repo.saves
	require.NoError(t, uc.RemoveEntries(refs))
	assert.Equal(t, saves+1, repo.saves, "el lote escribe una sola vez")
	assert.Empty(t, uc.ListEntries("1", "1"))
}

func TestClearScope(t *testing.T) {
	uc, repo := newUC(t)
	seedScope(t, uc)
	require.NoError(t, uc.AddRegister("1", "2"))
	_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "a"})
	require.NoError(t, err)
	_, err = uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "2", Code: "b"})
	require.NoError(t, err)

	require.NoError(t, uc.ClearScope("1", "1"))
	assert.Empty(t, uc.ListEntries("1", "1"))
	assert.Len(t, uc.ListEntries("1", "2"), 1, "los otros ámbitos no se tocan")

	saves := repo.saves
	require.NoError(t, uc.ClearScope("1", "1"), "vaciar un ámbito ya vacío es no-op")
	assert.Equal(t, saves, repo.saves)
}

// TestRemoveShop_Cascada tras eliminar la tienda no queda ninguna posición
// de ninguna de sus cajas y la tienda desaparece de la jerarquía.
func TestRemoveShop_Cascada(t *testing.T) {
	uc, _ := newUC(t)
	require.NoError(t, uc.AddShop("1"))
	require.NoError(t, uc.AddShop("2"))
	require.NoError(t, uc.AddRegister("1", "1"))
	require.NoError(t, uc.AddRegister("1", "2"))
	require.NoError(t, uc.AddRegister("2", "1"))
	for _, reg := range []string{"1", "2"} {
		_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: reg, Code: "x"})
		require.NoError(t, err)
	}
	_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "2", Register: "1", Code: "y"})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveShop("1"))
	assert.Empty(t, uc.ListEntries("1", "1"))
	assert.Empty(t, uc.ListEntries("1", "2"))
	assert.Equal(t, []string{"2"}, uc.Shops())
	assert.Len(t, uc.ListEntries("2", "1"), 1, "la otra tienda conserva lo suyo")
}

func TestRemoveRegister_Cascada(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)
	require.NoError(t, uc.AddRegister("1", "2"))
	_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "a"})
	require.NoError(t, err)
	_, err = uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "2", Code: "b"})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveRegister("1", "1"))
	assert.Empty(t, uc.ListEntries("1", "1"))
	assert.Equal(t, []string{"2"}, uc.RegistersOf("1"))
	assert.Len(t, uc.ListEntries("1", "2"), 1)
}

// TestPersistencia_WriteThrough cada mutación escribe el estado completo
// antes de retornar.
func TestPersistencia_WriteThrough(t *testing.T) {
	uc, repo := newUC(t)

	require.NoError(t, uc.AddShop("1"))
	require.NoError(t, uc.AddRegister("1", "1"))
	_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "x"})
	require.NoError(t, err)

	assert.Equal(t, 3, repo.saves)
	require.Len(t, repo.last, 1)
	assert.Equal(t, "x", repo.last[0].Code)
}

// TestPersistencia_FallaNoRevierte un Save fallido deja la memoria como
// fuente de verdad y propaga el error.
func TestPersistencia_FallaNoRevierte(t *testing.T) {
	uc, repo := newUC(t)
	seedScope(t, uc)

	repo.saveErr = errors.New("disco lleno")
	_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "AB123456789"})
	require.Error(t, err)

	list := uc.ListEntries("1", "1")
	require.Len(t, list, 1, "la posición queda en memoria aunque la escritura falle")
	assert.Equal(t, "AB123456789", list[0].Code)
}

// TestLoad_ReconstruyeJerarquia la carga reemplaza el estado y reconstruye
// el índice como la unión ordenada de los pares observados.
func TestLoad_ReconstruyeJerarquia(t *testing.T) {
	repo := &fakeRepo{loaded: []*entity.Entry{
		{ID: "a", Shop: "10", Register: "2", Code: "x", Category: entity.CategoryUnknown, RecordedAt: time.Now()},
		{ID: "b", Shop: "2", Register: "1", Code: "y", Category: entity.CategoryUnknown, RecordedAt: time.Now()},
		{ID: "c", Shop: "10", Register: "1", Code: "z", Category: entity.CategoryUnknown, RecordedAt: time.Now()},
	}}
	uc := usecase.NewInventoryUseCase(repo, logger.Nop())

	require.NoError(t, uc.Load())
	assert.Equal(t, []string{"2", "10"}, uc.Shops())
	assert.Equal(t, []string{"1", "2"}, uc.RegistersOf("10"))
	require.Len(t, uc.ListEntries("10", "2"), 1)

	// Las posiciones cargadas son direccionables por su referencia.
	require.NoError(t, uc.RemoveEntry("a"))
	assert.Empty(t, uc.ListEntries("10", "2"))
}

func TestSummary(t *testing.T) {
	uc, _ := newUC(t)
	seedScope(t, uc)
	for _, code := range []string{"12345678901234567890", "09876543210987654321", "hello"} {
		_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: code})
		require.NoError(t, err)
	}

	s := uc.Summary("1", "1")
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.ByCategory[string(entity.CategoryPaymentTerminal)])
	assert.Equal(t, 1, s.ByCategory[string(entity.CategoryUnknown)])
}

// TestImport mezcla otro origen con el estado actual re-acuñando las
// referencias para evitar colisiones.
func TestImport(t *testing.T) {
	uc, repo := newUC(t)
	seedScope(t, uc)
	_, err := uc.AddEntry(dto.AddEntryRequest{Shop: "1", Register: "1", Code: "propio"})
	require.NoError(t, err)

	src := &fakeRepo{loaded: []*entity.Entry{
		{ID: "ajeno", Shop: "7", Register: "1", Code: "importado", Category: entity.CategoryUnknown, RecordedAt: time.Now()},
	}}
	n, err := uc.Import(src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []string{"1", "7"}, uc.Shops())
	require.Len(t, uc.ListEntries("7", "1"), 1)
	assert.NotEqual(t, "ajeno", uc.ListEntries("7", "1")[0].Ref, "la referencia se re-acuña")
	require.Len(t, repo.last, 2, "el estado mezclado se persiste completo")
}
