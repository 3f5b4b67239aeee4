// Package csvfile implementa el puerto EntryRepository sobre un archivo CSV
// plano con cabecera fija: shop,cash_register,code,type,time,notes (UTF-8).
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-equipos/internal/domain/classifier"
	"github.com/tu-usuario/inventario-equipos/internal/domain/entity"
	"github.com/tu-usuario/inventario-equipos/internal/domain/repository"
	"github.com/tu-usuario/inventario-equipos/pkg/logger"
)

var _ repository.EntryRepository = (*Repository)(nil)

// header orden fijo de columnas del esquema persistido.
var header = []string{"shop", "cash_register", "code", "type", "time", "notes"}

// Repository adaptador de persistencia CSV. Cada Save reemplaza el archivo
// completo de forma atómica: se escribe a un temporal en el mismo directorio
// y se renombra sobre el destino, para que una escritura interrumpida nunca
// deje un archivo a medias.
type Repository struct {
	path string
	log  *logger.Logger
}

// New construye el adaptador para la ruta dada.
func New(path string, log *logger.Logger) *Repository {
	return &Repository{path: path, log: log}
}

// Save escribe la colección completa, reemplazando el contenido previo.
func (r *Repository) Save(entries []*entity.Entry) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de datos: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".inventario-*.csv")
	if err != nil {
		return fmt.Errorf("crear archivo temporal: %w", err)
	}
	defer func() {
		// Si el rename no ocurrió, no dejar basura.
		_ = os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir cabecera: %w", err)
	}
	for _, e := range entries {
		rec := []string{
			e.Shop,
			e.Register,
			e.Code,
			e.Category.String(),
			e.RecordedAt.Format(entity.TimeLayout),
			e.Notes,
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("escribir registro: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("volcar CSV: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar archivo temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("reemplazar %s: %w", r.path, err)
	}
	return nil
}

// Load lee y parsea un guardado previo. Archivo ausente devuelve colección
// vacía, no error. Política ante registros malformados: se omite la fila,
// se registra un warn y se continúa.
func (r *Repository) Load() ([]*entity.Entry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("abrir %s: %w", r.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // la validación por fila es nuestra

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera de %s: %w", r.path, err)
	}
	if !isHeader(first) {
		return nil, fmt.Errorf("%s: cabecera inesperada %v", r.path, first)
	}

	var entries []*entity.Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Fila estructuralmente rota (comillas sin cerrar, etc.).
			r.log.Warn().Err(err).Int("linea", line).Msg("registro ilegible omitido")
			continue
		}
		e, err := parseRecord(rec)
		if err != nil {
			r.log.Warn().Err(err).Int("linea", line).Msg("registro malformado omitido")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// parseRecord convierte una fila en una posición. El esquema no persiste la
// marca de categoría fijada a mano: se reconstruye comparando la etiqueta
// guardada con la que derivaría el clasificador.
func parseRecord(rec []string) (*entity.Entry, error) {
	if len(rec) < len(header) {
		return nil, fmt.Errorf("%d campos, se esperaban %d", len(rec), len(header))
	}
	shop, register, code := rec[0], rec[1], rec[2]
	if shop == "" || register == "" {
		return nil, errors.New("tienda o caja vacía")
	}
	recordedAt, err := time.ParseInLocation(entity.TimeLayout, rec[4], time.Local)
	if err != nil {
		return nil, fmt.Errorf("timestamp %q: %w", rec[4], err)
	}
	cat := entity.Category(rec[3])
	return &entity.Entry{
		ID:         uuid.New().String(),
		Shop:       shop,
		Register:   register,
		Code:       code,
		Category:   cat,
		Overridden: cat != classifier.Classify(code),
		RecordedAt: recordedAt,
		Notes:      rec[5],
	}, nil
}

func isHeader(rec []string) bool {
	if len(rec) != len(header) {
		return false
	}
	for i, h := range header {
		if rec[i] != h {
			return false
		}
	}
	return true
}
