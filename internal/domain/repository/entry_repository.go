package repository

import "github.com/tu-usuario/inventario-equipos/internal/domain/entity"

// EntryRepository define el puerto de persistencia para las posiciones del
// conteo (DIP). Save reemplaza el contenido previo con la colección completa;
// Load devuelve la colección en el orden persistido (vacía si no hay archivo).
type EntryRepository interface {
	Save(entries []*entity.Entry) error
	Load() ([]*entity.Entry, error)
}
