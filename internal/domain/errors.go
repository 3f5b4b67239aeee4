package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrInvalidScope la operación referenció una tienda o caja no registrada.
	ErrInvalidScope = errors.New("ámbito tienda/caja no registrado")
	// ErrNotFound la referencia de posición ya no existe (fue eliminada).
	ErrNotFound = errors.New("posición no encontrada")
	// ErrMalformedRecord un registro cargado no tiene la estructura esperada.
	ErrMalformedRecord = errors.New("registro con formato inválido")
)
