package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con contexto (fmt.Errorf + %w) y los handlers
// los mapean a códigos HTTP con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrBatchFailed indica que ningún elemento de una operación por lotes tuvo éxito.
	// Los fallos parciales NO son un error: se devuelven solo los elementos exitosos.
	ErrBatchFailed = errors.New("ningún elemento del lote fue procesado")
)
