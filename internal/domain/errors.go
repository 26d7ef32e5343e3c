package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; los casos de uso solo razonan sobre estos.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrConcurrencyConflict    = errors.New("conflicto de concurrencia: la fila cambió entre lectura y escritura")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
)
