package repository

import (
	"context"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// ReceiptListFilter filtros de listado de recepciones.
type ReceiptListFilter struct {
	Status   string // vacío = todos
	Location *entity.Location
	Limit    int
}

// ImportReceiptRepository puerto de persistencia de recepciones de mercancía.
type ImportReceiptRepository interface {
	Create(ctx context.Context, r *entity.ImportReceipt) error
	GetByID(ctx context.Context, id string) (*entity.ImportReceipt, error)
	// GetByIDForUpdate carga la recepción bloqueando la fila para el resto de
	// la transacción (guarda del estado PENDING).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ImportReceipt, error)
	List(ctx context.Context, filter ReceiptListFilter) ([]*entity.ImportReceipt, error)
	// Update persiste estado, notas y campos de completado.
	Update(ctx context.Context, r *entity.ImportReceipt) error
	// LatestCodeForDay devuelve el código con mayor número de secuencia del
	// día ("" si no hay), comparando el sufijo numéricamente. Debe llamarse
	// dentro de la misma transacción que
	// inserta la recepción: el índice único sobre code convierte una carrera
	// entre instancias en un conflicto detectable.
	LatestCodeForDay(ctx context.Context, prefix string) (string, error)
}
