// Package ledger implementa el libro de stock multi-ubicación: cantidades
// materializadas por (insumo, ubicación) y su historia append-only. Todo
// cambio de cantidad pasa por ApplyDelta; nadie más escribe Quantity.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// StockLedger es el primitivo fundacional: los demás componentes (traslados,
// recepciones, mermas, auditorías, pedidos) componen sobre él.
type StockLedger struct {
	txRunner       TxRunner
	stockRepo      repository.StockRepository
	txnRepo        repository.StockTransactionRepository
	ingredientRepo repository.IngredientRepository
	notifier       Notifier
	log            *logger.Logger
}

// NewStockLedger construye el ledger.
func NewStockLedger(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	ingredientRepo repository.IngredientRepository,
	notifier Notifier,
	log *logger.Logger,
) *StockLedger {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &StockLedger{
		txRunner:       txRunner,
		stockRepo:      stockRepo,
		txnRepo:        txnRepo,
		ingredientRepo: ingredientRepo,
		notifier:       notifier,
		log:            log.Component("ledger"),
	}
}

// DeltaInput describe una mutación de cantidad. Delta es firmado; el tipo y
// la razón quedan en la fila del ledger junto al snapshot antes/después.
type DeltaInput struct {
	IngredientID string
	Location     entity.Location
	Delta        decimal.Decimal
	Type         string
	Reason       string
	ReferenceID  string
}

// StockView es un insumo del maestro fusionado con su stock en UNA ubicación
// (semántica de left-join: cantidad cero si aún no hay registro).
type StockView struct {
	Ingredient   *entity.Ingredient
	Quantity     decimal.Decimal
	MinThreshold decimal.Decimal
	IsLow        bool
	LastUpdated  time.Time
}

// Get devuelve cantidad y umbral del par (insumo, ubicación), con cantidad
// cero y umbral por defecto si el registro todavía no existe.
func (l *StockLedger) Get(ctx context.Context, scope rbac.Scope, ingredientID string, loc entity.Location) (*entity.StockRecord, error) {
	if ingredientID == "" || !loc.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if err := scope.CanRead(loc); err != nil {
		return nil, err
	}
	ing, err := l.ingredientRepo.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	rec, err := l.stockRepo.Get(ctx, ingredientID, loc)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &entity.StockRecord{
			IngredientID: ingredientID,
			Location:     loc,
			Quantity:     decimal.Zero,
			MinThreshold: entity.DefaultMinThreshold,
		}
	}
	return rec, nil
}

// List devuelve todo el maestro de insumos fusionado con el stock de la
// ubicación pedida, nunca un total global entre ubicaciones.
func (l *StockLedger) List(ctx context.Context, scope rbac.Scope, loc entity.Location) ([]StockView, error) {
	if !loc.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if err := scope.CanRead(loc); err != nil {
		return nil, err
	}
	ingredients, err := l.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := l.stockRepo.ListByLocation(ctx, loc)
	if err != nil {
		return nil, err
	}
	byIngredient := make(map[string]*entity.StockRecord, len(records))
	for _, r := range records {
		byIngredient[r.IngredientID] = r
	}
	views := make([]StockView, 0, len(ingredients))
	for _, ing := range ingredients {
		v := StockView{Ingredient: ing, Quantity: decimal.Zero, MinThreshold: entity.DefaultMinThreshold}
		if r, ok := byIngredient[ing.ID]; ok {
			v.Quantity = r.Quantity
			v.MinThreshold = r.MinThreshold
			v.LastUpdated = r.LastUpdated
		}
		v.IsLow = v.Quantity.LessThan(v.MinThreshold)
		views = append(views, v)
	}
	return views, nil
}

// History devuelve las filas del ledger del par, más reciente primero.
func (l *StockLedger) History(ctx context.Context, scope rbac.Scope, ingredientID string, loc entity.Location, limit, offset int) ([]*entity.StockTransaction, error) {
	if ingredientID == "" || !loc.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if err := scope.CanRead(loc); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return l.txnRepo.ListByStock(ctx, ingredientID, loc, limit, offset)
}

// SetThreshold cambia el umbral mínimo (un manager puede hacerlo en su
// ubicación). Crea el registro con cantidad cero si aún no existe.
func (l *StockLedger) SetThreshold(ctx context.Context, scope rbac.Scope, ingredientID string, loc entity.Location, threshold decimal.Decimal) error {
	if ingredientID == "" || !loc.IsValid() || threshold.IsNegative() {
		return domain.ErrInvalidInput
	}
	if err := scope.CanMutateStock(loc); err != nil {
		return err
	}
	ing, err := l.ingredientRepo.GetByID(ctx, ingredientID)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	rec, err := l.stockRepo.Get(ctx, ingredientID, loc)
	if err != nil {
		return err
	}
	if rec == nil {
		_, err := l.stockRepo.InsertIfAbsent(ctx, &entity.StockRecord{
			IngredientID: ingredientID,
			Location:     loc,
			Quantity:     decimal.Zero,
			MinThreshold: threshold,
			LastUpdated:  now,
		})
		return err
	}
	return l.stockRepo.UpdateThreshold(ctx, ingredientID, loc, threshold, now)
}

// ApplyDelta es el único primitivo que cambia Quantity. Valida antes de
// cualquier I/O, ejecuta la mutación CAS y la fila del ledger en una misma
// transacción, y tras confirmar publica la notificación best-effort.
func (l *StockLedger) ApplyDelta(ctx context.Context, scope rbac.Scope, in DeltaInput) (*entity.StockTransaction, error) {
	if err := validateDelta(in); err != nil {
		return nil, err
	}
	if err := scope.CanMutateStock(in.Location); err != nil {
		return nil, err
	}

	now := time.Now()
	var txn *entity.StockTransaction
	var rec *entity.StockRecord
	err := l.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		var err error
		txn, rec, err = l.ApplyDeltaInTx(ctx, stockRepo, txnRepo, ingredientRepo, scope, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	l.Notify(ctx, rec)
	return txn, nil
}

// ApplyDeltaInTx ejecuta la mutación usando los repositorios del caller
// (misma transacción). Lo usan los compuestos: traslados, recepciones y
// hooks de pedidos. El caller es responsable de Notify tras su commit.
//
// Secuencia: verificar el insumo en el maestro → leer cantidad actual →
// calcular candidata → escribir con guarda CAS sobre el valor leído →
// insertar exactamente una fila del ledger. Un insumo inexistente devuelve
// ErrNotFound; un delta negativo que dejaría la cantidad < 0 devuelve
// ErrInsufficientStock sin escribir; una guarda perdida devuelve
// ErrConcurrencyConflict.
func (l *StockLedger) ApplyDeltaInTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	ingredientRepo repository.IngredientRepository,
	scope rbac.Scope,
	in DeltaInput,
	now time.Time,
) (*entity.StockTransaction, *entity.StockRecord, error) {
	if err := validateDelta(in); err != nil {
		return nil, nil, err
	}
	if err := scope.CanMutateStock(in.Location); err != nil {
		return nil, nil, err
	}
	ing, err := ingredientRepo.GetByID(ctx, in.IngredientID)
	if err != nil {
		return nil, nil, err
	}
	if ing == nil {
		return nil, nil, domain.ErrNotFound
	}

	rec, err := stockRepo.Get(ctx, in.IngredientID, in.Location)
	if err != nil {
		return nil, nil, err
	}
	prev := decimal.Zero
	if rec != nil {
		prev = rec.Quantity
	}
	newQty := prev.Add(in.Delta)
	if newQty.IsNegative() {
		return nil, nil, domain.ErrInsufficientStock
	}

	if rec == nil {
		// Creación perezosa: la primera escritura del par crea el registro.
		rec = &entity.StockRecord{
			IngredientID: in.IngredientID,
			Location:     in.Location,
			Quantity:     newQty,
			MinThreshold: entity.DefaultMinThreshold,
			LastUpdated:  now,
		}
		created, err := stockRepo.InsertIfAbsent(ctx, rec)
		if err != nil {
			return nil, nil, err
		}
		if !created {
			return nil, nil, domain.ErrConcurrencyConflict
		}
	} else {
		swapped, err := stockRepo.CompareAndSwapQuantity(ctx, in.IngredientID, in.Location, prev, newQty, now)
		if err != nil {
			return nil, nil, err
		}
		if !swapped {
			return nil, nil, domain.ErrConcurrencyConflict
		}
		rec.Quantity = newQty
		rec.LastUpdated = now
	}

	txn := &entity.StockTransaction{
		ID:              uuid.New().String(),
		IngredientID:    in.IngredientID,
		Location:        in.Location,
		Type:            in.Type,
		QuantityDelta:   in.Delta,
		PreviousQty:     prev,
		NewQty:          newQty,
		Reason:          in.Reason,
		ReferenceID:     in.ReferenceID,
		PerformedBy:     scope.UserID,
		PerformedByName: scope.ActorName(),
		CreatedAt:       now,
	}
	if err := txnRepo.Create(ctx, txn); err != nil {
		return nil, nil, err
	}
	return txn, rec, nil
}

// Notify publica el evento de stock tras un commit. Best-effort: un fallo se
// registra y se descarta, nunca afecta la operación ya confirmada.
func (l *StockLedger) Notify(ctx context.Context, rec *entity.StockRecord) {
	if rec == nil {
		return
	}
	alert := StockAlert{
		IngredientID: rec.IngredientID,
		Location:     rec.Location,
		Quantity:     rec.Quantity,
		IsLowStock:   rec.IsLow(),
	}
	if err := l.notifier.StockChanged(ctx, alert); err != nil {
		l.log.Warn().Err(err).
			Str("ingredient_id", rec.IngredientID).
			Str("location", rec.Location.Key()).
			Msg("notificación de stock descartada")
	}
}

// NotifyCost publica el cambio de costo promedio de un insumo.
func (l *StockLedger) NotifyCost(ctx context.Context, ingredientID string, cost decimal.Decimal) {
	if err := l.notifier.CostChanged(ctx, ingredientID, cost); err != nil {
		l.log.Warn().Err(err).
			Str("ingredient_id", ingredientID).
			Msg("notificación de costo descartada")
	}
}

func validateDelta(in DeltaInput) error {
	if in.IngredientID == "" || !in.Location.IsValid() {
		return domain.ErrInvalidInput
	}
	if !entity.ValidTxnType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Delta.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}
