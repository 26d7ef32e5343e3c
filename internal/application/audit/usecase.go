// Package audit implementa el conteo físico: el auditor declara la cantidad
// real por insumo y el ledger registra el ajuste (AUDIT_ADJUSTMENT) con la
// diferencia contra lo que dice el sistema.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// DefaultReason razón cuando el auditor no indica una.
const DefaultReason = "End of Day Audit"

// Estados por ítem del resultado del conteo.
const (
	ItemUpdated  = "UPDATED"
	ItemNoChange = "NO_CHANGE"
	ItemFailed   = "FAILED"
)

// AuditUseCase concilia conteos físicos contra el ledger.
type AuditUseCase struct {
	txRunner ledger.TxRunner
	stock    *ledger.StockLedger
	log      *logger.Logger
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(txRunner ledger.TxRunner, stock *ledger.StockLedger, log *logger.Logger) *AuditUseCase {
	return &AuditUseCase{txRunner: txRunner, stock: stock, log: log.Component("audit")}
}

// CountInput cantidad física contada de un insumo. ActualQty nulo significa
// que el insumo no se contó: la línea se salta sin ajustar.
type CountInput struct {
	IngredientID string
	ActualQty    *decimal.Decimal
}

// SubmitInput un conteo completo sobre una ubicación.
type SubmitInput struct {
	Location entity.Location
	Counts   []CountInput
	Reason   string
}

// ItemResult resultado por insumo del conteo.
type ItemResult struct {
	IngredientID string          `json:"ingredient_id"`
	Status       string          `json:"status"`
	Delta        decimal.Decimal `json:"delta"`
	Error        string          `json:"error,omitempty"`
}

// SubmitResult resumen del conteo aplicado.
type SubmitResult struct {
	AuditID  string       `json:"audit_id"`
	Location string       `json:"location"`
	Items    []ItemResult `json:"items"`
	Updated  int          `json:"updated"`
	NoChange int          `json:"no_change"`
	Failed   int          `json:"failed"`
}

// Submit aplica el conteo ítem por ítem, cada uno en su propia transacción:
// un insumo que falla no bloquea al resto. Si la cantidad contada coincide
// con la del sistema no se escribe nada (NO_CHANGE). Todos los ajustes del
// mismo conteo comparten el referenceID.
func (uc *AuditUseCase) Submit(ctx context.Context, scope rbac.Scope, in SubmitInput) (*SubmitResult, error) {
	if !in.Location.IsValid() || len(in.Counts) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := scope.CanMutateStock(in.Location); err != nil {
		return nil, err
	}
	reason := in.Reason
	if reason == "" {
		reason = DefaultReason
	}

	result := &SubmitResult{
		AuditID:  uuid.New().String(),
		Location: in.Location.Key(),
		Items:    make([]ItemResult, 0, len(in.Counts)),
	}

	for _, count := range in.Counts {
		item := uc.reconcileOne(ctx, scope, in.Location, count, reason, result.AuditID)
		switch item.Status {
		case ItemUpdated:
			result.Updated++
		case ItemNoChange:
			result.NoChange++
		default:
			result.Failed++
		}
		result.Items = append(result.Items, item)
	}

	uc.log.Info().Str("audit_id", result.AuditID).Str("location", result.Location).
		Int("updated", result.Updated).Int("no_change", result.NoChange).
		Int("failed", result.Failed).Msg("conteo físico aplicado")
	return result, nil
}

func (uc *AuditUseCase) reconcileOne(ctx context.Context, scope rbac.Scope, loc entity.Location, count CountInput, reason, auditID string) ItemResult {
	item := ItemResult{IngredientID: count.IngredientID}
	if count.IngredientID == "" || (count.ActualQty != nil && count.ActualQty.IsNegative()) {
		item.Status = ItemFailed
		item.Error = domain.ErrInvalidInput.Error()
		return item
	}
	if count.ActualQty == nil {
		// Línea sin cantidad: el insumo no se contó, no hay nada que conciliar.
		item.Status = ItemNoChange
		return item
	}

	var rec *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		ing, err := ingredientRepo.GetByID(ctx, count.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		current, err := stockRepo.Get(ctx, count.IngredientID, loc)
		if err != nil {
			return err
		}
		systemQty := decimal.Zero
		if current != nil {
			systemQty = current.Quantity
		}
		delta := count.ActualQty.Sub(systemQty)
		item.Delta = delta
		if delta.IsZero() {
			item.Status = ItemNoChange
			return nil
		}
		_, rec, err = uc.stock.ApplyDeltaInTx(ctx, stockRepo, txnRepo, ingredientRepo, scope, ledger.DeltaInput{
			IngredientID: count.IngredientID,
			Location:     loc,
			Delta:        delta,
			Type:         entity.TxnTypeAuditAdjustment,
			Reason:       reason,
			ReferenceID:  auditID,
		}, time.Now())
		if err != nil {
			return err
		}
		item.Status = ItemUpdated
		return nil
	})
	if err != nil {
		item.Status = ItemFailed
		item.Error = err.Error()
		return item
	}
	if rec != nil {
		uc.stock.Notify(ctx, rec)
	}
	return item
}
