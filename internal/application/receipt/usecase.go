// Package receipt implementa el ciclo de vida de la recepción de mercancía:
// PENDING → COMPLETED (entra stock y se recalcula el costo promedio) o
// PENDING → CANCELLED. Ningún otro estado ni transición existe.
package receipt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/inventory"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// ReceiptUseCase gestiona recepciones de mercancía sobre el ledger.
type ReceiptUseCase struct {
	txRunner       ledger.TxRunner
	receiptRepo    repository.ImportReceiptRepository
	supplierRepo   repository.SupplierRepository
	ingredientRepo repository.IngredientRepository
	stock          *ledger.StockLedger
	log            *logger.Logger
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner ledger.TxRunner,
	receiptRepo repository.ImportReceiptRepository,
	supplierRepo repository.SupplierRepository,
	ingredientRepo repository.IngredientRepository,
	stock *ledger.StockLedger,
	log *logger.Logger,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:       txRunner,
		receiptRepo:    receiptRepo,
		supplierRepo:   supplierRepo,
		ingredientRepo: ingredientRepo,
		stock:          stock,
		log:            log.Component("receipt"),
	}
}

// CreateItemInput línea de una recepción nueva.
type CreateItemInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
}

// CreateInput parámetros para crear una recepción en estado PENDING.
type CreateInput struct {
	SupplierID string
	Location   entity.Location
	Items      []CreateItemInput
	Notes      string
}

// Create persiste la recepción en PENDING sin efecto sobre el stock. El
// código secuencial del día se asigna dentro de la misma transacción que
// inserta; si dos instancias compiten por el mismo número, el índice único
// de code lo convierte en ErrConcurrencyConflict y el caller reintenta.
func (uc *ReceiptUseCase) Create(ctx context.Context, scope rbac.Scope, in CreateInput) (*entity.ImportReceipt, error) {
	if in.SupplierID == "" || !in.Location.IsValid() || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := scope.CanMutateStock(in.Location); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	// Validar líneas y desnormalizar nombre/unidad antes de abrir la tx.
	items := make([]entity.ReceiptItem, 0, len(in.Items))
	total := decimal.Zero
	for _, li := range in.Items {
		if li.IngredientID == "" || !li.Quantity.GreaterThan(decimal.Zero) || li.PricePerUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		ing, err := uc.ingredientRepo.GetByID(ctx, li.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, domain.ErrNotFound
		}
		lineTotal := li.Quantity.Mul(li.PricePerUnit)
		total = total.Add(lineTotal)
		items = append(items, entity.ReceiptItem{
			IngredientID:   li.IngredientID,
			IngredientName: ing.Name,
			Quantity:       li.Quantity,
			Unit:           ing.Unit,
			PricePerUnit:   li.PricePerUnit,
			Total:          lineTotal,
		})
	}

	now := time.Now()
	rc := &entity.ImportReceipt{
		ID:            uuid.New().String(),
		SupplierID:    in.SupplierID,
		Location:      in.Location,
		Items:         items,
		TotalAmount:   total,
		Status:        entity.ReceiptStatusPending,
		Notes:         in.Notes,
		CreatedBy:     scope.UserID,
		CreatedByName: scope.ActorName(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunReceipt(ctx, func(
		_ repository.StockRepository,
		_ repository.StockTransactionRepository,
		_ repository.IngredientRepository,
		receiptRepo repository.ImportReceiptRepository,
	) error {
		latest, err := receiptRepo.LatestCodeForDay(ctx, dayPrefix(now))
		if err != nil {
			return err
		}
		rc.Code = nextCode(latest, now)
		return receiptRepo.Create(ctx, rc)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Otra instancia tomó el mismo número del día.
			return nil, domain.ErrConcurrencyConflict
		}
		return nil, err
	}

	uc.log.Info().Str("code", rc.Code).Str("supplier_id", rc.SupplierID).
		Str("location", rc.Location.Key()).Msg("recepción creada")
	return rc, nil
}

// Complete pasa la recepción de PENDING a COMPLETED: por cada línea aplica
// el delta IMPORT (referenceID = código) y recalcula el costo promedio
// ponderado del insumo, todo en UNA transacción. Cualquier fallo deja la
// recepción en PENDING y el stock intacto. Solo admin.
func (uc *ReceiptUseCase) Complete(ctx context.Context, scope rbac.Scope, receiptID string) (*entity.ImportReceipt, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var rc *entity.ImportReceipt
	var touched []*entity.StockRecord
	costByIngredient := make(map[string]decimal.Decimal)

	err := uc.txRunner.RunReceipt(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		ingredientRepo repository.IngredientRepository,
		receiptRepo repository.ImportReceiptRepository,
	) error {
		var err error
		rc, err = receiptRepo.GetByIDForUpdate(ctx, receiptID)
		if err != nil {
			return err
		}
		if rc == nil {
			return domain.ErrNotFound
		}
		if !rc.IsPending() {
			return domain.ErrInvalidStateTransition
		}

		for _, item := range rc.Items {
			ing, err := ingredientRepo.GetByID(ctx, item.IngredientID)
			if err != nil {
				return err
			}
			if ing == nil {
				return domain.ErrNotFound
			}
			txn, rec, err := uc.stock.ApplyDeltaInTx(ctx, stockRepo, txnRepo, ingredientRepo, scope, ledger.DeltaInput{
				IngredientID: item.IngredientID,
				Location:     rc.Location,
				Delta:        item.Quantity,
				Type:         entity.TxnTypeImport,
				Reason:       "Entrada por recepción " + rc.Code,
				ReferenceID:  rc.Code,
			}, now)
			if err != nil {
				return err
			}
			touched = append(touched, rec)

			// Costo promedio ponderado sobre la cantidad previa al delta.
			prevCost := ing.CostPrice
			if c, ok := costByIngredient[item.IngredientID]; ok {
				prevCost = c
			}
			newCost := inventory.WeightedAverageCost(txn.PreviousQty, prevCost, item.Quantity, item.PricePerUnit)
			if !newCost.Equal(prevCost) {
				if err := ingredientRepo.UpdateCost(ctx, item.IngredientID, newCost); err != nil {
					return err
				}
			}
			costByIngredient[item.IngredientID] = newCost
		}

		rc.Status = entity.ReceiptStatusCompleted
		rc.CompletedBy = scope.UserID
		rc.CompletedByName = scope.ActorName()
		rc.CompletedAt = &now
		rc.UpdatedAt = now
		return receiptRepo.Update(ctx, rc)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("code", rc.Code).Int("items", len(rc.Items)).Msg("recepción completada")

	for _, rec := range touched {
		uc.stock.Notify(ctx, rec)
	}
	for id, cost := range costByIngredient {
		uc.stock.NotifyCost(ctx, id, cost)
	}
	return rc, nil
}

// Cancel pasa la recepción de PENDING a CANCELLED (terminal, sin efecto
// sobre el stock) y deja la razón anotada en las notas.
func (uc *ReceiptUseCase) Cancel(ctx context.Context, scope rbac.Scope, receiptID, reason string) (*entity.ImportReceipt, error) {
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}
	var rc *entity.ImportReceipt
	err := uc.txRunner.RunReceipt(ctx, func(
		_ repository.StockRepository,
		_ repository.StockTransactionRepository,
		_ repository.IngredientRepository,
		receiptRepo repository.ImportReceiptRepository,
	) error {
		var err error
		rc, err = receiptRepo.GetByIDForUpdate(ctx, receiptID)
		if err != nil {
			return err
		}
		if rc == nil {
			return domain.ErrNotFound
		}
		if err := scope.CanMutateStock(rc.Location); err != nil {
			return err
		}
		if !rc.IsPending() {
			return domain.ErrInvalidStateTransition
		}
		if reason == "" {
			reason = "Sin razón"
		}
		rc.Status = entity.ReceiptStatusCancelled
		rc.Notes = rc.Notes + " [Cancelled: " + reason + "]"
		rc.UpdatedAt = time.Now()
		return receiptRepo.Update(ctx, rc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("code", rc.Code).Msg("recepción cancelada")
	return rc, nil
}

// Get devuelve una recepción.
func (uc *ReceiptUseCase) Get(ctx context.Context, scope rbac.Scope, receiptID string) (*entity.ImportReceipt, error) {
	if receiptID == "" {
		return nil, domain.ErrInvalidInput
	}
	rc, err := uc.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, domain.ErrNotFound
	}
	if err := scope.CanReadBackoffice(rc.Location); err != nil {
		return nil, err
	}
	return rc, nil
}

// List devuelve recepciones filtradas por estado y ubicación. Un manager
// solo ve las de su ubicación.
func (uc *ReceiptUseCase) List(ctx context.Context, scope rbac.Scope, filter repository.ReceiptListFilter) ([]*entity.ImportReceipt, error) {
	if scope.Role == entity.RoleManager {
		home := scope.Home
		filter.Location = &home
	}
	if filter.Location != nil {
		if err := scope.CanReadBackoffice(*filter.Location); err != nil {
			return nil, err
		}
	} else if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return uc.receiptRepo.List(ctx, filter)
}
