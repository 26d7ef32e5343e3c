// Package order expone los hooks que el sistema de pedidos invoca contra el
// inventario: descontar insumos al confirmar un pedido y devolverlos si se
// cancela. Ambos hooks son idempotentes por pedido.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// OrderHookUseCase aplica los efectos de pedidos sobre el ledger.
type OrderHookUseCase struct {
	txRunner ledger.TxRunner
	stock    *ledger.StockLedger
	log      *logger.Logger
}

// NewOrderHookUseCase construye el caso de uso.
func NewOrderHookUseCase(txRunner ledger.TxRunner, stock *ledger.StockLedger, log *logger.Logger) *OrderHookUseCase {
	return &OrderHookUseCase{txRunner: txRunner, stock: stock, log: log.Component("order")}
}

// LineInput insumo consumido por un pedido.
type LineInput struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// HookInput efecto de un pedido sobre una ubicación.
type HookInput struct {
	OrderID  string
	Location entity.Location
	Lines    []LineInput
}

// HookResult resultado del hook. AlreadyApplied indica que el pedido ya fue
// procesado antes y la llamada no escribió nada.
type HookResult struct {
	OrderID        string                     `json:"order_id"`
	AlreadyApplied bool                       `json:"already_applied"`
	Transactions   []*entity.StockTransaction `json:"transactions,omitempty"`
}

// DeductForOrder descuenta los insumos de un pedido confirmado en una sola
// transacción. Reintentos con el mismo OrderID no duplican el descuento: la
// existencia de un SALE negativo con ese referenceID se verifica dentro de
// la misma transacción que escribe.
func (uc *OrderHookUseCase) DeductForOrder(ctx context.Context, scope rbac.Scope, in HookInput) (*HookResult, error) {
	return uc.apply(ctx, scope, in, true)
}

// RestockForOrder devuelve los insumos de un pedido cancelado. Idempotente
// igual que DeductForOrder, pero sobre el SALE positivo.
func (uc *OrderHookUseCase) RestockForOrder(ctx context.Context, scope rbac.Scope, in HookInput) (*HookResult, error) {
	return uc.apply(ctx, scope, in, false)
}

func (uc *OrderHookUseCase) apply(ctx context.Context, scope rbac.Scope, in HookInput, deduct bool) (*HookResult, error) {
	if in.OrderID == "" || !in.Location.IsValid() || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.IngredientID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	if err := scope.CanMutateStock(in.Location); err != nil {
		return nil, err
	}

	reason := "Consumo pedido " + in.OrderID
	if !deduct {
		reason = "Devolución pedido " + in.OrderID
	}

	now := time.Now()
	result := &HookResult{OrderID: in.OrderID}
	var touched []*entity.StockRecord

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		applied, err := txnRepo.ExistsByReference(ctx, in.OrderID, entity.TxnTypeSale, deduct)
		if err != nil {
			return err
		}
		if applied {
			result.AlreadyApplied = true
			return nil
		}
		for _, line := range in.Lines {
			delta := line.Quantity
			if deduct {
				delta = delta.Neg()
			}
			txn, rec, err := uc.stock.ApplyDeltaInTx(ctx, stockRepo, txnRepo, ingredientRepo, scope, ledger.DeltaInput{
				IngredientID: line.IngredientID,
				Location:     in.Location,
				Delta:        delta,
				Type:         entity.TxnTypeSale,
				Reason:       reason,
				ReferenceID:  in.OrderID,
			}, now)
			if err != nil {
				return err
			}
			result.Transactions = append(result.Transactions, txn)
			touched = append(touched, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyApplied {
		uc.log.Info().Str("order_id", in.OrderID).Bool("deduct", deduct).Msg("pedido ya aplicado, sin cambios")
		return result, nil
	}
	uc.log.Info().Str("order_id", in.OrderID).Bool("deduct", deduct).
		Int("lines", len(in.Lines)).Msg("pedido aplicado sobre el inventario")
	for _, rec := range touched {
		uc.stock.Notify(ctx, rec)
	}
	return result, nil
}
