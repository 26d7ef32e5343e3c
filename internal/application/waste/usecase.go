// Package waste registra mermas: producto vencido, dañado o perdido sale
// del stock como delta negativo de tipo WASTE con razón obligatoria.
package waste

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// WasteUseCase registra mermas sobre el ledger.
type WasteUseCase struct {
	stock *ledger.StockLedger
	log   *logger.Logger
}

// NewWasteUseCase construye el caso de uso.
func NewWasteUseCase(stock *ledger.StockLedger, log *logger.Logger) *WasteUseCase {
	return &WasteUseCase{stock: stock, log: log.Component("waste")}
}

// ReportInput una merma declarada.
type ReportInput struct {
	IngredientID string
	Location     entity.Location
	Quantity     decimal.Decimal
	Reason       string
}

// Report descuenta la merma del stock. La cantidad es positiva (lo que se
// perdió); el ledger la registra como delta negativo. Si la merma supera el
// stock disponible el ledger responde ErrInsufficientStock.
func (uc *WasteUseCase) Report(ctx context.Context, scope rbac.Scope, in ReportInput) (*entity.StockTransaction, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	txn, err := uc.stock.ApplyDelta(ctx, scope, ledger.DeltaInput{
		IngredientID: in.IngredientID,
		Location:     in.Location,
		Delta:        in.Quantity.Neg(),
		Type:         entity.TxnTypeWaste,
		Reason:       in.Reason,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("ingredient_id", in.IngredientID).Str("location", in.Location.Key()).
		Str("quantity", in.Quantity.String()).Str("reason", in.Reason).Msg("merma registrada")
	return txn, nil
}
