// Package transfer implementa el traslado atómico de stock entre ubicaciones.
package transfer

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

// TransferUseCase mueve stock del origen al destino en una sola transacción:
// o se ven ambas patas (TRANSFER_OUT y TRANSFER_IN con el mismo referenceID)
// o no se ve ninguna.
type TransferUseCase struct {
	txRunner ledger.TxRunner
	stock    *ledger.StockLedger
	log      *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner ledger.TxRunner, stock *ledger.StockLedger, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, stock: stock, log: log.Component("transfer")}
}

// TransferInput parámetros del traslado.
type TransferInput struct {
	IngredientID string
	From         entity.Location
	To           entity.Location
	Quantity     decimal.Decimal
}

// TransferResult las dos patas del traslado ya confirmadas.
type TransferResult struct {
	ReferenceID string
	Out         *entity.StockTransaction
	In          *entity.StockTransaction
}

// Transfer ejecuta el traslado. Solo admin. Valida antes de cualquier I/O;
// si la pata de salida falla (stock insuficiente, carrera perdida) la
// transacción completa se aborta y la entrada nunca se ejecuta.
func (uc *TransferUseCase) Transfer(ctx context.Context, scope rbac.Scope, in TransferInput) (*TransferResult, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	if in.IngredientID == "" || !in.From.IsValid() || !in.To.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if in.From == in.To {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	referenceID := uuid.New().String()
	res := &TransferResult{ReferenceID: referenceID}
	var outRec, inRec *entity.StockRecord

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		// Pata de salida primero: si no hay stock, nada se escribe.
		out, rec, err := uc.stock.ApplyDeltaInTx(ctx, stockRepo, txnRepo, ingredientRepo, scope, ledger.DeltaInput{
			IngredientID: in.IngredientID,
			Location:     in.From,
			Delta:        in.Quantity.Neg(),
			Type:         entity.TxnTypeTransferOut,
			Reason:       "Transferencia hacia " + in.To.String(),
			ReferenceID:  referenceID,
		}, now)
		if err != nil {
			return err
		}
		res.Out, outRec = out, rec

		// Pata de entrada; crea el registro destino si no existe.
		inn, rec2, err := uc.stock.ApplyDeltaInTx(ctx, stockRepo, txnRepo, ingredientRepo, scope, ledger.DeltaInput{
			IngredientID: in.IngredientID,
			Location:     in.To,
			Delta:        in.Quantity,
			Type:         entity.TxnTypeTransferIn,
			Reason:       "Transferencia desde " + in.From.String(),
			ReferenceID:  referenceID,
		}, now)
		if err != nil {
			return err
		}
		res.In, inRec = inn, rec2
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("ingredient_id", in.IngredientID).
		Str("from", in.From.Key()).
		Str("to", in.To.Key()).
		Str("reference_id", referenceID).
		Str("quantity", in.Quantity.String()).
		Msg("traslado confirmado")

	uc.stock.Notify(ctx, outRec)
	uc.stock.Notify(ctx, inRec)
	return res, nil
}
