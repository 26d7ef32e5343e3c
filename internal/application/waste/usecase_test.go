package waste_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/application/waste"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/infrastructure/memory"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

const ingLeche = "ing-leche"

func newWasteFixture(t *testing.T) (*waste.WasteUseCase, *ledger.StockLedger) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.NewIngredientRepository(store).Create(context.Background(), &entity.Ingredient{
		ID: ingLeche, Name: "Leche", Unit: "liter",
	}))
	sl := ledger.NewStockLedger(
		memory.NewTxRunner(store),
		memory.NewStockRepository(store),
		memory.NewStockTransactionRepository(store),
		memory.NewIngredientRepository(store),
		nil,
		logger.Nop(),
	)
	return waste.NewWasteUseCase(sl, logger.Nop()), sl
}

func admin() rbac.Scope { return rbac.Admin("u-admin", "Ana") }

// TestReport_RegistraMerma: la cantidad declarada (positiva) se registra como
// delta negativo de tipo WASTE con la razón dada.
func TestReport_RegistraMerma(t *testing.T) {
	uc, sl := newWasteFixture(t)
	ctx := context.Background()

	_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingLeche,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(20),
		Type:         entity.TxnTypeImport,
		Reason:       "carga",
	})
	require.NoError(t, err)

	txn, err := uc.Report(ctx, admin(), waste.ReportInput{
		IngredientID: ingLeche,
		Location:     entity.Central(),
		Quantity:     decimal.NewFromInt(3),
		Reason:       "Vencida",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TxnTypeWaste, txn.Type)
	assert.True(t, decimal.NewFromInt(-3).Equal(txn.QuantityDelta))
	assert.Equal(t, "Vencida", txn.Reason)

	rec, _ := sl.Get(ctx, admin(), ingLeche, entity.Central())
	assert.True(t, decimal.NewFromInt(17).Equal(rec.Quantity))
}

// TestReport_MermaMayorQueElStock: declarar más de lo que hay responde
// ErrInsufficientStock sin tocar nada.
func TestReport_MermaMayorQueElStock(t *testing.T) {
	uc, sl := newWasteFixture(t)
	ctx := context.Background()

	_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingLeche,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(2),
		Type:         entity.TxnTypeImport,
		Reason:       "carga",
	})
	require.NoError(t, err)

	_, err = uc.Report(ctx, admin(), waste.ReportInput{
		IngredientID: ingLeche,
		Location:     entity.Central(),
		Quantity:     decimal.NewFromInt(5),
		Reason:       "Dañada",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rec, _ := sl.Get(ctx, admin(), ingLeche, entity.Central())
	assert.True(t, decimal.NewFromInt(2).Equal(rec.Quantity))
}

func TestReport_Validaciones(t *testing.T) {
	uc, _ := newWasteFixture(t)
	ctx := context.Background()

	_, err := uc.Report(ctx, admin(), waste.ReportInput{
		IngredientID: ingLeche,
		Location:     entity.Central(),
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la razón es obligatoria")

	_, err = uc.Report(ctx, admin(), waste.ReportInput{
		IngredientID: ingLeche,
		Location:     entity.Central(),
		Quantity:     decimal.Zero,
		Reason:       "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la cantidad debe ser positiva")
}

func TestReport_GuestDenegado(t *testing.T) {
	uc, _ := newWasteFixture(t)
	_, err := uc.Report(context.Background(), rbac.Guest(), waste.ReportInput{
		IngredientID: ingLeche,
		Location:     entity.Central(),
		Quantity:     decimal.NewFromInt(1),
		Reason:       "x",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
