package transfer_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/application/transfer"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/infrastructure/memory"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

const ingHarina = "ing-harina"

func newTransferFixture(t *testing.T) (*transfer.TransferUseCase, *ledger.StockLedger) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, memory.NewIngredientRepository(store).Create(ctx, &entity.Ingredient{
		ID: ingHarina, Name: "Harina", Category: "Dry", Unit: "kg",
	}))
	sl := ledger.NewStockLedger(
		memory.NewTxRunner(store),
		memory.NewStockRepository(store),
		memory.NewStockTransactionRepository(store),
		memory.NewIngredientRepository(store),
		nil,
		logger.Nop(),
	)
	return transfer.NewTransferUseCase(memory.NewTxRunner(store), sl, logger.Nop()), sl
}

func admin() rbac.Scope { return rbac.Admin("u-admin", "Ana") }

func seedCentral(t *testing.T, sl *ledger.StockLedger, qty int64) {
	t.Helper()
	_, err := sl.ApplyDelta(context.Background(), admin(), ledger.DeltaInput{
		IngredientID: ingHarina,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(qty),
		Type:         entity.TxnTypeImport,
		Reason:       "carga inicial",
	})
	require.NoError(t, err)
}

// TestTransfer_MueveYCorrelaciona: las dos patas comparten referenceID y
// suman cero entre ambas ubicaciones.
func TestTransfer_MueveYCorrelaciona(t *testing.T) {
	uc, sl := newTransferFixture(t)
	ctx := context.Background()
	seedCentral(t, sl, 100)
	branch := entity.AtBranch("b-1")

	res, err := uc.Transfer(ctx, admin(), transfer.TransferInput{
		IngredientID: ingHarina,
		From:         entity.Central(),
		To:           branch,
		Quantity:     decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ReferenceID)
	assert.Equal(t, res.ReferenceID, res.Out.ReferenceID)
	assert.Equal(t, res.ReferenceID, res.In.ReferenceID)
	assert.Equal(t, entity.TxnTypeTransferOut, res.Out.Type)
	assert.Equal(t, entity.TxnTypeTransferIn, res.In.Type)
	assert.True(t, res.Out.QuantityDelta.Add(res.In.QuantityDelta).IsZero(),
		"las patas deben sumar cero")

	from, err := sl.Get(ctx, admin(), ingHarina, entity.Central())
	require.NoError(t, err)
	to, err := sl.Get(ctx, admin(), ingHarina, branch)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(from.Quantity))
	assert.True(t, decimal.NewFromInt(30).Equal(to.Quantity))
}

// TestTransfer_FalloNoDejaNada: si el origen no alcanza, no queda NINGUNA
// pata: ni cantidades tocadas ni filas del ledger. Tras el fallo, un
// traslado menor sí procede.
func TestTransfer_FalloNoDejaNada(t *testing.T) {
	uc, sl := newTransferFixture(t)
	ctx := context.Background()
	seedCentral(t, sl, 100)
	branch := entity.AtBranch("b-1")

	_, err := uc.Transfer(ctx, admin(), transfer.TransferInput{
		IngredientID: ingHarina,
		From:         entity.Central(),
		To:           branch,
		Quantity:     decimal.NewFromInt(150),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	from, err := sl.Get(ctx, admin(), ingHarina, entity.Central())
	require.NoError(t, err)
	to, err := sl.Get(ctx, admin(), ingHarina, branch)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(from.Quantity), "el origen queda intacto")
	assert.True(t, to.Quantity.IsZero(), "el destino queda intacto")

	outHist, err := sl.History(ctx, admin(), ingHarina, entity.Central(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, outHist, 1, "solo la carga inicial; el traslado fallido no deja filas")

	// El reintento con cantidad válida procede con normalidad.
	_, err = uc.Transfer(ctx, admin(), transfer.TransferInput{
		IngredientID: ingHarina,
		From:         entity.Central(),
		To:           branch,
		Quantity:     decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	from, _ = sl.Get(ctx, admin(), ingHarina, entity.Central())
	to, _ = sl.Get(ctx, admin(), ingHarina, branch)
	assert.True(t, decimal.NewFromInt(70).Equal(from.Quantity))
	assert.True(t, decimal.NewFromInt(30).Equal(to.Quantity))
}

// TestTransfer_SoloAdmin: ni managers ni guests trasladan, sin importar la
// ubicación involucrada.
func TestTransfer_SoloAdmin(t *testing.T) {
	uc, sl := newTransferFixture(t)
	seedCentral(t, sl, 100)
	in := transfer.TransferInput{
		IngredientID: ingHarina,
		From:         entity.Central(),
		To:           entity.AtBranch("b-1"),
		Quantity:     decimal.NewFromInt(10),
	}

	_, err := uc.Transfer(context.Background(), rbac.Manager("u-m", "Luis", entity.Central()), in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Transfer(context.Background(), rbac.Guest(), in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTransfer_Validaciones(t *testing.T) {
	uc, _ := newTransferFixture(t)
	ctx := context.Background()

	// mismo origen y destino
	_, err := uc.Transfer(ctx, admin(), transfer.TransferInput{
		IngredientID: ingHarina,
		From:         entity.Central(),
		To:           entity.Central(),
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cantidad no positiva
	_, err = uc.Transfer(ctx, admin(), transfer.TransferInput{
		IngredientID: ingHarina,
		From:         entity.Central(),
		To:           entity.AtBranch("b-1"),
		Quantity:     decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// ubicación sin inicializar
	_, err = uc.Transfer(ctx, admin(), transfer.TransferInput{
		IngredientID: ingHarina,
		To:           entity.AtBranch("b-1"),
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestTransfer_CreaDestinoPerezoso: trasladar hacia una sucursal sin registro
// previo lo crea dentro de la misma transacción.
func TestTransfer_CreaDestinoPerezoso(t *testing.T) {
	uc, sl := newTransferFixture(t)
	ctx := context.Background()
	seedCentral(t, sl, 10)
	branch := entity.AtBranch("b-nueva")

	res, err := uc.Transfer(ctx, admin(), transfer.TransferInput{
		IngredientID: ingHarina,
		From:         entity.Central(),
		To:           branch,
		Quantity:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, res.In.PreviousQty.IsZero())
	assert.True(t, decimal.NewFromInt(10).Equal(res.In.NewQty))
}
