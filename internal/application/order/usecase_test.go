package order_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/order"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/infrastructure/memory"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Hooks del sistema de pedidos. La propiedad clave es la idempotencia: el
// mismo pedido aplicado dos veces descuenta UNA vez.
// ──────────────────────────────────────────────────────────────────────────────

const (
	ingPan   = "ing-pan"
	ingQueso = "ing-queso"
)

func newOrderFixture(t *testing.T) (*order.OrderHookUseCase, *ledger.StockLedger) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for _, ing := range []*entity.Ingredient{
		{ID: ingPan, Name: "Pan", Unit: "pcs"},
		{ID: ingQueso, Name: "Queso", Unit: "g"},
	} {
		require.NoError(t, memory.NewIngredientRepository(store).Create(ctx, ing))
	}
	sl := ledger.NewStockLedger(
		memory.NewTxRunner(store),
		memory.NewStockRepository(store),
		memory.NewStockTransactionRepository(store),
		memory.NewIngredientRepository(store),
		nil,
		logger.Nop(),
	)
	return order.NewOrderHookUseCase(memory.NewTxRunner(store), sl, logger.Nop()), sl
}

func admin() rbac.Scope { return rbac.Admin("u-admin", "Ana") }

func seed(t *testing.T, sl *ledger.StockLedger, loc entity.Location, ingredientID string, qty int64) {
	t.Helper()
	_, err := sl.ApplyDelta(context.Background(), admin(), ledger.DeltaInput{
		IngredientID: ingredientID,
		Location:     loc,
		Delta:        decimal.NewFromInt(qty),
		Type:         entity.TxnTypeImport,
		Reason:       "carga inicial",
	})
	require.NoError(t, err)
}

func hook(orderID string) order.HookInput {
	return order.HookInput{
		OrderID:  orderID,
		Location: entity.AtBranch("b-1"),
		Lines: []order.LineInput{
			{IngredientID: ingPan, Quantity: decimal.NewFromInt(2)},
			{IngredientID: ingQueso, Quantity: decimal.NewFromInt(100)},
		},
	}
}

// TestDeduct_DescuentaUnaVez: el reintento con el mismo pedido responde
// AlreadyApplied sin volver a escribir.
func TestDeduct_DescuentaUnaVez(t *testing.T) {
	uc, sl := newOrderFixture(t)
	ctx := context.Background()
	branch := entity.AtBranch("b-1")
	seed(t, sl, branch, ingPan, 10)
	seed(t, sl, branch, ingQueso, 500)

	res, err := uc.DeductForOrder(ctx, admin(), hook("order-77"))
	require.NoError(t, err)
	assert.False(t, res.AlreadyApplied)
	assert.Len(t, res.Transactions, 2)
	assert.True(t, res.Transactions[0].QuantityDelta.IsNegative())
	assert.Equal(t, "order-77", res.Transactions[0].ReferenceID)

	// Reintento: mismo pedido, sin cambios.
	again, err := uc.DeductForOrder(ctx, admin(), hook("order-77"))
	require.NoError(t, err)
	assert.True(t, again.AlreadyApplied)
	assert.Empty(t, again.Transactions)

	rec, _ := sl.Get(ctx, admin(), ingPan, branch)
	assert.True(t, decimal.NewFromInt(8).Equal(rec.Quantity), "solo un descuento")
}

// TestRestock_DevuelveUnaVez: la devolución también es idempotente y es
// independiente del descuento (distinto signo del mismo referenceID).
func TestRestock_DevuelveUnaVez(t *testing.T) {
	uc, sl := newOrderFixture(t)
	ctx := context.Background()
	branch := entity.AtBranch("b-1")
	seed(t, sl, branch, ingPan, 10)
	seed(t, sl, branch, ingQueso, 500)

	_, err := uc.DeductForOrder(ctx, admin(), hook("order-77"))
	require.NoError(t, err)

	res, err := uc.RestockForOrder(ctx, admin(), hook("order-77"))
	require.NoError(t, err)
	assert.False(t, res.AlreadyApplied, "la devolución no choca con el descuento")

	again, err := uc.RestockForOrder(ctx, admin(), hook("order-77"))
	require.NoError(t, err)
	assert.True(t, again.AlreadyApplied)

	rec, _ := sl.Get(ctx, admin(), ingPan, branch)
	assert.True(t, decimal.NewFromInt(10).Equal(rec.Quantity), "descuento y devolución se anulan")
}

// TestDeduct_SinStockNoDejaNada: si una línea no alcanza, NINGUNA línea del
// pedido queda aplicada.
func TestDeduct_SinStockNoDejaNada(t *testing.T) {
	uc, sl := newOrderFixture(t)
	ctx := context.Background()
	branch := entity.AtBranch("b-1")
	seed(t, sl, branch, ingPan, 10)
	seed(t, sl, branch, ingQueso, 50) // el pedido pide 100

	_, err := uc.DeductForOrder(ctx, admin(), hook("order-88"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	recPan, _ := sl.Get(ctx, admin(), ingPan, branch)
	recQueso, _ := sl.Get(ctx, admin(), ingQueso, branch)
	assert.True(t, decimal.NewFromInt(10).Equal(recPan.Quantity), "la primera línea se revirtió")
	assert.True(t, decimal.NewFromInt(50).Equal(recQueso.Quantity))

	// El pedido fallido no quedó marcado como aplicado.
	res, err := uc.DeductForOrder(ctx, admin(), order.HookInput{
		OrderID:  "order-88",
		Location: branch,
		Lines:    []order.LineInput{{IngredientID: ingPan, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.False(t, res.AlreadyApplied, "tras el rollback el pedido puede reintentarse")
}

func TestDeduct_Validaciones(t *testing.T) {
	uc, _ := newOrderFixture(t)
	ctx := context.Background()

	_, err := uc.DeductForOrder(ctx, admin(), order.HookInput{
		Location: entity.Central(),
		Lines:    []order.LineInput{{IngredientID: ingPan, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin OrderID")

	_, err = uc.DeductForOrder(ctx, admin(), order.HookInput{
		OrderID:  "order-1",
		Location: entity.Central(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.DeductForOrder(ctx, admin(), order.HookInput{
		OrderID:  "order-1",
		Location: entity.Central(),
		Lines:    []order.LineInput{{IngredientID: ingPan, Quantity: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")
}

// TestDeduct_GuestDenegado: el hook exige un scope con permiso de mutación.
func TestDeduct_GuestDenegado(t *testing.T) {
	uc, sl := newOrderFixture(t)
	branch := entity.AtBranch("b-1")
	seed(t, sl, branch, ingPan, 10)
	seed(t, sl, branch, ingQueso, 500)

	_, err := uc.DeductForOrder(context.Background(), rbac.Guest(), hook("order-99"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
