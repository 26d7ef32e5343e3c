package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/internal/infrastructure/memory"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ledger sobre el store en memoria. El TxRunner de memoria imita el
// rollback de PostgreSQL por snapshot, así que el comportamiento transaccional
// observable es el mismo que en producción.
// ──────────────────────────────────────────────────────────────────────────────

const ingTomate = "ing-tomate"

func newLedgerFixture(t *testing.T) (*ledger.StockLedger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.NewIngredientRepository(store).Create(context.Background(), &entity.Ingredient{
		ID:        ingTomate,
		Name:      "Tomate",
		Category:  "Vegetable",
		Unit:      "kg",
		CostPrice: decimal.NewFromInt(30),
	}))
	sl := ledger.NewStockLedger(
		memory.NewTxRunner(store),
		memory.NewStockRepository(store),
		memory.NewStockTransactionRepository(store),
		memory.NewIngredientRepository(store),
		nil, // notificador nulo
		logger.Nop(),
	)
	return sl, store
}

func admin() rbac.Scope { return rbac.Admin("u-admin", "Ana") }

// TestApplyDelta_CreacionPerezosa: la primera escritura de un par
// (insumo, ubicación) crea el registro con el umbral por defecto.
func TestApplyDelta_CreacionPerezosa(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()

	txn, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingTomate,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(20),
		Type:         entity.TxnTypeImport,
		Reason:       "Carga inicial",
	})
	require.NoError(t, err)
	assert.True(t, txn.PreviousQty.IsZero())
	assert.True(t, decimal.NewFromInt(20).Equal(txn.NewQty))

	rec, err := sl.Get(ctx, admin(), ingTomate, entity.Central())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(rec.Quantity))
	assert.True(t, entity.DefaultMinThreshold.Equal(rec.MinThreshold))
}

// TestApplyDelta_StockInsuficiente: un delta negativo que dejaría la cantidad
// bajo cero no escribe nada, ni cantidad ni fila del ledger.
func TestApplyDelta_StockInsuficiente(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()

	_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingTomate,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(10),
		Type:         entity.TxnTypeImport,
		Reason:       "Carga inicial",
	})
	require.NoError(t, err)

	_, err = sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingTomate,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(-15),
		Type:         entity.TxnTypeWaste,
		Reason:       "Merma imposible",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rec, err := sl.Get(ctx, admin(), ingTomate, entity.Central())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(rec.Quantity), "la cantidad no debe cambiar")

	history, err := sl.History(ctx, admin(), ingTomate, entity.Central(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1, "el intento fallido no debe dejar fila en el ledger")
}

// TestApplyDelta_HistoriaReproducible: reproducir los deltas del historial
// desde cero da exactamente la cantidad materializada, y cada fila cumple
// NewQty = PreviousQty + QuantityDelta.
func TestApplyDelta_HistoriaReproducible(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()

	deltas := []struct {
		delta   int64
		txnType string
	}{
		{50, entity.TxnTypeImport},
		{-8, entity.TxnTypeSale},
		{-5, entity.TxnTypeWaste},
		{3, entity.TxnTypeAuditAdjustment},
		{-10, entity.TxnTypeSale},
	}
	for _, d := range deltas {
		_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
			IngredientID: ingTomate,
			Location:     entity.Central(),
			Delta:        decimal.NewFromInt(d.delta),
			Type:         d.txnType,
			Reason:       "movimiento",
		})
		require.NoError(t, err)
	}

	history, err := sl.History(ctx, admin(), ingTomate, entity.Central(), 100, 0)
	require.NoError(t, err)
	require.Len(t, history, len(deltas))

	replayed := decimal.Zero
	for i := len(history) - 1; i >= 0; i-- { // más reciente primero: recorrer al revés
		txn := history[i]
		assert.True(t, txn.PreviousQty.Add(txn.QuantityDelta).Equal(txn.NewQty),
			"fila %s viola NewQty = PreviousQty + Delta", txn.ID)
		replayed = replayed.Add(txn.QuantityDelta)
	}

	rec, err := sl.Get(ctx, admin(), ingTomate, entity.Central())
	require.NoError(t, err)
	assert.True(t, replayed.Equal(rec.Quantity),
		"reproducir la historia (%s) debe dar la cantidad materializada (%s)", replayed, rec.Quantity)
}

func TestApplyDelta_Validaciones(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()

	casos := []ledger.DeltaInput{
		{IngredientID: "", Location: entity.Central(), Delta: decimal.NewFromInt(1), Type: entity.TxnTypeImport},
		{IngredientID: ingTomate, Delta: decimal.NewFromInt(1), Type: entity.TxnTypeImport}, // location cero
		{IngredientID: ingTomate, Location: entity.Central(), Delta: decimal.Zero, Type: entity.TxnTypeImport},
		{IngredientID: ingTomate, Location: entity.Central(), Delta: decimal.NewFromInt(1), Type: "PURCHASE"},
	}
	for i, in := range casos {
		_, err := sl.ApplyDelta(ctx, admin(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

func TestApplyDelta_InsumoInexistente(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	_, err := sl.ApplyDelta(context.Background(), admin(), ledger.DeltaInput{
		IngredientID: "no-existe",
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(1),
		Type:         entity.TxnTypeImport,
		Reason:       "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestApplyDelta_RBAC: guest nunca muta; un manager solo en su ubicación.
func TestApplyDelta_RBAC(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()
	in := ledger.DeltaInput{
		IngredientID: ingTomate,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(5),
		Type:         entity.TxnTypeImport,
		Reason:       "x",
	}

	_, err := sl.ApplyDelta(ctx, rbac.Guest(), in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	mgr := rbac.Manager("u-mgr", "Luis", entity.AtBranch("b-1"))
	_, err = sl.ApplyDelta(ctx, mgr, in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "manager fuera de su ubicación")

	in.Location = entity.AtBranch("b-1")
	_, err = sl.ApplyDelta(ctx, mgr, in)
	assert.NoError(t, err, "manager en su ubicación")
}

// TestGet_ParAusente: leer un par sin registro devuelve cantidad cero con el
// umbral por defecto, nunca un error.
func TestGet_ParAusente(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	rec, err := sl.Get(context.Background(), rbac.Guest(), ingTomate, entity.AtBranch("b-9"))
	require.NoError(t, err)
	assert.True(t, rec.Quantity.IsZero())
	assert.True(t, entity.DefaultMinThreshold.Equal(rec.MinThreshold))
}

// TestList_FusionaMaestroConStock: List devuelve todo el maestro aunque la
// ubicación no tenga registros (left-join con cantidad cero).
func TestList_FusionaMaestroConStock(t *testing.T) {
	sl, store := newLedgerFixture(t)
	ctx := context.Background()
	require.NoError(t, memory.NewIngredientRepository(store).Create(ctx, &entity.Ingredient{
		ID: "ing-sal", Name: "Sal", Unit: "g",
	}))

	_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingTomate,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(2),
		Type:         entity.TxnTypeImport,
		Reason:       "x",
	})
	require.NoError(t, err)

	views, err := sl.List(ctx, rbac.Guest(), entity.Central())
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := make(map[string]ledger.StockView)
	for _, v := range views {
		byID[v.Ingredient.ID] = v
	}
	assert.True(t, decimal.NewFromInt(2).Equal(byID[ingTomate].Quantity))
	assert.True(t, byID["ing-sal"].Quantity.IsZero(), "insumo sin registro aparece con cero")
	assert.True(t, byID["ing-sal"].IsLow, "cero está bajo el umbral por defecto")
}

func TestSetThreshold_CreaRegistroSiNoExiste(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()

	require.NoError(t, sl.SetThreshold(ctx, admin(), ingTomate, entity.Central(), decimal.NewFromInt(12)))

	rec, err := sl.Get(ctx, admin(), ingTomate, entity.Central())
	require.NoError(t, err)
	assert.True(t, rec.Quantity.IsZero())
	assert.True(t, decimal.NewFromInt(12).Equal(rec.MinThreshold))
}

func TestSetThreshold_NegativoInvalido(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	err := sl.SetThreshold(context.Background(), admin(), ingTomate, entity.Central(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestHistory_MasRecientePrimero: el historial se devuelve en orden
// descendente de creación.
func TestHistory_MasRecientePrimero(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()

	for _, razon := range []string{"primera", "segunda", "tercera"} {
		_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
			IngredientID: ingTomate,
			Location:     entity.Central(),
			Delta:        decimal.NewFromInt(1),
			Type:         entity.TxnTypeImport,
			Reason:       razon,
		})
		require.NoError(t, err)
	}

	history, err := sl.History(ctx, admin(), ingTomate, entity.Central(), 100, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "tercera", history[0].Reason)
	assert.Equal(t, "primera", history[2].Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: la guarda CAS y la verificación de stock deciden entre dos
// escritores; el perdedor no deja ninguna fila en el ledger.
// ──────────────────────────────────────────────────────────────────────────────

// staleSwapRepo intercala una escritura rival entre la lectura y el CAS del
// ledger: el delegado ve una cantidad distinta a la esperada y la guarda
// falla.
type staleSwapRepo struct {
	repository.StockRepository
	rivalDelta decimal.Decimal
}

func (r *staleSwapRepo) CompareAndSwapQuantity(ctx context.Context, ingredientID string, loc entity.Location, expected, newQty decimal.Decimal, now time.Time) (bool, error) {
	if _, err := r.StockRepository.CompareAndSwapQuantity(ctx, ingredientID, loc, expected, expected.Add(r.rivalDelta), now); err != nil {
		return false, err
	}
	return r.StockRepository.CompareAndSwapQuantity(ctx, ingredientID, loc, expected, newQty, now)
}

// TestApplyDeltaInTx_GuardaPerdida: si otra transacción gana la carrera entre
// la lectura y el CAS, el perdedor recibe ErrConcurrencyConflict y no escribe
// ninguna fila del ledger.
func TestApplyDeltaInTx_GuardaPerdida(t *testing.T) {
	sl, store := newLedgerFixture(t)
	ctx := context.Background()

	_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingTomate,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(10),
		Type:         entity.TxnTypeImport,
		Reason:       "carga inicial",
	})
	require.NoError(t, err)

	stockRepo := &staleSwapRepo{
		StockRepository: memory.NewStockRepository(store),
		rivalDelta:      decimal.NewFromInt(-4),
	}
	_, _, err = sl.ApplyDeltaInTx(ctx, stockRepo,
		memory.NewStockTransactionRepository(store),
		memory.NewIngredientRepository(store),
		admin(), ledger.DeltaInput{
			IngredientID: ingTomate,
			Location:     entity.Central(),
			Delta:        decimal.NewFromInt(-3),
			Type:         entity.TxnTypeSale,
			Reason:       "venta",
		}, time.Now())
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	// Solo sobrevive la escritura rival; el perdedor no dejó rastro.
	rec, err := sl.Get(ctx, admin(), ingTomate, entity.Central())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(rec.Quantity))

	history, err := sl.History(ctx, admin(), ingTomate, entity.Central(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1, "la fila del perdedor no se escribió")
}

// TestApplyDelta_DescuentosSimultaneos: dos descuentos cuya suma excede el
// stock se resuelven uno-gana/uno-pierde; la cantidad nunca baja de cero.
func TestApplyDelta_DescuentosSimultaneos(t *testing.T) {
	sl, _ := newLedgerFixture(t)
	ctx := context.Background()

	_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
		IngredientID: ingTomate,
		Location:     entity.Central(),
		Delta:        decimal.NewFromInt(10),
		Type:         entity.TxnTypeImport,
		Reason:       "carga inicial",
	})
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sl.ApplyDelta(ctx, admin(), ledger.DeltaInput{
				IngredientID: ingTomate,
				Location:     entity.Central(),
				Delta:        decimal.NewFromInt(-7),
				Type:         entity.TxnTypeSale,
				Reason:       "venta",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrConcurrencyConflict):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente un descuento gana")
	assert.Equal(t, 1, insufficient, "el otro se rechaza sin escribir")

	rec, err := sl.Get(ctx, admin(), ingTomate, entity.Central())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3).Equal(rec.Quantity))

	history, err := sl.History(ctx, admin(), ingTomate, entity.Central(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2, "carga inicial + el único descuento aplicado")
}
