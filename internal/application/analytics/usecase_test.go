package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/resto-backoffice/internal/application/analytics"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/infrastructure/memory"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

const (
	ingPollo   = "ing-pollo"
	ingCebolla = "ing-cebolla"
)

type analyticsFixture struct {
	uc    *analytics.AnalyticsUseCase
	stock *ledger.StockLedger
	store *memory.Store
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for _, ing := range []*entity.Ingredient{
		{ID: ingPollo, Name: "Pollo", Unit: "kg", CostPrice: decimal.NewFromInt(30)},
		{ID: ingCebolla, Name: "Cebolla", Unit: "kg", CostPrice: decimal.NewFromInt(8)},
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
	uc := analytics.NewAnalyticsUseCase(
		memory.NewStockTransactionRepository(store),
		memory.NewStockRepository(store),
		memory.NewIngredientRepository(store),
		memory.NewBranchRepository(store),
		logger.Nop(),
	)
	return &analyticsFixture{uc: uc, stock: sl, store: store}
}

func admin() rbac.Scope { return rbac.Admin("u-admin", "Ana") }

func (f *analyticsFixture) apply(t *testing.T, loc entity.Location, ingredientID string, delta int64, txnType, reason string) {
	t.Helper()
	_, err := f.stock.ApplyDelta(context.Background(), admin(), ledger.DeltaInput{
		IngredientID: ingredientID,
		Location:     loc,
		Delta:        decimal.NewFromInt(delta),
		Type:         txnType,
		Reason:       reason,
	})
	require.NoError(t, err)
}

// TestWasteSummary_AcumulaYValoriza: las mermas del período se acumulan por
// insumo y se valorizan con el costo promedio actual.
func TestWasteSummary_AcumulaYValoriza(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()
	central := entity.Central()

	f.apply(t, central, ingPollo, 20, entity.TxnTypeImport, "carga")
	f.apply(t, central, ingPollo, -2, entity.TxnTypeWaste, "vencido")
	f.apply(t, central, ingPollo, -3, entity.TxnTypeWaste, "dañado")
	f.apply(t, central, ingPollo, -4, entity.TxnTypeSale, "venta") // no es merma

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	report, err := f.uc.WasteSummary(ctx, admin(), &central, from, to)
	require.NoError(t, err)

	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, ingPollo, item.IngredientID)
	assert.Equal(t, "Pollo", item.IngredientName)
	assert.True(t, decimal.NewFromInt(5).Equal(item.Quantity), "2 + 3 de merma")
	assert.True(t, decimal.NewFromInt(150).Equal(item.Cost), "5 * costo 30")
	assert.True(t, decimal.NewFromInt(150).Equal(report.TotalCost))
}

func TestWasteSummary_PeriodoInvalido(t *testing.T) {
	f := newAnalyticsFixture(t)
	central := entity.Central()
	now := time.Now()
	_, err := f.uc.WasteSummary(context.Background(), admin(), &central, now, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestWasteSummary_ManagerForzadoASuUbicacion: el reporte de un manager se
// restringe a su ubicación aunque pida otra.
func TestWasteSummary_ManagerForzadoASuUbicacion(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()
	branch := entity.AtBranch("b-1")
	central := entity.Central()

	f.apply(t, central, ingPollo, 20, entity.TxnTypeImport, "carga")
	f.apply(t, central, ingPollo, -2, entity.TxnTypeWaste, "vencido")

	mgr := rbac.Manager("u-m", "Luis", branch)
	report, err := f.uc.WasteSummary(ctx, mgr, &central, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, branch.Key(), report.Location)
	assert.Empty(t, report.Items, "la merma del central no aparece en el reporte de la sucursal")
}

// TestLowStock_SoloBajoUmbral: lista únicamente los pares con cantidad por
// debajo del mínimo configurado.
func TestLowStock_SoloBajoUmbral(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()
	central := entity.Central()

	f.apply(t, central, ingPollo, 2, entity.TxnTypeImport, "carga")    // bajo el umbral de 5
	f.apply(t, central, ingCebolla, 50, entity.TxnTypeImport, "carga") // holgado

	items, err := f.uc.LowStock(ctx, admin(), &central)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ingPollo, items[0].IngredientID)
	assert.Equal(t, "central", items[0].Location)
	assert.True(t, decimal.NewFromInt(2).Equal(items[0].Quantity))
}

// TestLowStock_AdminSinUbicacionRecorreTodas: con loc nil el reporte cubre el
// central y las sucursales activas.
func TestLowStock_AdminSinUbicacionRecorreTodas(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()
	branch := entity.AtBranch("b-1")

	require.NoError(t, memory.NewBranchRepository(f.store).Create(ctx, &entity.Branch{
		ID: "b-1", Name: "Sucursal Norte", IsActive: true,
	}))
	f.apply(t, entity.Central(), ingPollo, 1, entity.TxnTypeImport, "carga")
	f.apply(t, branch, ingCebolla, 2, entity.TxnTypeImport, "carga")

	items, err := f.uc.LowStock(ctx, admin(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	locs := map[string]bool{}
	for _, it := range items {
		locs[it.Location] = true
	}
	assert.True(t, locs["central"])
	assert.True(t, locs["b-1"])
}

// TestLowStock_GuestDenegado: los reportes internos no son públicos.
func TestLowStock_GuestDenegado(t *testing.T) {
	f := newAnalyticsFixture(t)
	central := entity.Central()
	_, err := f.uc.LowStock(context.Background(), rbac.Guest(), &central)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
