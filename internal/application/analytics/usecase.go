// Package analytics produce reportes de lectura sobre el ledger: resumen de
// mermas valorizadas por período y listado de stock bajo mínimo.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// AnalyticsUseCase reportes sobre el ledger.
type AnalyticsUseCase struct {
	txnRepo        repository.StockTransactionRepository
	stockRepo      repository.StockRepository
	ingredientRepo repository.IngredientRepository
	branchRepo     repository.BranchRepository
	log            *logger.Logger
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(
	txnRepo repository.StockTransactionRepository,
	stockRepo repository.StockRepository,
	ingredientRepo repository.IngredientRepository,
	branchRepo repository.BranchRepository,
	log *logger.Logger,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		txnRepo:        txnRepo,
		stockRepo:      stockRepo,
		ingredientRepo: ingredientRepo,
		branchRepo:     branchRepo,
		log:            log.Component("analytics"),
	}
}

// WasteItem merma acumulada de un insumo en el período.
type WasteItem struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	Cost           decimal.Decimal `json:"cost"`
}

// WasteReport resumen de mermas valorizadas de un período.
type WasteReport struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Location  string          `json:"location,omitempty"`
	Items     []WasteItem     `json:"items"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// WasteSummary acumula las mermas del período y las valoriza con el costo
// promedio ACTUAL de cada insumo. El costo por insumo se redondea a entero
// antes de sumar al total.
func (uc *AnalyticsUseCase) WasteSummary(ctx context.Context, scope rbac.Scope, loc *entity.Location, from, to time.Time) (*WasteReport, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}
	if scope.Role == entity.RoleManager {
		home := scope.Home
		loc = &home
	}
	if loc != nil {
		if err := scope.CanReadBackoffice(*loc); err != nil {
			return nil, err
		}
	} else if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}

	txns, err := uc.txnRepo.ListByTypeAndPeriod(ctx, entity.TxnTypeWaste, loc, from, to)
	if err != nil {
		return nil, err
	}

	byIngredient := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, txn := range txns {
		if _, seen := byIngredient[txn.IngredientID]; !seen {
			order = append(order, txn.IngredientID)
		}
		// Los deltas WASTE son negativos; acumulamos la cantidad perdida.
		byIngredient[txn.IngredientID] = byIngredient[txn.IngredientID].Add(txn.QuantityDelta.Neg())
	}

	report := &WasteReport{From: from, To: to, Items: make([]WasteItem, 0, len(order)), TotalCost: decimal.Zero}
	if loc != nil {
		report.Location = loc.Key()
	}
	for _, id := range order {
		qty := byIngredient[id]
		item := WasteItem{IngredientID: id, Quantity: qty, Cost: decimal.Zero}
		ing, err := uc.ingredientRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ing != nil {
			item.IngredientName = ing.Name
			item.Unit = ing.Unit
			item.Cost = qty.Mul(ing.CostPrice).Round(0)
		}
		report.TotalCost = report.TotalCost.Add(item.Cost)
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// LowStockItem insumo por debajo de su mínimo en una ubicación.
type LowStockItem struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Location       string          `json:"location"`
	Quantity       decimal.Decimal `json:"quantity"`
	MinThreshold   decimal.Decimal `json:"min_threshold"`
}

// LowStock lista los insumos bajo mínimo. Con loc nil (solo admin) recorre
// el almacén central y todas las sucursales activas.
func (uc *AnalyticsUseCase) LowStock(ctx context.Context, scope rbac.Scope, loc *entity.Location) ([]LowStockItem, error) {
	if scope.Role == entity.RoleManager {
		home := scope.Home
		loc = &home
	}

	var locations []entity.Location
	if loc != nil {
		if err := scope.CanReadBackoffice(*loc); err != nil {
			return nil, err
		}
		locations = []entity.Location{*loc}
	} else {
		if err := scope.RequireAdmin(); err != nil {
			return nil, err
		}
		branches, err := uc.branchRepo.List(ctx, true)
		if err != nil {
			return nil, err
		}
		locations = append(locations, entity.Central())
		for _, br := range branches {
			locations = append(locations, entity.AtBranch(br.ID))
		}
	}

	names := make(map[string]*entity.Ingredient)
	ingredients, err := uc.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		names[ing.ID] = ing
	}

	var out []LowStockItem
	for _, l := range locations {
		records, err := uc.stockRepo.ListByLocation(ctx, l)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if !rec.IsLow() {
				continue
			}
			item := LowStockItem{
				IngredientID: rec.IngredientID,
				Location:     l.Key(),
				Quantity:     rec.Quantity,
				MinThreshold: rec.MinThreshold,
			}
			if ing := names[rec.IngredientID]; ing != nil {
				item.IngredientName = ing.Name
				item.Unit = ing.Unit
			}
			out = append(out, item)
		}
	}
	return out, nil
}
