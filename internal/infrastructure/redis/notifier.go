// Package redis publica los eventos de stock y costo por Pub/Sub. Entrega
// best-effort: el ledger ya confirmó antes de llegar aquí y nunca se
// reintenta una publicación fallida.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/pkg/config"
)

// Canales de publicación.
const (
	ChannelStockEvents = "stock.events"
	ChannelCostEvents  = "ingredient.cost"
)

var _ ledger.Notifier = (*Notifier)(nil)

// Notifier publica eventos en redis.
type Notifier struct {
	client *redis.Client
}

// NewNotifier conecta el cliente y verifica con un ping.
func NewNotifier(ctx context.Context, cfg config.RedisConfig) (*Notifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Notifier{client: client}, nil
}

// Close cierra la conexión.
func (n *Notifier) Close() error { return n.client.Close() }

// StockChanged publica la alerta de cambio de stock.
func (n *Notifier) StockChanged(ctx context.Context, alert ledger.StockAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal stock alert: %w", err)
	}
	if err := n.client.Publish(ctx, ChannelStockEvents, payload).Err(); err != nil {
		return fmt.Errorf("publish stock alert: %w", err)
	}
	return nil
}

type costEvent struct {
	IngredientID string          `json:"ingredient_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
}

// CostChanged publica el nuevo costo promedio de un insumo.
func (n *Notifier) CostChanged(ctx context.Context, ingredientID string, cost decimal.Decimal) error {
	payload, err := json.Marshal(costEvent{IngredientID: ingredientID, CostPrice: cost})
	if err != nil {
		return fmt.Errorf("marshal cost event: %w", err)
	}
	if err := n.client.Publish(ctx, ChannelCostEvents, payload).Err(); err != nil {
		return fmt.Errorf("publish cost event: %w", err)
	}
	return nil
}
