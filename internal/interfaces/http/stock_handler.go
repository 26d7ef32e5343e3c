package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// StockHandler maneja las consultas y mutaciones de stock por ubicación.
type StockHandler struct {
	stock *ledger.StockLedger
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *ledger.StockLedger) *StockHandler {
	return &StockHandler{stock: stock}
}

// List godoc
// @Summary      Stock de una ubicación (maestro completo, cantidades cero incluidas)
// @Tags         stock
// @Produce      json
// @Param        location  path  string  true  "'central' o ID de sucursal"
// @Success      200  {array}   dto.StockItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/{location} [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	loc, err := entity.ParseLocationKey(c.Params("location"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	views, err := h.stock.List(c.Context(), GetScope(c), loc)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(views))
	for i := range views {
		out = append(out, dto.StockItemFromView(&views[i], loc))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Stock de un insumo en una ubicación
// @Tags         stock
// @Produce      json
// @Param        location       path  string  true  "'central' o ID de sucursal"
// @Param        ingredient_id  path  string  true  "ID del insumo"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{location}/{ingredient_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	loc, err := entity.ParseLocationKey(c.Params("location"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	rec, err := h.stock.Get(c.Context(), GetScope(c), c.Params("ingredient_id"), loc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"ingredient_id": rec.IngredientID,
		"location":      rec.Location.Key(),
		"quantity":      rec.Quantity,
		"min_threshold": rec.MinThreshold,
		"is_low":        rec.IsLow(),
		"last_updated":  rec.LastUpdated,
	})
}

// History godoc
// @Summary      Historia del ledger de un par (insumo, ubicación)
// @Tags         stock
// @Produce      json
// @Param        location       path   string  true   "'central' o ID de sucursal"
// @Param        ingredient_id  path   string  true   "ID del insumo"
// @Param        limit          query  int     false  "máx. filas (default 100)"
// @Param        offset         query  int     false  "desplazamiento"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/{location}/{ingredient_id}/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	loc, err := entity.ParseLocationKey(c.Params("location"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	txns, err := h.stock.History(c.Context(), GetScope(c), c.Params("ingredient_id"), loc, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, dto.TransactionFromEntity(txn))
	}
	return c.JSON(out)
}

// SetThreshold godoc
// @Summary      Fijar el umbral mínimo de alerta de un insumo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ingredient_id  path  string                   true  "ID del insumo"
// @Param        body           body  dto.SetThresholdRequest  true  "location, min_threshold"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/{ingredient_id}/threshold [put]
func (h *StockHandler) SetThreshold(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := entity.ParseLocationKey(in.Location)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	if err := h.stock.SetThreshold(c.Context(), GetScope(c), c.Params("ingredient_id"), loc, in.MinThreshold); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "umbral actualizado"})
}
