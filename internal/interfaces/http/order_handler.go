package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/application/order"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// OrderHandler expone los hooks que el sistema de pedidos invoca.
type OrderHandler struct {
	uc *order.OrderHookUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.OrderHookUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Deduct godoc
// @Summary      Descontar insumos por pedido confirmado (idempotente)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderHookRequest  true  "order_id, location, lines"
// @Success      200   {object}  order.HookResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/deduct [post]
func (h *OrderHandler) Deduct(c *fiber.Ctx) error {
	return h.apply(c, true)
}

// Restock godoc
// @Summary      Devolver insumos por pedido cancelado (idempotente)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderHookRequest  true  "order_id, location, lines"
// @Success      200   {object}  order.HookResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/restock [post]
func (h *OrderHandler) Restock(c *fiber.Ctx) error {
	return h.apply(c, false)
}

func (h *OrderHandler) apply(c *fiber.Ctx, deduct bool) error {
	var in dto.OrderHookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := entity.ParseLocationKey(in.Location)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	lines := make([]order.LineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, order.LineInput{IngredientID: line.IngredientID, Quantity: line.Quantity})
	}
	hook := order.HookInput{OrderID: in.OrderID, Location: loc, Lines: lines}

	var result *order.HookResult
	if deduct {
		result, err = h.uc.DeductForOrder(c.Context(), GetScope(c), hook)
	} else {
		result, err = h.uc.RestockForOrder(c.Context(), GetScope(c), hook)
	}
	if err != nil {
		return respondError(c, err)
	}
	txns := make([]dto.TransactionResponse, 0, len(result.Transactions))
	for _, txn := range result.Transactions {
		txns = append(txns, dto.TransactionFromEntity(txn))
	}
	return c.JSON(fiber.Map{
		"order_id":        result.OrderID,
		"already_applied": result.AlreadyApplied,
		"transactions":    txns,
	})
}
