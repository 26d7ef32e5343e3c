package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/application/transfer"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// TransferHandler maneja los movimientos de stock entre ubicaciones.
type TransferHandler struct {
	uc *transfer.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Transfer godoc
// @Summary      Transferir stock entre ubicaciones (solo admin)
// @Description  Mueve cantidad del origen al destino de forma atómica: las
// @Description  dos patas TRANSFER_OUT/TRANSFER_IN comparten reference_id y
// @Description  se confirman o revierten juntas.
// @Tags         transfer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "ingredient_id, from, to, quantity"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	from, err := entity.ParseLocationKey(in.From)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := entity.ParseLocationKey(in.To)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	result, err := h.uc.Transfer(c.Context(), GetScope(c), transfer.TransferInput{
		IngredientID: in.IngredientID,
		From:         from,
		To:           to,
		Quantity:     in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reference_id": result.ReferenceID,
		"out":          dto.TransactionFromEntity(result.Out),
		"in":           dto.TransactionFromEntity(result.In),
	})
}
