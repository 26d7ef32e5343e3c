package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/application/waste"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// WasteHandler maneja el registro de mermas.
type WasteHandler struct {
	uc *waste.WasteUseCase
}

// NewWasteHandler construye el handler.
func NewWasteHandler(uc *waste.WasteUseCase) *WasteHandler {
	return &WasteHandler{uc: uc}
}

// Report godoc
// @Summary      Registrar una merma (vencido, dañado, perdido)
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteRequest  true  "ingredient_id, location, quantity (positiva), reason"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/waste [post]
func (h *WasteHandler) Report(c *fiber.Ctx) error {
	var in dto.WasteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := entity.ParseLocationKey(in.Location)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	txn, err := h.uc.Report(c.Context(), GetScope(c), waste.ReportInput{
		IngredientID: in.IngredientID,
		Location:     loc,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionFromEntity(txn))
}
