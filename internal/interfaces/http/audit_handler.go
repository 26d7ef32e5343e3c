package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/audit"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// AuditHandler maneja los conteos físicos.
type AuditHandler struct {
	uc *audit.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Submit godoc
// @Summary      Aplicar un conteo físico (ajustes AUDIT_ADJUSTMENT por ítem)
// @Description  Cada ítem se concilia por separado: un insumo que falla no
// @Description  bloquea al resto. La respuesta detalla UPDATED / NO_CHANGE /
// @Description  FAILED por ítem. Una línea sin actual_qty se salta (NO_CHANGE).
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuditSubmitRequest  true  "location, counts, reason (default 'End of Day Audit')"
// @Success      200   {object}  audit.SubmitResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Submit(c *fiber.Ctx) error {
	var in dto.AuditSubmitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := entity.ParseLocationKey(in.Location)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	counts := make([]audit.CountInput, 0, len(in.Counts))
	for _, ct := range in.Counts {
		counts = append(counts, audit.CountInput{IngredientID: ct.IngredientID, ActualQty: ct.ActualQty})
	}
	result, err := h.uc.Submit(c.Context(), GetScope(c), audit.SubmitInput{
		Location: loc,
		Counts:   counts,
		Reason:   in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
