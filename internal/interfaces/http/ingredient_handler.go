package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/application/ingredient"
)

// IngredientHandler maneja el catálogo maestro de insumos.
type IngredientHandler struct {
	uc *ingredient.IngredientUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *ingredient.IngredientUseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un insumo (solo admin)
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "name, unit, cost_price"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.uc.Create(c.Context(), GetScope(c), ingredient.CreateInput{
		Name:      in.Name,
		Category:  in.Category,
		Unit:      in.Unit,
		CostPrice: in.CostPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IngredientFromEntity(ing))
}

// List godoc
// @Summary      Listar el catálogo de insumos
// @Tags         ingredients
// @Produce      json
// @Success      200  {array}   dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	ingredients, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, dto.IngredientFromEntity(ing))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Consultar un insumo
// @Tags         ingredients
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) Get(c *fiber.Ctx) error {
	ing, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IngredientFromEntity(ing))
}

// Update godoc
// @Summary      Editar el maestro de un insumo (el costo no se edita aquí)
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del insumo"
// @Param        body  body  dto.UpdateIngredientRequest  true  "name, category, unit"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.uc.Update(c.Context(), GetScope(c), c.Params("id"), ingredient.UpdateInput{
		Name:     in.Name,
		Category: in.Category,
		Unit:     in.Unit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IngredientFromEntity(ing))
}

// Delete godoc
// @Summary      Eliminar un insumo (cascadea a stock; el ledger se conserva)
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "insumo eliminado"})
}
