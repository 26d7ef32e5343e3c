package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/branch"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
)

// BranchHandler maneja el registro de sucursales.
type BranchHandler struct {
	uc *branch.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *branch.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta una sucursal (solo admin)
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "name, address, phone"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	br, err := h.uc.Create(c.Context(), GetScope(c), branch.CreateInput{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BranchFromEntity(br))
}

// List godoc
// @Summary      Listar sucursales (un manager solo ve la suya)
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "incluir inactivas (solo admin)"
// @Success      200  {array}  dto.BranchResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	branches, err := h.uc.List(c.Context(), GetScope(c), c.QueryBool("include_inactive"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BranchResponse, 0, len(branches))
	for _, br := range branches {
		out = append(out, dto.BranchFromEntity(br))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Consultar una sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.BranchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) Get(c *fiber.Ctx) error {
	br, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BranchFromEntity(br))
}

// Update godoc
// @Summary      Editar una sucursal (solo admin)
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sucursal"
// @Param        body  body  dto.UpdateBranchRequest  true  "name, address, phone"
// @Success      200   {object}  dto.BranchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [put]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	br, err := h.uc.Update(c.Context(), GetScope(c), c.Params("id"), branch.UpdateInput{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BranchFromEntity(br))
}

// Deactivate godoc
// @Summary      Desactivar una sucursal (borrado lógico; solo admin)
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [delete]
func (h *BranchHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "sucursal desactivada"})
}
