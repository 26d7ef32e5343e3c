package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/application/receipt"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

// ReceiptPDFGenerator genera el comprobante imprimible de una recepción.
type ReceiptPDFGenerator interface {
	Generate(ctx context.Context, rc *entity.ImportReceipt, supplier *entity.Supplier) ([]byte, error)
}

// ReceiptHandler maneja las recepciones de mercancía.
type ReceiptHandler struct {
	uc           *receipt.ReceiptUseCase
	supplierRepo repository.SupplierRepository
	pdf          ReceiptPDFGenerator
}

// NewReceiptHandler construye el handler. pdf puede ser nil (endpoint PDF
// deshabilitado).
func NewReceiptHandler(uc *receipt.ReceiptUseCase, supplierRepo repository.SupplierRepository, pdf ReceiptPDFGenerator) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, supplierRepo: supplierRepo, pdf: pdf}
}

// Create godoc
// @Summary      Crear recepción de mercancía (queda PENDING)
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "supplier_id, location, items"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := entity.ParseLocationKey(in.Location)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	items := make([]receipt.CreateItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, receipt.CreateItemInput{
			IngredientID: it.IngredientID,
			Quantity:     it.Quantity,
			PricePerUnit: it.PricePerUnit,
		})
	}
	rc, err := h.uc.Create(c.Context(), GetScope(c), receipt.CreateInput{
		SupplierID: in.SupplierID,
		Location:   loc,
		Items:      items,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptFromEntity(rc))
}

// Complete godoc
// @Summary      Completar recepción (entra stock y recalcula costos; solo admin)
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/complete [post]
func (h *ReceiptHandler) Complete(c *fiber.Ctx) error {
	rc, err := h.uc.Complete(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReceiptFromEntity(rc))
}

// Cancel godoc
// @Summary      Cancelar recepción PENDING
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la recepción"
// @Param        body  body  dto.CancelReceiptRequest  true  "reason"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/cancel [post]
func (h *ReceiptHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rc, err := h.uc.Cancel(c.Context(), GetScope(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReceiptFromEntity(rc))
}

// Get godoc
// @Summary      Consultar una recepción
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	rc, err := h.uc.Get(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReceiptFromEntity(rc))
}

// List godoc
// @Summary      Listar recepciones
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "PENDING | COMPLETED | CANCELLED"
// @Param        location  query  string  false  "'central' o ID de sucursal"
// @Param        limit     query  int     false  "máx. filas (default 50)"
// @Success      200  {array}   dto.ReceiptResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	filter := repository.ReceiptListFilter{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit"),
	}
	if key := c.Query("location"); key != "" {
		loc, err := entity.ParseLocationKey(key)
		if err != nil {
			return respondError(c, domain.ErrInvalidInput)
		}
		filter.Location = &loc
	}
	receipts, err := h.uc.List(c.Context(), GetScope(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, rc := range receipts {
		out = append(out, dto.ReceiptFromEntity(rc))
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar el comprobante PDF de una recepción
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: "generación de PDF deshabilitada"})
	}
	rc, err := h.uc.Get(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	supplier, err := h.supplierRepo.GetByID(c.Context(), rc.SupplierID)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdf.Generate(c.Context(), rc, supplier)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rc.Code+".pdf"))
	return c.Send(doc)
}
