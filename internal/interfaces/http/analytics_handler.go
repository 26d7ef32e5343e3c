package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-backoffice/internal/application/analytics"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// AnalyticsHandler expone los reportes de lectura sobre el ledger.
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler de analítica.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// optionalLocation interpreta el query param "location"; vacío devuelve nil.
func optionalLocation(c *fiber.Ctx) (*entity.Location, error) {
	raw := c.Query("location")
	if raw == "" {
		return nil, nil
	}
	loc, err := entity.ParseLocationKey(raw)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// WasteSummary
// @Summary      Resumen de mermas del período
// @Description  Acumula las mermas registradas en [from, to) y las valoriza con el costo promedio actual
// @Tags         analytics
// @Produce      json
// @Param        location  query  string  false  "central o UUID de sucursal (vacío = todas, solo admin)"
// @Param        from      query  string  true   "Fecha inicio (YYYY-MM-DD)"
// @Param        to        query  string  true   "Fecha fin exclusiva (YYYY-MM-DD)"
// @Success      200  {object}  analytics.WasteReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/analytics/waste [get]
func (h *AnalyticsHandler) WasteSummary(c *fiber.Ctx) error {
	loc, err := optionalLocation(c)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}

	report, err := h.uc.WasteSummary(c.Context(), GetScope(c), loc, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// LowStock
// @Summary      Insumos bajo stock mínimo
// @Description  Lista los registros con cantidad menor o igual al mínimo configurado
// @Tags         analytics
// @Produce      json
// @Param        location  query  string  false  "central o UUID de sucursal (vacío = todas, solo admin)"
// @Success      200  {array}   analytics.LowStockItem
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/analytics/low-stock [get]
func (h *AnalyticsHandler) LowStock(c *fiber.Ctx) error {
	loc, err := optionalLocation(c)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	items, err := h.uc.LowStock(c.Context(), GetScope(c), loc)
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []analytics.LowStockItem{}
	}
	return c.JSON(items)
}
