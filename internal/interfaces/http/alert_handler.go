package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nubestock/nubestock-api/internal/application/dto"
	"github.com/nubestock/nubestock-api/internal/application/usecase"
)

// AlertHandler maneja las peticiones HTTP para alertas (protegido).
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// ListActive lista las alertas activas, más recientes primero.
func (h *AlertHandler) ListActive(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListActive(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resolve marca una alerta como resuelta. 404 si no existe o ya fue resuelta.
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Resolve(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
