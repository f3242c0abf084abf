package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/application/entries"
)

// EntryHandler maneja el registro de entradas (ingresos de stock).
type EntryHandler struct {
	uc *entries.RegisterUseCase
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *entries.RegisterUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar una entrada con sus líneas
// @Description  Una línea negativa (ajuste/corrección) exige justificación en la cabecera.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "origin, authorized_by, received_by, lines"
// @Success      201  {object}  dto.RegisterEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := entries.RegisterInput{
		Origin:        in.Origin,
		AuthorizedBy:  in.AuthorizedBy,
		ReceivedBy:    in.ReceivedBy,
		Justification: in.Justification,
	}
	if in.Date != "" {
		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "date debe ser YYYY-MM-DD"})
		}
		input.Date = date
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, entries.LineInput{ItemCode: l.ItemCode, Quantity: l.Quantity})
	}
	id, err := h.uc.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterEntryResponse{EntryID: id})
}
