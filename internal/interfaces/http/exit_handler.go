package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/application/exits"
)

// ExitHandler maneja el commit de salidas contra el libro.
type ExitHandler struct {
	uc *exits.CommitUseCase
}

// NewExitHandler construye el handler.
func NewExitHandler(uc *exits.CommitUseCase) *ExitHandler {
	return &ExitHandler{uc: uc}
}

// Commit godoc
// @Summary      Confirmar una salida (y su solicitud vinculada opcional)
// @Description  Flujo lineal: validación → solicitud → cabecera → efectos →
// @Description  re-verificación de stock → líneas → finalized=true. Sin transacción
// @Description  entre pasos: una falla intermedia deja la cabecera huérfana y la
// @Description  operación completa debe reenviarse.
// @Tags         exits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitExitRequest  true  "authorized_by, retrieved_by, lines; request_type opcional"
// @Success      201  {object}  dto.CommitExitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/exits [post]
func (h *ExitHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := exits.CommitInput{
		AuthorizedBy:       in.AuthorizedBy,
		RetrievedBy:        in.RetrievedBy,
		Comments:           in.Comments,
		RequestType:        in.RequestType,
		RequestDescription: in.RequestDescription,
		Requester:          in.Requester,
		Location:           in.Location,
	}
	if in.Date != "" {
		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "date debe ser YYYY-MM-DD"})
		}
		input.Date = date
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, exits.DraftLine{
			ItemCode:  l.ItemCode,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Available: l.Available,
		})
	}
	result, err := h.uc.Commit(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CommitExitResponse{
		ExitID:    result.ExitID,
		RequestID: result.RequestID,
		State:     string(result.State),
	})
}
