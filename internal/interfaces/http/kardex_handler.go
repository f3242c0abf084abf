package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/application/kardex"
)

// KardexHandler sirve el informe histórico de saldos diarios de un artículo.
type KardexHandler struct {
	uc *kardex.ReportUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *kardex.ReportUseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// Report godoc
// @Summary      Kardex de un artículo en una ventana [from, to]
// @Description  Saldo de apertura más una fila por día calendario, incluidos los
// @Description  días sin movimiento, con saldo acumulado y marcas de stock bajo
// @Description  y movimiento alto.
// @Tags         kardex
// @Produce      json
// @Param        code  path   string  true  "Código del artículo"
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.KardexReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kardex/{code} [get]
func (h *KardexHandler) Report(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "to debe ser YYYY-MM-DD"})
	}
	report, err := h.uc.Kardex(c.Context(), c.Params("code"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromKardexReport(report))
}
