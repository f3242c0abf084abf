package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/application/items"
)

// ItemHandler maneja las peticiones HTTP del maestro de artículos.
type ItemHandler struct {
	uc *items.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *items.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar artículos por código o nombre
// @Tags         items
// @Produce      json
// @Param        q       query  string  false  "Subcadena de código o nombre"
// @Param        limit   query  int     false  "Máximo de filas (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.ItemSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.Search(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.FromItems(list)
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// GetByCode godoc
// @Summary      Obtener un artículo con su disponible derivado del libro
// @Tags         items
// @Produce      json
// @Param        code  path  string  true  "Código del artículo"
// @Success      200  {object}  dto.ItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{code} [get]
func (h *ItemHandler) GetByCode(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromItemWithStock(item))
}
