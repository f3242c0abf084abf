package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/application/items"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// ItemDTO artículo con su disponible derivado del libro.
type ItemDTO struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Brand     string          `json:"brand,omitempty"`
	ImageRef  string          `json:"image_ref,omitempty"`
	Available decimal.Decimal `json:"available"`
}

// ItemSummaryDTO resultado de búsqueda. No lleva disponible: ese cálculo se
// hace al seleccionar el artículo, no por cada fila del listado.
type ItemSummaryDTO struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Brand     string          `json:"brand,omitempty"`
}

// FromItems mapea resultados de búsqueda.
func FromItems(list []entity.Item) []ItemSummaryDTO {
	out := make([]ItemSummaryDTO, 0, len(list))
	for _, it := range list {
		out = append(out, ItemSummaryDTO{
			Code:      it.Code,
			Name:      it.Name,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
			Brand:     it.Brand,
		})
	}
	return out
}

// FromItemWithStock mapea el artículo de dominio al DTO.
func FromItemWithStock(it *items.ItemWithStock) ItemDTO {
	return ItemDTO{
		Code:      it.Code,
		Name:      it.Name,
		Unit:      it.Unit,
		UnitPrice: it.UnitPrice,
		Brand:     it.Brand,
		ImageRef:  it.ImageRef,
		Available: it.Available,
	}
}
