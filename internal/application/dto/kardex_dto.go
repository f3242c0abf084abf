package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain/kardex"
)

// KardexDetailDTO una línea de movimiento dentro de un día (registro de detalle).
type KardexDetailDTO struct {
	Type     string          `json:"type"` // ENTRY | EXIT
	Quantity decimal.Decimal `json:"quantity"`
	HeaderID string          `json:"header_id"`
}

// KardexDayDTO una fila del informe: un día calendario, con o sin movimiento.
type KardexDayDTO struct {
	Date         string            `json:"date"` // YYYY-MM-DD
	Entries      decimal.Decimal   `json:"entries"`
	Exits        decimal.Decimal   `json:"exits"`
	Net          decimal.Decimal   `json:"net"`
	Balance      decimal.Decimal   `json:"balance"`
	LowStock     bool              `json:"low_stock"`
	HighMovement bool              `json:"high_movement"`
	Detail       []KardexDetailDTO `json:"detail,omitempty"`
}

// KardexReportDTO respuesta de GET /api/kardex/:code.
type KardexReportDTO struct {
	ItemCode             string          `json:"item_code"`
	From                 string          `json:"from"`
	To                   string          `json:"to"`
	Opening              decimal.Decimal `json:"opening"`
	AverageDailyMovement decimal.Decimal `json:"average_daily_movement"`
	Days                 []KardexDayDTO  `json:"days"`
}

// FromKardexReport mapea el informe de dominio al DTO HTTP.
func FromKardexReport(r *kardex.Report) KardexReportDTO {
	days := make([]KardexDayDTO, 0, len(r.Days))
	for _, d := range r.Days {
		detail := make([]KardexDetailDTO, 0, len(d.Detail))
		for _, l := range d.Detail {
			detail = append(detail, KardexDetailDTO{
				Type:     l.Kind,
				Quantity: l.Quantity,
				HeaderID: l.HeaderID,
			})
		}
		days = append(days, KardexDayDTO{
			Date:         d.Date.Format("2006-01-02"),
			Entries:      d.Entries,
			Exits:        d.Exits,
			Net:          d.Net,
			Balance:      d.Balance,
			LowStock:     d.LowStock,
			HighMovement: d.HighMovement,
			Detail:       detail,
		})
	}
	return KardexReportDTO{
		ItemCode:             r.ItemCode,
		From:                 r.From.Format("2006-01-02"),
		To:                   r.To.Format("2006-01-02"),
		Opening:              r.Opening,
		AverageDailyMovement: r.AverageDailyMovement,
		Days:                 days,
	}
}
