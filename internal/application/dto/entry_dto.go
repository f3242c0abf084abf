package dto

import "github.com/shopspring/decimal"

// RegisterEntryRequest body para POST /api/entries.
type RegisterEntryRequest struct {
	Date         string `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Origin       string `json:"origin"`
	AuthorizedBy string `json:"authorized_by"`
	ReceivedBy   string `json:"received_by"`
	// Justification obligatoria si alguna línea trae cantidad negativa.
	Justification string             `json:"justification,omitempty"`
	Lines         []EntryLineRequest `json:"lines"`
}

// EntryLineRequest línea de entrada; cantidad con signo (negativa = ajuste).
type EntryLineRequest struct {
	ItemCode string          `json:"item_code"`
	Quantity decimal.Decimal `json:"quantity"`
}

// RegisterEntryResponse resultado del registro.
type RegisterEntryResponse struct {
	EntryID string `json:"entry_id"`
}
