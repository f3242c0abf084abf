package dto

import "github.com/shopspring/decimal"

// CommitExitRequest body para POST /api/exits.
type CommitExitRequest struct {
	Date         string `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	AuthorizedBy string `json:"authorized_by"`
	RetrievedBy  string `json:"retrieved_by"`
	Comments     string `json:"comments,omitempty"`
	// RequestType código del tipo de solicitud a vincular (opcional).
	RequestType        string            `json:"request_type,omitempty"`
	RequestDescription string            `json:"request_description,omitempty"`
	Requester          string            `json:"requester,omitempty"`
	Location           string            `json:"location,omitempty"`
	Lines              []ExitLineRequest `json:"lines"`
}

// ExitLineRequest línea del borrador. Available es el disponible cacheado en
// el cliente al seleccionar; UnitPrice la foto del precio.
type ExitLineRequest struct {
	ItemCode  string          `json:"item_code"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Available decimal.Decimal `json:"available"`
}

// CommitExitResponse resultado de un commit exitoso.
type CommitExitResponse struct {
	ExitID    string `json:"exit_id"`
	RequestID string `json:"request_id,omitempty"`
	State     string `json:"state"`
}
