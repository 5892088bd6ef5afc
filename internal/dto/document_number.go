package dto

import "github.com/SscSPs/clinic_cash_register/internal/core/domain"

// NextDocumentNumberRequest asks for the next identifier of a series.
type NextDocumentNumberRequest struct {
	Series     string            `json:"series" binding:"required,doc_series" example:"F"`
	EntityType domain.EntityType `json:"entityType" binding:"required,oneof=INVOICE RECEIPT" example:"INVOICE"`
}

// PeekDocumentNumberParams selects the year of a counter lookup.
type PeekDocumentNumberParams struct {
	Year int `form:"year" binding:"omitempty,min=1,max=9999"`
}

// DocumentNumberResponse defines an issued (or last issued) identifier.
type DocumentNumberResponse struct {
	Number     string            `json:"number"`
	Series     string            `json:"series"`
	Year       int               `json:"year"`
	EntityType domain.EntityType `json:"entityType"`
	Sequence   int64             `json:"sequence"`
}

// ToDocumentNumberResponse converts a domain.DocumentNumber to its DTO.
func ToDocumentNumberResponse(d *domain.DocumentNumber) DocumentNumberResponse {
	return DocumentNumberResponse{
		Number:     d.Number,
		Series:     d.Series,
		Year:       d.Year,
		EntityType: d.EntityType,
		Sequence:   d.Sequence,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
