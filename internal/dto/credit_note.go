package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditNoteRequest defines the payload for creating a draft credit note.
type CreateCreditNoteRequest struct {
	CreditNoteNumber  string            `json:"creditNoteNumber" binding:"required"`
	OriginalInvoiceID string            `json:"originalInvoiceID" binding:"required"`
	IssueDate         time.Time         `json:"issueDate" binding:"required"`
	Items             []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Reason            string            `json:"reason" binding:"required"`
	TaxAmount         decimal.Decimal   `json:"taxAmount"`
}

// UpdateCreditNoteRequest defines the payload for updating a draft credit note.
// Finalized notes reject any update.
type UpdateCreditNoteRequest struct {
	CreditNoteNumber *string           `json:"creditNoteNumber,omitempty"`
	IssueDate        *time.Time        `json:"issueDate,omitempty"`
	Items            []LineItemRequest `json:"items,omitempty" binding:"omitempty,min=1,dive"`
	Reason           *string           `json:"reason,omitempty"`
	TaxAmount        *decimal.Decimal  `json:"taxAmount,omitempty"`
}

// CreditNoteResponse defines the data returned for a credit note.
type CreditNoteResponse struct {
	CreditNoteID      string             `json:"creditNoteID"`
	CreditNoteNumber  string             `json:"creditNoteNumber"`
	OriginalInvoiceID string             `json:"originalInvoiceID"`
	CustomerID        string             `json:"customerID"`
	IssueDate         time.Time          `json:"issueDate"`
	Items             []LineItemResponse `json:"items"`
	Status            string             `json:"status"`
	Reason            string             `json:"reason"`
	TaxAmount         decimal.Decimal    `json:"taxAmount"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	Total             decimal.Decimal    `json:"total"`
	JournalID         *string            `json:"journalID,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// ListCreditNotesResponse wraps a list of credit notes.
type ListCreditNotesResponse struct {
	CreditNotes []CreditNoteResponse `json:"creditNotes"`
}

// ToCreditNoteResponse converts a domain.CreditNote to CreditNoteResponse.
func ToCreditNoteResponse(cn *domain.CreditNote) CreditNoteResponse {
	return CreditNoteResponse{
		CreditNoteID:      cn.CreditNoteID,
		CreditNoteNumber:  cn.CreditNoteNumber,
		OriginalInvoiceID: cn.OriginalInvoiceID,
		CustomerID:        cn.CustomerID,
		IssueDate:         cn.IssueDate,
		Items:             ToLineItemResponses(cn.Items),
		Status:            string(cn.Status),
		Reason:            cn.Reason,
		TaxAmount:         cn.TaxAmount,
		Subtotal:          cn.Subtotal(),
		Total:             cn.Total(),
		JournalID:         cn.JournalID,
		CreatedAt:         cn.CreatedAt,
	}
}

// ToCreditNoteResponses converts a slice of domain.CreditNote to responses.
func ToCreditNoteResponses(notes []domain.CreditNote) []CreditNoteResponse {
	responses := make([]CreditNoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToCreditNoteResponse(&notes[i])
	}
	return responses
}
