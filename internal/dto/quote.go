package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest defines the payload for creating a quote.
type CreateQuoteRequest struct {
	QuoteNumber string            `json:"quoteNumber" binding:"required"`
	CustomerID  string            `json:"customerID" binding:"required"`
	IssueDate   time.Time         `json:"issueDate" binding:"required"`
	ExpiryDate  time.Time         `json:"expiryDate" binding:"required"`
	Items       []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount    decimal.Decimal   `json:"discount"`
	TaxAmount   decimal.Decimal   `json:"taxAmount"`
}

// UpdateQuoteRequest defines the payload for updating a quote.
type UpdateQuoteRequest struct {
	QuoteNumber *string             `json:"quoteNumber,omitempty"`
	IssueDate   *time.Time          `json:"issueDate,omitempty"`
	ExpiryDate  *time.Time          `json:"expiryDate,omitempty"`
	Items       []LineItemRequest   `json:"items,omitempty" binding:"omitempty,min=1,dive"`
	Discount    *decimal.Decimal    `json:"discount,omitempty"`
	TaxAmount   *decimal.Decimal    `json:"taxAmount,omitempty"`
	Status      *domain.QuoteStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT SENT ACCEPTED DECLINED"`
}

// ConvertQuoteToInvoiceRequest carries the invoice fields not present on the quote.
type ConvertQuoteToInvoiceRequest struct {
	InvoiceNumber string    `json:"invoiceNumber" binding:"required"`
	DueDate       time.Time `json:"dueDate" binding:"required"`
}

// ConvertQuoteToJobRequest carries the job fields not present on the quote.
type ConvertQuoteToJobRequest struct {
	Title string `json:"title" binding:"required"`
}

// QuoteResponse defines the data returned for a quote.
type QuoteResponse struct {
	QuoteID              string             `json:"quoteID"`
	QuoteNumber          string             `json:"quoteNumber"`
	CustomerID           string             `json:"customerID"`
	IssueDate            time.Time          `json:"issueDate"`
	ExpiryDate           time.Time          `json:"expiryDate"`
	Items                []LineItemResponse `json:"items"`
	Status               string             `json:"status"`
	Discount             decimal.Decimal    `json:"discount"`
	TaxAmount            decimal.Decimal    `json:"taxAmount"`
	Subtotal             decimal.Decimal    `json:"subtotal"`
	GrandTotal           decimal.Decimal    `json:"grandTotal"`
	ConvertedToJobID     *string            `json:"convertedToJobID,omitempty"`
	ConvertedToInvoiceID *string            `json:"convertedToInvoiceID,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// ListQuotesResponse wraps a list of quotes.
type ListQuotesResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

// JobResponse defines the data returned for a job.
type JobResponse struct {
	JobID      string             `json:"jobID"`
	QuoteID    string             `json:"quoteID"`
	CustomerID string             `json:"customerID"`
	Title      string             `json:"title"`
	Items      []LineItemResponse `json:"items"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse.
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		QuoteID:              q.QuoteID,
		QuoteNumber:          q.QuoteNumber,
		CustomerID:           q.CustomerID,
		IssueDate:            q.IssueDate,
		ExpiryDate:           q.ExpiryDate,
		Items:                ToLineItemResponses(q.Items),
		Status:               string(q.Status),
		Discount:             q.Discount,
		TaxAmount:            q.TaxAmount,
		Subtotal:             q.Subtotal(),
		GrandTotal:           q.GrandTotal(),
		ConvertedToJobID:     q.ConvertedToJobID,
		ConvertedToInvoiceID: q.ConvertedToInvoiceID,
		CreatedAt:            q.CreatedAt,
	}
}

// ToQuoteResponses converts a slice of domain.Quote to responses.
func ToQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteResponse(&quotes[i])
	}
	return responses
}

// ToJobResponse converts a domain.Job to JobResponse.
func ToJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		JobID:      j.JobID,
		QuoteID:    j.QuoteID,
		CustomerID: j.CustomerID,
		Title:      j.Title,
		Items:      ToLineItemResponses(j.Items),
		Status:     string(j.Status),
		CreatedAt:  j.CreatedAt,
	}
}
