package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
)

// ConvertInvoiceToChallanRequest carries the delivery fields not present on
// the invoice.
type ConvertInvoiceToChallanRequest struct {
	ChallanNumber string    `json:"challanNumber" binding:"required"`
	DeliveryDate  time.Time `json:"deliveryDate" binding:"required"`
	VehicleNumber string    `json:"vehicleNumber"`
	Notes         string    `json:"notes"`
}

// UpdateChallanRequest defines the payload for updating a delivery challan.
type UpdateChallanRequest struct {
	DeliveryDate  *time.Time `json:"deliveryDate,omitempty"`
	VehicleNumber *string    `json:"vehicleNumber,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// ChallanResponse defines the data returned for a delivery challan.
type ChallanResponse struct {
	ChallanID     string             `json:"challanID"`
	ChallanNumber string             `json:"challanNumber"`
	InvoiceID     string             `json:"invoiceID"`
	CustomerID    string             `json:"customerID"`
	DeliveryDate  time.Time          `json:"deliveryDate"`
	Items         []LineItemResponse `json:"items"`
	VehicleNumber string             `json:"vehicleNumber"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ListChallansResponse wraps a list of delivery challans.
type ListChallansResponse struct {
	Challans []ChallanResponse `json:"challans"`
}

// ToChallanResponse converts a domain.DeliveryChallan to ChallanResponse.
func ToChallanResponse(ch *domain.DeliveryChallan) ChallanResponse {
	return ChallanResponse{
		ChallanID:     ch.ChallanID,
		ChallanNumber: ch.ChallanNumber,
		InvoiceID:     ch.InvoiceID,
		CustomerID:    ch.CustomerID,
		DeliveryDate:  ch.DeliveryDate,
		Items:         ToLineItemResponses(ch.Items),
		VehicleNumber: ch.VehicleNumber,
		Notes:         ch.Notes,
		CreatedAt:     ch.CreatedAt,
	}
}

// ToChallanResponses converts a slice of domain.DeliveryChallan to responses.
func ToChallanResponses(challans []domain.DeliveryChallan) []ChallanResponse {
	responses := make([]ChallanResponse, len(challans))
	for i := range challans {
		responses[i] = ToChallanResponse(&challans[i])
	}
	return responses
}
