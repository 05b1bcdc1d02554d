package domain

import "time"

// DeliveryChallan is a goods-delivery document produced from an invoice.
// It never touches the ledger.
type DeliveryChallan struct {
	ChallanID     string     `json:"challanID"`
	ChallanNumber string     `json:"challanNumber"`
	InvoiceID     string     `json:"invoiceID"`
	CustomerID    string     `json:"customerID"`
	DeliveryDate  time.Time  `json:"deliveryDate"`
	Items         []LineItem `json:"items"`
	VehicleNumber string     `json:"vehicleNumber"`
	Notes         string     `json:"notes"`
	AuditFields
}
