package domain_test

import (
	"testing"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_GrandTotal(t *testing.T) {
	tests := []struct {
		name    string
		invoice domain.Invoice
		want    decimal.Decimal
	}{
		{
			name: "items only",
			invoice: domain.Invoice{
				Items: []domain.LineItem{
					{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(150)},
				},
			},
			want: decimal.NewFromInt(300),
		},
		{
			name: "previous due and tax added, discount subtracted",
			invoice: domain.Invoice{
				Items: []domain.LineItem{
					{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)},
				},
				PreviousDue: decimal.NewFromInt(200),
				Discount:    decimal.NewFromInt(100),
				TaxAmount:   decimal.NewFromInt(90),
			},
			want: decimal.NewFromInt(1190),
		},
		{
			name: "fractional quantities",
			invoice: domain.Invoice{
				Items: []domain.LineItem{
					{Quantity: decimal.NewFromFloat(2.5), UnitPrice: decimal.NewFromInt(40)},
				},
			},
			want: decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.invoice.GrandTotal()
			assert.True(t, got.Equal(tt.want), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestInvoice_BalanceDue(t *testing.T) {
	invoice := domain.Invoice{
		Items: []domain.LineItem{
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500)},
		},
		Payments: []domain.Payment{
			{Amount: decimal.NewFromInt(200)},
			{Amount: decimal.NewFromInt(100)},
		},
	}

	assert.True(t, invoice.TotalPaid().Equal(decimal.NewFromInt(300)))
	assert.True(t, invoice.BalanceDue().Equal(decimal.NewFromInt(200)))

	// Overpayment leaves a negative balance rather than clamping at zero.
	invoice.Payments = append(invoice.Payments, domain.Payment{Amount: decimal.NewFromInt(250)})
	assert.True(t, invoice.BalanceDue().Equal(decimal.NewFromInt(-50)))
}

func TestDocumentStatus_IsDerived(t *testing.T) {
	tests := []struct {
		status domain.DocumentStatus
		want   bool
	}{
		{domain.StatusDraft, false},
		{domain.StatusSent, false},
		{domain.StatusPartiallyPaid, true},
		{domain.StatusPaid, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.IsDerived(), "status %s", tt.status)
	}
}
