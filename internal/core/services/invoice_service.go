package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type invoiceService struct {
	BaseService
	txManager   portrepo.TransactionManager
	invoiceRepo portrepo.InvoiceRepositoryFacade
	challanRepo portrepo.ChallanRepositoryFacade
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(txManager portrepo.TransactionManager, invoiceRepo portrepo.InvoiceRepositoryFacade, challanRepo portrepo.ChallanRepositoryFacade) portsvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: NewBaseService(),
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		challanRepo: challanRepo,
	}
}

// newLineItems assigns fresh ids to the requested items.
func newLineItems(items []dto.LineItemRequest) []domain.LineItem {
	ids := make([]string, len(items))
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return dto.ToLineItems(items, ids)
}

func validateLineItems(items []domain.LineItem) error {
	for _, item := range items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: line %q must have positive quantity and non-negative unit price",
				ErrUnbalancedEntry, item.Description)
		}
	}
	return nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	items := newLineItems(req.Items)
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Items:         items,
		Status:        domain.StatusDraft,
		Payments:      []domain.Payment{},
		PreviousDue:   req.PreviousDue,
		Discount:      req.Discount,
		TaxAmount:     req.TaxAmount,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, "failed to save invoice", "error", err)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	return &invoice, nil
}

// UpdateInvoice applies header and item changes. The derived statuses are
// write-protected: requests naming PAID or PARTIALLY_PAID are rejected, as is
// any manual status change once a payment exists.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != invoice.Status {
		if req.Status.IsDerived() {
			return nil, fmt.Errorf("%w: %s", ErrStatusProtected, *req.Status)
		}
		if invoice.TotalPaid().GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: invoice %s has payments", ErrStatusProtected, invoiceID)
		}
		invoice.Status = *req.Status
	}
	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = *req.InvoiceNumber
	}
	if req.IssueDate != nil {
		invoice.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if req.Items != nil {
		items := newLineItems(req.Items)
		if err := validateLineItems(items); err != nil {
			return nil, err
		}
		invoice.Items = items
	}
	if req.PreviousDue != nil {
		invoice.PreviousDue = *req.PreviousDue
	}
	if req.Discount != nil {
		invoice.Discount = *req.Discount
	}
	if req.TaxAmount != nil {
		invoice.TaxAmount = *req.TaxAmount
	}
	invoice.LastUpdatedAt = time.Now().UTC()

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, "failed to update invoice", "error", err, "invoiceID", invoiceID)
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice that has no payments. Paid history must
// stay reconstructible from the ledger, so documents with payments are kept.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if len(invoice.Payments) > 0 {
		return fmt.Errorf("%w: invoice %s", ErrPaymentsExist, invoiceID)
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		s.LogError(ctx, "failed to delete invoice", "error", err, "invoiceID", invoiceID)
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	s.LogInfo(ctx, "invoice deleted", "invoiceID", invoiceID)
	return nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoices(ctx, customerID)
}

// ConvertToChallan creates a delivery challan carrying the invoice's items
// and records the link id on the invoice. The row lock makes a concurrent
// second conversion observe the link and fail. No ledger effect.
func (s *invoiceService) ConvertToChallan(ctx context.Context, invoiceID string, req dto.ConvertInvoiceToChallanRequest) (*domain.DeliveryChallan, error) {
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.ChallanID != nil {
		return nil, fmt.Errorf("%w: invoice %s already has challan %s", ErrAlreadyConverted, invoiceID, *invoice.ChallanID)
	}

	items := make([]domain.LineItem, len(invoice.Items))
	copy(items, invoice.Items)
	challan := domain.DeliveryChallan{
		ChallanID:     uuid.NewString(),
		ChallanNumber: req.ChallanNumber,
		InvoiceID:     invoiceID,
		CustomerID:    invoice.CustomerID,
		DeliveryDate:  req.DeliveryDate,
		Items:         items,
		VehicleNumber: req.VehicleNumber,
		Notes:         req.Notes,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.challanRepo.SaveChallanInTx(ctx, tx, challan); err != nil {
		return nil, fmt.Errorf("failed to save challan: %w", err)
	}
	if err := s.invoiceRepo.SetChallanLinkInTx(ctx, tx, invoiceID, challan.ChallanID); err != nil {
		return nil, fmt.Errorf("failed to link challan: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion: %w", err)
	}

	s.LogInfo(ctx, "invoice converted to challan", "invoiceID", invoiceID, "challanID", challan.ChallanID)
	return &challan, nil
}
