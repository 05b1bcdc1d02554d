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

type paymentService struct {
	BaseService
	txManager         portrepo.TransactionManager
	journalRepo       portrepo.JournalRepositoryFacade
	accountRepo       portrepo.AccountRepositoryFacade
	invoiceRepo       portrepo.InvoiceRepositoryFacade
	purchaseOrderRepo portrepo.PurchaseOrderRepositoryFacade
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	txManager portrepo.TransactionManager,
	journalRepo portrepo.JournalRepositoryFacade,
	accountRepo portrepo.AccountRepositoryFacade,
	invoiceRepo portrepo.InvoiceRepositoryFacade,
	purchaseOrderRepo portrepo.PurchaseOrderRepositoryFacade,
) portsvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:       NewBaseService(),
		txManager:         txManager,
		journalRepo:       journalRepo,
		accountRepo:       accountRepo,
		invoiceRepo:       invoiceRepo,
		purchaseOrderRepo: purchaseOrderRepo,
	}
}

// validatePaymentAccount checks the amount is positive and the
// deposit/source account exists and is active. Customer receipts must land
// on an asset account (cash, bank and the like); supplier payments may draw
// on any account, a credit line for example.
func (s *paymentService) validatePaymentAccount(ctx context.Context, req dto.AddPaymentRequest, requireAsset bool) error {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	accounts, err := verifyAccountsUsable(ctx, s.accountRepo, []string{req.AccountID})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}
	if requireAsset && accounts[req.AccountID].AccountType != domain.Asset {
		return fmt.Errorf("%w: account %s is not an asset account", ErrInvalidPayment, req.AccountID)
	}
	return nil
}

func newPayment(req dto.AddPaymentRequest, amount decimal.Decimal, now time.Time) domain.Payment {
	return domain.Payment{
		PaymentID:   uuid.NewString(),
		Date:        req.Date,
		Amount:      amount,
		Method:      req.Method,
		AccountID:   req.AccountID,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

// AddPaymentToInvoice records the full payment against one invoice and posts
// a single journal entry debiting the deposit account and crediting Accounts
// Receivable. Everything happens in one transaction.
func (s *paymentService) AddPaymentToInvoice(ctx context.Context, invoiceID string, req dto.AddPaymentRequest) (*domain.Invoice, *domain.Journal, error) {
	if err := s.validatePaymentAccount(ctx, req, true); err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, nil, err
	}

	payment := newPayment(req, req.Amount, now)
	if err := s.invoiceRepo.AppendPaymentInTx(ctx, tx, invoiceID, payment); err != nil {
		return nil, nil, fmt.Errorf("failed to append payment: %w", err)
	}
	invoice.Payments = append(invoice.Payments, payment)

	memo := fmt.Sprintf("Payment received for invoice %s", invoice.InvoiceNumber)
	journal, transactions, balanceChanges, err := buildJournal(req.Date, memo, []entryLine{
		{accountID: req.AccountID, txnType: domain.Debit, amount: req.Amount},
		{accountID: domain.SystemAccountReceivable, txnType: domain.Credit, amount: req.Amount},
	}, now)
	if err != nil {
		return nil, nil, err
	}
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		s.LogError(ctx, "failed to post payment journal", "error", err, "invoiceID", invoiceID)
		return nil, nil, fmt.Errorf("failed to post payment journal: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	s.LogInfo(ctx, "invoice payment recorded", "invoiceID", invoiceID, "amount", req.Amount.String())
	return invoice, &journal, nil
}

// AddPaymentToPurchaseOrder is the supplier-side mirror: debit Accounts
// Payable, credit the source account.
func (s *paymentService) AddPaymentToPurchaseOrder(ctx context.Context, purchaseOrderID string, req dto.AddPaymentRequest) (*domain.PurchaseOrder, *domain.Journal, error) {
	if err := s.validatePaymentAccount(ctx, req, false); err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	order, err := s.purchaseOrderRepo.FindPurchaseOrderByIDForUpdate(ctx, tx, purchaseOrderID)
	if err != nil {
		return nil, nil, err
	}

	payment := newPayment(req, req.Amount, now)
	if err := s.purchaseOrderRepo.AppendPaymentInTx(ctx, tx, purchaseOrderID, payment); err != nil {
		return nil, nil, fmt.Errorf("failed to append payment: %w", err)
	}
	order.Payments = append(order.Payments, payment)

	memo := fmt.Sprintf("Payment made for purchase order %s", order.OrderNumber)
	journal, transactions, balanceChanges, err := buildJournal(req.Date, memo, []entryLine{
		{accountID: domain.SystemAccountPayable, txnType: domain.Debit, amount: req.Amount},
		{accountID: req.AccountID, txnType: domain.Credit, amount: req.Amount},
	}, now)
	if err != nil {
		return nil, nil, err
	}
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		s.LogError(ctx, "failed to post payment journal", "error", err, "purchaseOrderID", purchaseOrderID)
		return nil, nil, fmt.Errorf("failed to post payment journal: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	s.LogInfo(ctx, "purchase order payment recorded", "purchaseOrderID", purchaseOrderID, "amount", req.Amount.String())
	return order, &journal, nil
}

// ReceiveCustomerPayment distributes a lump payment across the customer's
// outstanding invoices oldest-first by issue date. Each touched invoice gets
// its own payment record, but exactly one journal entry is posted for the
// whole amount. Payments exceeding the customer's total outstanding are
// rejected; nothing is partially applied.
func (s *paymentService) ReceiveCustomerPayment(ctx context.Context, req dto.ReceiveCustomerPaymentRequest) (*portsvc.CustomerAllocationResult, error) {
	if err := s.validatePaymentAccount(ctx, req.AddPaymentRequest, true); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	invoices, err := s.invoiceRepo.FindOutstandingByCustomerForUpdate(ctx, tx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding invoices: %w", err)
	}

	outstanding := decimal.Zero
	for i := range invoices {
		if due := invoices[i].BalanceDue(); due.GreaterThan(decimal.Zero) {
			outstanding = outstanding.Add(due)
		}
	}
	if req.Amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: amount %s exceeds outstanding balance %s for customer %s",
			ErrInvalidPayment, req.Amount.String(), outstanding.String(), req.CustomerID)
	}

	remaining := req.Amount
	updated := make([]domain.Invoice, 0, len(invoices))
	for i := range invoices {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		due := invoices[i].BalanceDue()
		if due.LessThanOrEqual(decimal.Zero) {
			continue
		}
		applied := decimal.Min(remaining, due)

		payment := newPayment(req.AddPaymentRequest, applied, now)
		if err := s.invoiceRepo.AppendPaymentInTx(ctx, tx, invoices[i].InvoiceID, payment); err != nil {
			return nil, fmt.Errorf("failed to append payment to invoice %s: %w", invoices[i].InvoiceID, err)
		}
		invoices[i].Payments = append(invoices[i].Payments, payment)
		updated = append(updated, invoices[i])
		remaining = remaining.Sub(applied)
	}

	memo := fmt.Sprintf("Payment received from customer %s", req.CustomerID)
	journal, transactions, balanceChanges, err := buildJournal(req.Date, memo, []entryLine{
		{accountID: req.AccountID, txnType: domain.Debit, amount: req.Amount},
		{accountID: domain.SystemAccountReceivable, txnType: domain.Credit, amount: req.Amount},
	}, now)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		s.LogError(ctx, "failed to post allocation journal", "error", err, "customerID", req.CustomerID)
		return nil, fmt.Errorf("failed to post allocation journal: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit allocation: %w", err)
	}

	s.LogInfo(ctx, "customer payment allocated",
		"customerID", req.CustomerID, "amount", req.Amount.String(), "invoices", len(updated))
	return &portsvc.CustomerAllocationResult{UpdatedInvoices: updated, Journal: &journal}, nil
}

// MakeSupplierPayment distributes a lump payment across the supplier's
// outstanding purchase orders oldest-first by order date, mirroring
// ReceiveCustomerPayment on the payable side.
func (s *paymentService) MakeSupplierPayment(ctx context.Context, req dto.MakeSupplierPaymentRequest) (*portsvc.SupplierAllocationResult, error) {
	if err := s.validatePaymentAccount(ctx, req.AddPaymentRequest, false); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	orders, err := s.purchaseOrderRepo.FindOutstandingBySupplierForUpdate(ctx, tx, req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding purchase orders: %w", err)
	}

	outstanding := decimal.Zero
	for i := range orders {
		if due := orders[i].BalanceDue(); due.GreaterThan(decimal.Zero) {
			outstanding = outstanding.Add(due)
		}
	}
	if req.Amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: amount %s exceeds outstanding balance %s for supplier %s",
			ErrInvalidPayment, req.Amount.String(), outstanding.String(), req.SupplierID)
	}

	remaining := req.Amount
	updated := make([]domain.PurchaseOrder, 0, len(orders))
	for i := range orders {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		due := orders[i].BalanceDue()
		if due.LessThanOrEqual(decimal.Zero) {
			continue
		}
		applied := decimal.Min(remaining, due)

		payment := newPayment(req.AddPaymentRequest, applied, now)
		if err := s.purchaseOrderRepo.AppendPaymentInTx(ctx, tx, orders[i].PurchaseOrderID, payment); err != nil {
			return nil, fmt.Errorf("failed to append payment to purchase order %s: %w", orders[i].PurchaseOrderID, err)
		}
		orders[i].Payments = append(orders[i].Payments, payment)
		updated = append(updated, orders[i])
		remaining = remaining.Sub(applied)
	}

	memo := fmt.Sprintf("Payment made to supplier %s", req.SupplierID)
	journal, transactions, balanceChanges, err := buildJournal(req.Date, memo, []entryLine{
		{accountID: domain.SystemAccountPayable, txnType: domain.Debit, amount: req.Amount},
		{accountID: req.AccountID, txnType: domain.Credit, amount: req.Amount},
	}, now)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		s.LogError(ctx, "failed to post allocation journal", "error", err, "supplierID", req.SupplierID)
		return nil, fmt.Errorf("failed to post allocation journal: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit allocation: %w", err)
	}

	s.LogInfo(ctx, "supplier payment allocated",
		"supplierID", req.SupplierID, "amount", req.Amount.String(), "orders", len(updated))
	return &portsvc.SupplierAllocationResult{UpdatedOrders: updated, Journal: &journal}, nil
}
