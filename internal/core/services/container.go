package services

import (
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos *portrepo.RepositoryProvider) *portsvc.ServiceContainer {
	return &portsvc.ServiceContainer{
		Account:       NewAccountService(repos.AccountRepo),
		Journal:       NewJournalService(repos.TxManager, repos.JournalRepo, repos.AccountRepo),
		Invoice:       NewInvoiceService(repos.TxManager, repos.InvoiceRepo, repos.ChallanRepo),
		PurchaseOrder: NewPurchaseOrderService(repos.PurchaseOrderRepo),
		Payment:       NewPaymentService(repos.TxManager, repos.JournalRepo, repos.AccountRepo, repos.InvoiceRepo, repos.PurchaseOrderRepo),
		Quote:         NewQuoteService(repos.TxManager, repos.QuoteRepo),
		Challan:       NewChallanService(repos.ChallanRepo),
		CreditNote:    NewCreditNoteService(repos.TxManager, repos.CreditNoteRepo, repos.InvoiceRepo, repos.JournalRepo),
		Expense:       NewExpenseService(repos.TxManager, repos.ExpenseRepo, repos.JournalRepo, repos.AccountRepo),
		Reporting:     NewReportingService(repos.ReportingRepo, repos.InvoiceRepo, repos.PurchaseOrderRepo),
		Snapshot:      NewSnapshotService(repos),
	}
}
