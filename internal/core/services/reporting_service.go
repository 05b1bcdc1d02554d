package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	BaseService
	reportingRepo     portrepo.ReportingRepository
	invoiceRepo       portrepo.InvoiceRepositoryFacade
	purchaseOrderRepo portrepo.PurchaseOrderRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portrepo.ReportingRepository,
	invoiceRepo portrepo.InvoiceRepositoryFacade,
	purchaseOrderRepo portrepo.PurchaseOrderRepositoryFacade,
) portsvc.ReportingService {
	return &reportingService{
		BaseService:       NewBaseService(),
		reportingRepo:     reportingRepo,
		invoiceRepo:       invoiceRepo,
		purchaseOrderRepo: purchaseOrderRepo,
	}
}

func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}
	return rows, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build balance sheet: %w", err)
	}

	report := &domain.BalanceSheetReport{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
	}
	for _, a := range assets {
		report.TotalAssets = report.TotalAssets.Add(a.NetAmount)
	}
	for _, l := range liabilities {
		report.TotalLiabilities = report.TotalLiabilities.Add(l.NetAmount)
	}
	for _, e := range equity {
		report.TotalEquity = report.TotalEquity.Add(e.NetAmount)
	}
	return report, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build profit and loss: %w", err)
	}

	report := &domain.PAndLReport{Revenue: revenue, Expenses: expenses}
	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}
	report.NetProfit = totalRevenue.Sub(totalExpenses)
	return report, nil
}

func (s *reportingService) GeneralLedger(ctx context.Context, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	rows, err := s.reportingRepo.GetGeneralLedgerData(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build general ledger: %w", err)
	}
	return rows, nil
}

// AgedReceivables buckets outstanding non-draft invoices by days past due
// as of the given date.
func (s *reportingService) AgedReceivables(ctx context.Context, asOf time.Time) (*domain.AgedReport, error) {
	invoices, err := s.invoiceRepo.FindAllInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	report := newAgedReport(asOf)
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status == domain.StatusDraft {
			continue
		}
		addAgedRow(report, domain.AgedDocumentRow{
			DocumentID:     inv.InvoiceID,
			DocumentNumber: inv.InvoiceNumber,
			PartyID:        inv.CustomerID,
			DueDate:        inv.DueDate,
			BalanceDue:     inv.BalanceDue(),
		}, asOf)
	}
	return report, nil
}

// AgedPayables is the supplier-side counterpart over purchase orders.
func (s *reportingService) AgedPayables(ctx context.Context, asOf time.Time) (*domain.AgedReport, error) {
	orders, err := s.purchaseOrderRepo.FindAllPurchaseOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase orders: %w", err)
	}

	report := newAgedReport(asOf)
	for i := range orders {
		po := &orders[i]
		if po.Status == domain.StatusDraft {
			continue
		}
		addAgedRow(report, domain.AgedDocumentRow{
			DocumentID:     po.PurchaseOrderID,
			DocumentNumber: po.OrderNumber,
			PartyID:        po.SupplierID,
			DueDate:        po.DueDate,
			BalanceDue:     po.BalanceDue(),
		}, asOf)
	}
	return report, nil
}

func newAgedReport(asOf time.Time) *domain.AgedReport {
	return &domain.AgedReport{
		AsOf: asOf,
		Rows: []domain.AgedDocumentRow{},
		BucketTotals: map[domain.AgingBucket]decimal.Decimal{
			domain.BucketCurrent: decimal.Zero,
			domain.Bucket1To30:   decimal.Zero,
			domain.Bucket31To60:  decimal.Zero,
			domain.Bucket61To90:  decimal.Zero,
			domain.BucketOver90:  decimal.Zero,
		},
	}
}

func addAgedRow(report *domain.AgedReport, row domain.AgedDocumentRow, asOf time.Time) {
	if row.BalanceDue.LessThanOrEqual(decimal.Zero) {
		return
	}
	daysPastDue := int(asOf.Sub(row.DueDate).Hours() / 24)
	row.Bucket = accounting.ClassifyAge(daysPastDue)

	report.Rows = append(report.Rows, row)
	report.BucketTotals[row.Bucket] = report.BucketTotals[row.Bucket].Add(row.BalanceDue)
	report.Total = report.Total.Add(row.BalanceDue)
}
