package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo     *MockReportingRepository
	mockInvoiceRepo       *MockInvoiceRepository
	mockPurchaseOrderRepo *MockPurchaseOrderRepository
	service               portssvc.ReportingService
	asOf                  time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPurchaseOrderRepo = new(MockPurchaseOrderRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockInvoiceRepo, suite.mockPurchaseOrderRepo)
	suite.asOf = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

// agedInvoice builds a sent invoice with one line worth total and a due date
// offset from asOf by the given number of days (negative means overdue).
func (suite *ReportingServiceTestSuite) agedInvoice(number string, total int64, dueOffsetDays int) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: number,
		CustomerID:    uuid.NewString(),
		IssueDate:     suite.asOf.AddDate(0, -2, 0),
		DueDate:       suite.asOf.AddDate(0, 0, dueOffsetDays),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(total)},
		},
		Status:   domain.StatusSent,
		Payments: []domain.Payment{},
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestAgedReceivables_Buckets() {
	ctx := context.Background()

	overdue5 := suite.agedInvoice("INV-1", 100, -5)   // 5 days past due
	notDue := suite.agedInvoice("INV-2", 200, 10)     // due in the future
	overdue45 := suite.agedInvoice("INV-3", 300, -45) // 45 days past due

	draft := suite.agedInvoice("INV-4", 400, -5)
	draft.Status = domain.StatusDraft

	settled := suite.agedInvoice("INV-5", 500, -20)
	settled.Payments = []domain.Payment{
		{PaymentID: uuid.NewString(), Date: suite.asOf, Amount: decimal.NewFromInt(500), Method: "CASH"},
	}

	suite.mockInvoiceRepo.On("FindAllInvoices", ctx).
		Return([]domain.Invoice{overdue5, notDue, overdue45, draft, settled}, nil).Once()

	report, err := suite.service.AgedReceivables(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(suite.asOf, report.AsOf)
	suite.Len(report.Rows, 3)

	bucketByNumber := make(map[string]domain.AgingBucket, len(report.Rows))
	for _, row := range report.Rows {
		bucketByNumber[row.DocumentNumber] = row.Bucket
	}
	suite.Equal(domain.Bucket1To30, bucketByNumber["INV-1"])
	suite.Equal(domain.BucketCurrent, bucketByNumber["INV-2"])
	suite.Equal(domain.Bucket31To60, bucketByNumber["INV-3"])

	suite.True(report.BucketTotals[domain.Bucket1To30].Equal(decimal.NewFromInt(100)))
	suite.True(report.BucketTotals[domain.BucketCurrent].Equal(decimal.NewFromInt(200)))
	suite.True(report.BucketTotals[domain.Bucket31To60].Equal(decimal.NewFromInt(300)))
	suite.True(report.BucketTotals[domain.Bucket61To90].IsZero())
	suite.True(report.BucketTotals[domain.BucketOver90].IsZero())
	suite.True(report.Total.Equal(decimal.NewFromInt(600)))

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAgedPayables_Buckets() {
	ctx := context.Background()

	po := domain.PurchaseOrder{
		PurchaseOrderID: uuid.NewString(),
		OrderNumber:     "PO-1",
		SupplierID:      uuid.NewString(),
		OrderDate:       suite.asOf.AddDate(0, -4, 0),
		DueDate:         suite.asOf.AddDate(0, 0, -95),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), Description: "Plywood", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(800)},
		},
		Status:   domain.StatusSent,
		Payments: []domain.Payment{},
	}

	suite.mockPurchaseOrderRepo.On("FindAllPurchaseOrders", ctx).
		Return([]domain.PurchaseOrder{po}, nil).Once()

	report, err := suite.service.AgedPayables(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.Equal(domain.BucketOver90, report.Rows[0].Bucket)
	suite.True(report.BucketTotals[domain.BucketOver90].Equal(decimal.NewFromInt(800)))
	suite.True(report.Total.Equal(decimal.NewFromInt(800)))

	suite.mockPurchaseOrderRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetProfit() {
	ctx := context.Background()
	from := suite.asOf.AddDate(0, -1, 0)
	to := suite.asOf

	revenue := []domain.AccountAmount{
		{AccountID: domain.SystemAccountSalesRevenue, Name: "Sales Revenue", NetAmount: decimal.NewFromInt(5000)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: domain.SystemAccountCOGS, Name: "Cost of Goods Sold", NetAmount: decimal.NewFromInt(2000)},
		{AccountID: uuid.NewString(), Name: "Rent", NetAmount: decimal.NewFromInt(900)},
	}

	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, from, to).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 2)
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(2100)))

	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Totals() {
	ctx := context.Background()

	assets := []domain.AccountAmount{
		{AccountID: domain.SystemAccountCash, Name: "Cash", NetAmount: decimal.NewFromInt(1500)},
		{AccountID: domain.SystemAccountReceivable, Name: "Accounts Receivable", NetAmount: decimal.NewFromInt(500)},
	}
	liabilities := []domain.AccountAmount{
		{AccountID: domain.SystemAccountPayable, Name: "Accounts Payable", NetAmount: decimal.NewFromInt(700)},
	}
	equity := []domain.AccountAmount{
		{AccountID: domain.SystemAccountOwnersEquity, Name: "Owner's Equity", NetAmount: decimal.NewFromInt(1300)},
	}

	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, suite.asOf).Return(assets, liabilities, equity, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(2000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(700)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(1300)))

	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
