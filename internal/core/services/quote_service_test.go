package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/core/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type QuoteServiceTestSuite struct {
	suite.Suite
	mockTxManager *MockTxManager
	mockQuoteRepo *MockQuoteRepository
	service       portssvc.QuoteSvcFacade
	customerID    string
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.mockTxManager = new(MockTxManager)
	suite.mockQuoteRepo = new(MockQuoteRepository)
	suite.service = services.NewQuoteService(suite.mockTxManager, suite.mockQuoteRepo)
	suite.customerID = uuid.NewString()
}

func (suite *QuoteServiceTestSuite) newQuote(number string) domain.Quote {
	return domain.Quote{
		QuoteID:     uuid.NewString(),
		QuoteNumber: number,
		CustomerID:  suite.customerID,
		IssueDate:   time.Now().AddDate(0, 0, -7),
		ExpiryDate:  time.Now().AddDate(0, 1, 0),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), Description: "Wardrobe", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1200)},
		},
		Status:    domain.QuoteAccepted,
		Discount:  decimal.NewFromInt(100),
		TaxAmount: decimal.NewFromInt(110),
	}
}

// --- Test Cases ---

func (suite *QuoteServiceTestSuite) TestCreateQuote_Success() {
	ctx := context.Background()
	req := dto.CreateQuoteRequest{
		QuoteNumber: "Q-001",
		CustomerID:  suite.customerID,
		IssueDate:   time.Now(),
		ExpiryDate:  time.Now().AddDate(0, 1, 0),
		Items: []dto.LineItemRequest{
			{Description: "Shelves", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(75)},
		},
	}

	suite.mockQuoteRepo.On("SaveQuote", ctx, mock.AnythingOfType("domain.Quote")).Return(nil).Once()

	quote, err := suite.service.CreateQuote(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(quote)
	suite.Equal(domain.QuoteDraft, quote.Status)
	suite.True(quote.GrandTotal().Equal(decimal.NewFromInt(300)))
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestConvertToJob_Success() {
	ctx := context.Background()
	quote := suite.newQuote("Q-010")
	req := dto.ConvertQuoteToJobRequest{Title: "Build wardrobe"}

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, mock.Anything, quote.QuoteID).Return(&quote, nil).Once()

	var savedJob domain.Job
	suite.mockQuoteRepo.On("SaveJobInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Job")).
		Run(func(args mock.Arguments) {
			savedJob = args.Get(2).(domain.Job)
		}).
		Return(nil).Once()
	suite.mockQuoteRepo.On("SetConversionLinksInTx", ctx, mock.Anything, quote.QuoteID, mock.AnythingOfType("*string"), (*string)(nil)).Return(nil).Once()
	suite.mockTxManager.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	job, err := suite.service.ConvertToJob(ctx, quote.QuoteID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(job)
	suite.Equal(quote.QuoteID, job.QuoteID)
	suite.Equal(quote.CustomerID, job.CustomerID)
	suite.Equal(domain.JobPending, job.Status)
	suite.Equal("Build wardrobe", job.Title)
	suite.Len(savedJob.Items, len(quote.Items))

	suite.mockQuoteRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestConvertToJob_AlreadyConverted() {
	ctx := context.Background()
	quote := suite.newQuote("Q-011")
	existingJobID := uuid.NewString()
	quote.ConvertedToJobID = &existingJobID

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, mock.Anything, quote.QuoteID).Return(&quote, nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	job, err := suite.service.ConvertToJob(ctx, quote.QuoteID, dto.ConvertQuoteToJobRequest{Title: "Again"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyConverted)
	suite.Nil(job)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveJobInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestConvertToInvoice_Success() {
	ctx := context.Background()
	quote := suite.newQuote("Q-020")
	req := dto.ConvertQuoteToInvoiceRequest{
		InvoiceNumber: "INV-200",
		DueDate:       time.Now().AddDate(0, 1, 0),
	}

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, mock.Anything, quote.QuoteID).Return(&quote, nil).Once()

	var savedInvoice domain.Invoice
	suite.mockQuoteRepo.On("SaveInvoiceInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) {
			savedInvoice = args.Get(2).(domain.Invoice)
		}).
		Return(nil).Once()
	suite.mockQuoteRepo.On("SetConversionLinksInTx", ctx, mock.Anything, quote.QuoteID, (*string)(nil), mock.AnythingOfType("*string")).Return(nil).Once()
	suite.mockTxManager.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	invoice, err := suite.service.ConvertToInvoice(ctx, quote.QuoteID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.StatusDraft, invoice.Status)
	suite.Equal(quote.CustomerID, invoice.CustomerID)
	suite.True(invoice.Discount.Equal(quote.Discount))
	suite.True(invoice.TaxAmount.Equal(quote.TaxAmount))
	suite.Len(savedInvoice.Items, len(quote.Items))
	// 1200 - 100 discount + 110 tax, same as the quote.
	suite.True(invoice.GrandTotal().Equal(quote.GrandTotal()))

	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestConvertToInvoice_AlreadyConverted() {
	ctx := context.Background()
	quote := suite.newQuote("Q-021")
	existingInvoiceID := uuid.NewString()
	quote.ConvertedToInvoiceID = &existingInvoiceID

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, mock.Anything, quote.QuoteID).Return(&quote, nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	invoice, err := suite.service.ConvertToInvoice(ctx, quote.QuoteID, dto.ConvertQuoteToInvoiceRequest{InvoiceNumber: "INV-201", DueDate: time.Now()})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyConverted)
	suite.Nil(invoice)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestDeleteQuote_ConvertedRejected() {
	ctx := context.Background()
	quote := suite.newQuote("Q-030")
	jobID := uuid.NewString()
	quote.ConvertedToJobID = &jobID

	suite.mockQuoteRepo.On("FindQuoteByID", ctx, quote.QuoteID).Return(&quote, nil).Once()

	err := suite.service.DeleteQuote(ctx, quote.QuoteID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyConverted)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "DeleteQuote", mock.Anything, mock.Anything)
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}
