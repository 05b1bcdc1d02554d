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
type CreditNoteServiceTestSuite struct {
	suite.Suite
	mockTxManager      *MockTxManager
	mockCreditNoteRepo *MockCreditNoteRepository
	mockInvoiceRepo    *MockInvoiceRepository
	mockJournalRepo    *MockJournalRepository
	service            portssvc.CreditNoteSvcFacade
	customerID         string
}

func (suite *CreditNoteServiceTestSuite) SetupTest() {
	suite.mockTxManager = new(MockTxManager)
	suite.mockCreditNoteRepo = new(MockCreditNoteRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewCreditNoteService(suite.mockTxManager, suite.mockCreditNoteRepo, suite.mockInvoiceRepo, suite.mockJournalRepo)
	suite.customerID = uuid.NewString()
}

func (suite *CreditNoteServiceTestSuite) newCreditNote(number string) domain.CreditNote {
	return domain.CreditNote{
		CreditNoteID:      uuid.NewString(),
		CreditNoteNumber:  number,
		OriginalInvoiceID: uuid.NewString(),
		CustomerID:        suite.customerID,
		IssueDate:         time.Now().AddDate(0, 0, -1),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), Description: "Returned chairs", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(200)},
		},
		Reason:    "Damaged in transit",
		TaxAmount: decimal.NewFromInt(40),
		Status:    domain.CreditNoteDraft,
	}
}

// --- Test Cases ---

func (suite *CreditNoteServiceTestSuite) TestCreateCreditNote_Success() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-400",
		CustomerID:    suite.customerID,
	}
	req := dto.CreateCreditNoteRequest{
		CreditNoteNumber:  "CN-001",
		OriginalInvoiceID: invoice.InvoiceID,
		IssueDate:         time.Now(),
		Items: []dto.LineItemRequest{
			{Description: "Returned chairs", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(200)},
		},
		Reason:    "Damaged in transit",
		TaxAmount: decimal.NewFromInt(40),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockCreditNoteRepo.On("SaveCreditNote", ctx, mock.AnythingOfType("domain.CreditNote")).Return(nil).Once()

	note, err := suite.service.CreateCreditNote(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(note)
	suite.Equal(domain.CreditNoteDraft, note.Status)
	suite.Equal(suite.customerID, note.CustomerID)
	suite.True(note.Total().Equal(decimal.NewFromInt(440)))
	suite.mockCreditNoteRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *CreditNoteServiceTestSuite) TestFinalizeCreditNote_PostsReversingEntry() {
	ctx := context.Background()
	note := suite.newCreditNote("CN-010")

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockCreditNoteRepo.On("FindCreditNoteByIDForUpdate", ctx, mock.Anything, note.CreditNoteID).Return(&note, nil).Once()

	var savedJournal domain.Journal
	suite.mockJournalRepo.On("SaveJournalInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedJournal = args.Get(2).(domain.Journal)
		}).
		Return(nil).Once()
	suite.mockCreditNoteRepo.On("FinalizeCreditNoteInTx", ctx, mock.Anything, note.CreditNoteID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockTxManager.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.FinalizeCreditNote(ctx, note.CreditNoteID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.CreditNoteFinalized, result.Status)
	suite.Require().NotNil(result.JournalID)
	suite.Equal(savedJournal.JournalID, *result.JournalID)

	// Sales revenue is debited and receivables credited for the full
	// note amount, 400 + 40 tax.
	suite.Require().Len(savedJournal.Transactions, 2)
	suite.Equal(domain.SystemAccountSalesRevenue, savedJournal.Transactions[0].AccountID)
	suite.Equal(domain.Debit, savedJournal.Transactions[0].TransactionType)
	suite.Equal(domain.SystemAccountReceivable, savedJournal.Transactions[1].AccountID)
	suite.Equal(domain.Credit, savedJournal.Transactions[1].TransactionType)
	suite.True(savedJournal.Amount.Equal(decimal.NewFromInt(440)))
	suite.Contains(savedJournal.Memo, note.CreditNoteNumber)

	suite.mockCreditNoteRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *CreditNoteServiceTestSuite) TestFinalizeCreditNote_AlreadyFinalized() {
	ctx := context.Background()
	note := suite.newCreditNote("CN-011")
	note.Status = domain.CreditNoteFinalized

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockCreditNoteRepo.On("FindCreditNoteByIDForUpdate", ctx, mock.Anything, note.CreditNoteID).Return(&note, nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.FinalizeCreditNote(ctx, note.CreditNoteID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFinalized)
	suite.Nil(result)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CreditNoteServiceTestSuite) TestUpdateCreditNote_FinalizedRejected() {
	ctx := context.Background()
	note := suite.newCreditNote("CN-020")
	note.Status = domain.CreditNoteFinalized
	newNumber := "CN-020-A"

	suite.mockCreditNoteRepo.On("FindCreditNoteByID", ctx, note.CreditNoteID).Return(&note, nil).Once()

	result, err := suite.service.UpdateCreditNote(ctx, note.CreditNoteID, dto.UpdateCreditNoteRequest{CreditNoteNumber: &newNumber})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFinalized)
	suite.Nil(result)
	suite.mockCreditNoteRepo.AssertNotCalled(suite.T(), "UpdateCreditNote", mock.Anything, mock.Anything)
}

func (suite *CreditNoteServiceTestSuite) TestDeleteCreditNote_FinalizedRejected() {
	ctx := context.Background()
	note := suite.newCreditNote("CN-021")
	note.Status = domain.CreditNoteFinalized

	suite.mockCreditNoteRepo.On("FindCreditNoteByID", ctx, note.CreditNoteID).Return(&note, nil).Once()

	err := suite.service.DeleteCreditNote(ctx, note.CreditNoteID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFinalized)
	suite.mockCreditNoteRepo.AssertNotCalled(suite.T(), "DeleteCreditNote", mock.Anything, mock.Anything)
}

func TestCreditNoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditNoteServiceTestSuite))
}
