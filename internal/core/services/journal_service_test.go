package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
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
type JournalServiceTestSuite struct {
	suite.Suite
	mockTxManager    *MockTxManager
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.JournalSvcFacade
	assetAccount     domain.Account
	liabilityAccount domain.Account
	revenueAccount   domain.Account
	expenseAccount   domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockTxManager = new(MockTxManager)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockTxManager, suite.mockJournalRepo, suite.mockAccountRepo)

	suite.assetAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Loan",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Sales",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Rent",
		AccountType: domain.ExpenseType,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Memo: "Opening loan deposit",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.assetAccount.AccountID, suite.liabilityAccount.AccountID}).
		Return(suite.accountsMap(suite.assetAccount, suite.liabilityAccount), nil).Once()

	var savedBalanceChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedBalanceChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.NotEmpty(journal.JournalID)
	suite.Equal(domain.Posted, journal.Status)
	suite.Equal(req.Memo, journal.Memo)
	suite.True(journal.Amount.Equal(decimal.NewFromInt(100)))
	suite.Len(journal.Transactions, 2)

	// Debits add, credits subtract.
	suite.True(savedBalanceChanges[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(100)))
	suite.True(savedBalanceChanges[suite.liabilityAccount.AccountID].Equal(decimal.NewFromInt(-100)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Memo: "Does not balance",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(50), TransactionType: domain.Credit},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.assetAccount, suite.revenueAccount), nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
	suite.Nil(journal)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleLine() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Memo: "Only one line",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.assetAccount), nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalMinEntries)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleAccount() {
	ctx := context.Background()
	// Balanced, but both lines hit the same account.
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Memo: "Self transfer",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.assetAccount), nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_MissingMemo() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Memo: "   ",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.assetAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMemoMissing)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.expenseAccount
	inactive.IsActive = false

	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Memo: "Posting to a closed account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: inactive.AccountID, Amount: decimal.NewFromInt(40), TransactionType: domain.Debit},
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(40), TransactionType: domain.Credit},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(inactive, suite.assetAccount), nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := domain.Journal{
		JournalID:   originalID,
		JournalDate: time.Now().AddDate(0, 0, -3),
		Memo:        "Cash sale",
		Status:      domain.Posted,
		Amount:      decimal.NewFromInt(250),
		Transactions: []domain.Transaction{
			{TransactionID: uuid.NewString(), JournalID: originalID, AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(250), TransactionType: domain.Debit},
			{TransactionID: uuid.NewString(), JournalID: originalID, AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(250), TransactionType: domain.Credit},
		},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(&original, nil).Once()
	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()

	var savedReversal domain.Journal
	var savedBalanceChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveJournalInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(2).(domain.Journal)
			savedBalanceChanges = args.Get(4).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatusAndLinksInTx", ctx, mock.Anything, originalID, domain.Reversed, mock.AnythingOfType("*string"), mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockTxManager.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, originalID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal("Reversal of: Cash sale", reversal.Memo)
	suite.Require().NotNil(reversal.OriginalJournalID)
	suite.Equal(originalID, *reversal.OriginalJournalID)

	// The reversal mirrors the original line for line with sides swapped.
	suite.Require().Len(savedReversal.Transactions, 2)
	suite.Equal(suite.assetAccount.AccountID, savedReversal.Transactions[0].AccountID)
	suite.Equal(domain.Credit, savedReversal.Transactions[0].TransactionType)
	suite.Equal(suite.revenueAccount.AccountID, savedReversal.Transactions[1].AccountID)
	suite.Equal(domain.Debit, savedReversal.Transactions[1].TransactionType)
	suite.True(savedBalanceChanges[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(-250)))
	suite.True(savedBalanceChanges[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(250)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	reversedID := uuid.NewString()
	reversingID := uuid.NewString()
	journal := domain.Journal{
		JournalID:          reversedID,
		Memo:               "Already undone",
		Status:             domain.Reversed,
		ReversingJournalID: &reversingID,
		Transactions: []domain.Transaction{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(10), TransactionType: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(10), TransactionType: domain.Credit},
		},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, reversedID).Return(&journal, nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, reversedID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.Nil(reversal)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_ReversalEntryRejected() {
	ctx := context.Background()
	originalID := uuid.NewString()
	reversalID := uuid.NewString()
	reversal := domain.Journal{
		JournalID:         reversalID,
		Memo:              "Reversal of: Cash sale",
		Status:            domain.Posted,
		OriginalJournalID: &originalID,
		Transactions: []domain.Transaction{
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(10), TransactionType: domain.Debit},
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(10), TransactionType: domain.Credit},
		},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, reversalID).Return(&reversal, nil).Once()

	result, err := suite.service.ReverseJournal(ctx, reversalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournals_DefaultLimit() {
	ctx := context.Background()
	journals := []domain.Journal{
		{JournalID: uuid.NewString(), Memo: "One", Status: domain.Posted, Amount: decimal.NewFromInt(5)},
	}

	suite.mockJournalRepo.On("ListJournals", ctx, 20, (*string)(nil), false).Return(journals, nil, nil).Once()

	resp, err := suite.service.ListJournals(ctx, dto.ListJournalsParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Journals, 1)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
