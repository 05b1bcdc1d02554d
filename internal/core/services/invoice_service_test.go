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
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockTxManager   *MockTxManager
	mockInvoiceRepo *MockInvoiceRepository
	mockChallanRepo *MockChallanRepository
	service         portssvc.InvoiceSvcFacade
	customerID      string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockTxManager = new(MockTxManager)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockChallanRepo = new(MockChallanRepository)
	suite.service = services.NewInvoiceService(suite.mockTxManager, suite.mockInvoiceRepo, suite.mockChallanRepo)
	suite.customerID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) newInvoice(number string) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: number,
		CustomerID:    suite.customerID,
		IssueDate:     time.Now().AddDate(0, 0, -14),
		DueDate:       time.Now().AddDate(0, 0, 16),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), Description: "Cabinet", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(150)},
		},
		Status:   domain.StatusSent,
		Payments: []domain.Payment{},
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-100",
		CustomerID:    suite.customerID,
		IssueDate:     time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0),
		Items: []dto.LineItemRequest{
			{Description: "Table", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(300)},
		},
		TaxAmount: decimal.NewFromInt(30),
	}

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.StatusDraft, invoice.Status)
	suite.True(invoice.GrandTotal().Equal(decimal.NewFromInt(330)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveQuantityRejected() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-101",
		CustomerID:    suite.customerID,
		IssueDate:     time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0),
		Items: []dto.LineItemRequest{
			{Description: "Nothing", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_DerivedStatusRejected() {
	ctx := context.Background()
	invoice := suite.newInvoice("INV-110")
	paid := domain.StatusPaid
	req := dto.UpdateInvoiceRequest{Status: &paid}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, invoice.InvoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatusProtected)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_StatusChangeWithPaymentsRejected() {
	ctx := context.Background()
	invoice := suite.newInvoice("INV-111")
	invoice.Payments = []domain.Payment{{PaymentID: uuid.NewString(), Amount: decimal.NewFromInt(50)}}
	draft := domain.StatusDraft
	req := dto.UpdateInvoiceRequest{Status: &draft}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, invoice.InvoiceID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatusProtected)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_HeaderChangeSuccess() {
	ctx := context.Background()
	invoice := suite.newInvoice("INV-112")
	newNumber := "INV-112-R1"
	req := dto.UpdateInvoiceRequest{InvoiceNumber: &newNumber}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, invoice.InvoiceID, req)

	suite.Require().NoError(err)
	suite.Equal("INV-112-R1", updated.InvoiceNumber)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_WithPaymentsRejected() {
	ctx := context.Background()
	invoice := suite.newInvoice("INV-120")
	invoice.Payments = []domain.Payment{{PaymentID: uuid.NewString(), Amount: decimal.NewFromInt(10)}}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoice.InvoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentsExist)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestConvertToChallan_Success() {
	ctx := context.Background()
	invoice := suite.newInvoice("INV-130")
	req := dto.ConvertInvoiceToChallanRequest{
		ChallanNumber: "DC-001",
		DeliveryDate:  time.Now(),
		VehicleNumber: "KA-01-1234",
	}

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(&invoice, nil).Once()

	var savedChallan domain.DeliveryChallan
	suite.mockChallanRepo.On("SaveChallanInTx", ctx, mock.Anything, mock.AnythingOfType("domain.DeliveryChallan")).
		Run(func(args mock.Arguments) {
			savedChallan = args.Get(2).(domain.DeliveryChallan)
		}).
		Return(nil).Once()
	suite.mockInvoiceRepo.On("SetChallanLinkInTx", ctx, mock.Anything, invoice.InvoiceID, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockTxManager.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	challan, err := suite.service.ConvertToChallan(ctx, invoice.InvoiceID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(challan)
	suite.Equal(invoice.InvoiceID, challan.InvoiceID)
	suite.Equal(invoice.CustomerID, challan.CustomerID)
	suite.Equal("DC-001", challan.ChallanNumber)
	suite.Len(savedChallan.Items, len(invoice.Items))
	suite.Equal(invoice.Items[0].Description, savedChallan.Items[0].Description)

	suite.mockChallanRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestConvertToChallan_AlreadyConverted() {
	ctx := context.Background()
	invoice := suite.newInvoice("INV-131")
	existingChallanID := uuid.NewString()
	invoice.ChallanID = &existingChallanID

	suite.mockTxManager.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockTxManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	challan, err := suite.service.ConvertToChallan(ctx, invoice.InvoiceID, dto.ConvertInvoiceToChallanRequest{ChallanNumber: "DC-002", DeliveryDate: time.Now()})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyConverted)
	suite.Nil(challan)
	suite.mockChallanRepo.AssertNotCalled(suite.T(), "SaveChallanInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
