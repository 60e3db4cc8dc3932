package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"invoicedash/internal/models"
	"invoicedash/internal/repositories"
	"invoicedash/internal/validation"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type InvoiceActionsTestSuite struct {
	suite.Suite
	mockRepo  *MockInvoiceRepository
	mockCache *MockCacheService
	events    []string
	nav       *recordingNavigator
	service   InvoiceActions
	ctx       context.Context
}

func (suite *InvoiceActionsTestSuite) SetupTest() {
	suite.mockRepo = &MockInvoiceRepository{}
	suite.mockCache = &MockCacheService{}
	suite.mockRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())

	suite.events = nil
	suite.nav = &recordingNavigator{events: &suite.events}
	suite.ctx = context.Background()

	// 22:30 in UTC-5 is already the next day in UTC.
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 17, 22, 30, 0, 0, time.FixedZone("UTC-5", -5*60*60)))
	suite.service = NewInvoiceActions(suite.mockRepo, suite.mockCache, clock, zap.NewNop())
}

func (suite *InvoiceActionsTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestInvoiceActionsTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceActionsTestSuite))
}

func strPtr(s string) *string {
	return &s
}

func form(customerID, amount, status string) models.InvoiceForm {
	return models.InvoiceForm{
		CustomerID: strPtr(customerID),
		Amount:     strPtr(amount),
		Status:     strPtr(status),
	}
}

func (suite *InvoiceActionsTestSuite) expectWrite(method string, err error) *mock.Call {
	return suite.mockRepo.On(method, mock.Anything, mock.AnythingOfType("*models.Invoice")).
		Return(err).
		Run(func(mock.Arguments) { suite.events = append(suite.events, "write") })
}

func (suite *InvoiceActionsTestSuite) expectInvalidate(err error) {
	suite.mockCache.On("InvalidatePath", mock.Anything, InvoicesPath).
		Return(err).
		Run(func(mock.Arguments) { suite.events = append(suite.events, "invalidate:"+InvoicesPath) })
}

func (suite *InvoiceActionsTestSuite) TestCreate_Success() {
	var stored *models.Invoice
	suite.expectWrite("Create", nil).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*models.Invoice)
		suite.events = append(suite.events, "write")
	})
	suite.expectInvalidate(nil)

	state, err := suite.service.CreateInvoice(suite.ctx, suite.nav, form("cust-1", "10.50", "pending"))

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), state)
	require.NotNil(suite.T(), stored)
	assert.Equal(suite.T(), int64(1050), stored.Amount)
	assert.Equal(suite.T(), "cust-1", stored.CustomerID)
	assert.Equal(suite.T(), "pending", stored.Status)
	assert.Equal(suite.T(), "2026-10-18", stored.Date)
	_, parseErr := uuid.Parse(stored.ID)
	assert.NoError(suite.T(), parseErr)
	assert.Equal(suite.T(), []string{"write", "invalidate:" + InvoicesPath, "redirect:" + InvoicesPath}, suite.events)
}

func (suite *InvoiceActionsTestSuite) TestCreate_ValidationFailureSkipsEverything() {
	state, err := suite.service.CreateInvoice(suite.ctx, suite.nav, form("", "", "paid"))

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), state)
	assert.Equal(suite.T(), validation.MsgMissingFields, state.Message)
	assert.Equal(suite.T(), []string{validation.MsgSelectCustomer}, state.Errors[validation.FieldCustomerID])
	assert.Equal(suite.T(), []string{validation.MsgAmountPositive}, state.Errors[validation.FieldAmount])
	assert.NotContains(suite.T(), state.Errors, validation.FieldStatus)
	assert.Empty(suite.T(), suite.events)
	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *InvoiceActionsTestSuite) TestCreate_PersistenceFailureSkipsInvalidationAndRedirect() {
	suite.expectWrite("Create", errors.New("insert or update on table \"invoices\" violates foreign key constraint"))

	state, err := suite.service.CreateInvoice(suite.ctx, suite.nav, form("no-such-customer", "10", "paid"))

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), state)
	assert.Equal(suite.T(), MsgCreateFailed, state.Message)
	assert.Empty(suite.T(), state.Errors)
	assert.Equal(suite.T(), []string{"write"}, suite.events)
	suite.mockCache.AssertNotCalled(suite.T(), "InvalidatePath", mock.Anything, mock.Anything)
}

func (suite *InvoiceActionsTestSuite) TestCreate_InvalidationFailureStillRedirects() {
	suite.expectWrite("Create", nil)
	suite.expectInvalidate(errors.New("redis down"))

	state, err := suite.service.CreateInvoice(suite.ctx, suite.nav, form("cust-1", "1", "paid"))

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), state)
	assert.Equal(suite.T(), []string{"write", "invalidate:" + InvoicesPath, "redirect:" + InvoicesPath}, suite.events)
}

func (suite *InvoiceActionsTestSuite) TestCreate_NavigatorErrorPropagates() {
	suite.nav.err = errors.New("response already committed")
	suite.expectWrite("Create", nil)
	suite.expectInvalidate(nil)

	state, err := suite.service.CreateInvoice(suite.ctx, suite.nav, form("cust-1", "5", "pending"))

	assert.Nil(suite.T(), state)
	assert.EqualError(suite.T(), err, "response already committed")
}

func (suite *InvoiceActionsTestSuite) TestCreate_AmountConversion() {
	tests := []struct {
		amount   string
		expected int64
	}{
		{amount: "10.50", expected: 1050},
		{amount: "0.01", expected: 1},
		{amount: "199", expected: 19900},
		{amount: "10.505", expected: 1051},
		{amount: "0.004", expected: -1},
		{amount: "1e30", expected: -2},
		{amount: "92233720368547758.07", expected: math.MaxInt64},
		{amount: "92233720368547758.08", expected: -2},
		{amount: "100000000000000000", expected: -2},
		{amount: "1e50000000", expected: -2},
		{amount: "1e-50000000", expected: -1},
	}

	for _, tt := range tests {
		suite.Run(tt.amount, func() {
			suite.SetupTest()
			var stored *models.Invoice
			if tt.expected > 0 {
				suite.expectWrite("Create", nil).Run(func(args mock.Arguments) {
					stored = args.Get(1).(*models.Invoice)
				})
				suite.expectInvalidate(nil)
			}

			state, err := suite.service.CreateInvoice(suite.ctx, suite.nav, form("cust-1", tt.amount, "paid"))
			require.NoError(suite.T(), err)

			switch tt.expected {
			case -1:
				require.NotNil(suite.T(), state)
				assert.Equal(suite.T(), []string{validation.MsgAmountPositive}, state.Errors[validation.FieldAmount])
			case -2:
				require.NotNil(suite.T(), state)
				assert.Equal(suite.T(), []string{validation.MsgAmountTooLarge}, state.Errors[validation.FieldAmount])
			default:
				assert.Nil(suite.T(), state)
				require.NotNil(suite.T(), stored)
				assert.Equal(suite.T(), tt.expected, stored.Amount)
			}
			suite.mockRepo.AssertExpectations(suite.T())
		})
	}
}

func (suite *InvoiceActionsTestSuite) TestUpdate_Success() {
	id := uuid.NewString()
	var stored *models.Invoice
	suite.expectWrite("Update", nil).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*models.Invoice)
		suite.events = append(suite.events, "write")
	})
	suite.expectInvalidate(nil)

	state, err := suite.service.UpdateInvoice(suite.ctx, suite.nav, id, form("cust-2", "20", "paid"))

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), state)
	require.NotNil(suite.T(), stored)
	assert.Equal(suite.T(), &models.Invoice{ID: id, CustomerID: "cust-2", Amount: 2000, Status: "paid"}, stored)
	assert.Equal(suite.T(), []string{"write", "invalidate:" + InvoicesPath, "redirect:" + InvoicesPath}, suite.events)
}

func (suite *InvoiceActionsTestSuite) TestUpdate_ValidationFailureReusesCreateMessage() {
	state, err := suite.service.UpdateInvoice(suite.ctx, suite.nav, "id-1", form("cust-2", "20", "overdue"))

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), state)
	assert.Equal(suite.T(), "Missing Fields. Failed to Create Invoice.", state.Message)
	assert.Equal(suite.T(), []string{validation.MsgSelectStatus}, state.Errors[validation.FieldStatus])
	assert.Empty(suite.T(), suite.events)
}

func (suite *InvoiceActionsTestSuite) TestUpdate_PersistenceFailure() {
	suite.expectWrite("Update", repositories.ErrInvoiceNotFound)

	state, err := suite.service.UpdateInvoice(suite.ctx, suite.nav, "gone", form("cust-2", "20", "paid"))

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), state)
	assert.Equal(suite.T(), &FormState{Message: MsgUpdateFailed}, state)
	assert.Equal(suite.T(), []string{"write"}, suite.events)
}

func (suite *InvoiceActionsTestSuite) TestDelete_Success() {
	suite.mockRepo.On("Delete", mock.Anything, "id-1").Return(nil).
		Run(func(mock.Arguments) { suite.events = append(suite.events, "write") })
	suite.expectInvalidate(nil)

	outcome := suite.service.DeleteInvoice(suite.ctx, "id-1")

	assert.Equal(suite.T(), DeleteOutcome{Deleted: true, Message: "Deleted Invoice."}, outcome)
	assert.Equal(suite.T(), []string{"write", "invalidate:" + InvoicesPath}, suite.events, "delete never redirects")
}

func (suite *InvoiceActionsTestSuite) TestDelete_TwiceReturnsSameFailure() {
	suite.mockRepo.On("Delete", mock.Anything, "id-1").Return(nil).Once()
	suite.mockRepo.On("Delete", mock.Anything, "id-1").Return(repositories.ErrInvoiceNotFound).Twice()
	suite.expectInvalidate(nil)

	first := suite.service.DeleteInvoice(suite.ctx, "id-1")
	second := suite.service.DeleteInvoice(suite.ctx, "id-1")
	third := suite.service.DeleteInvoice(suite.ctx, "id-1")

	assert.True(suite.T(), first.Deleted)
	assert.Equal(suite.T(), DeleteOutcome{Message: "Database Error: Failed to Delete Invoice."}, second)
	assert.Equal(suite.T(), second, third)
	suite.mockCache.AssertNumberOfCalls(suite.T(), "InvalidatePath", 1)
}

func (suite *InvoiceActionsTestSuite) TestDelete_StoreError() {
	suite.mockRepo.On("Delete", mock.Anything, "not-a-uuid").Return(errors.New("invalid input syntax for type uuid"))

	outcome := suite.service.DeleteInvoice(suite.ctx, "not-a-uuid")

	assert.False(suite.T(), outcome.Deleted)
	assert.Equal(suite.T(), MsgDeleteFailed, outcome.Message)
}
