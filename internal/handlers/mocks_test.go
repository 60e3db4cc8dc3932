package handlers

import (
	"context"

	"invoicedash/internal/models"
	"invoicedash/internal/search"
	"invoicedash/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockInvoiceActions struct {
	mock.Mock
}

func (m *MockInvoiceActions) CreateInvoice(ctx context.Context, nav services.Navigator, form models.InvoiceForm) (*services.FormState, error) {
	args := m.Called(ctx, nav, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FormState), args.Error(1)
}

func (m *MockInvoiceActions) UpdateInvoice(ctx context.Context, nav services.Navigator, id string, form models.InvoiceForm) (*services.FormState, error) {
	args := m.Called(ctx, nav, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FormState), args.Error(1)
}

func (m *MockInvoiceActions) DeleteInvoice(ctx context.Context, id string) services.DeleteOutcome {
	args := m.Called(ctx, id)
	return args.Get(0).(services.DeleteOutcome)
}

type MockInvoiceQueryService struct {
	mock.Mock
}

func (m *MockInvoiceQueryService) ListInvoices(ctx context.Context, params search.ListParams) (*models.InvoicePage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvoicePage), args.Error(1)
}

func (m *MockInvoiceQueryService) GetInvoice(ctx context.Context, id string) (*models.InvoiceEditView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvoiceEditView), args.Error(1)
}

func (m *MockInvoiceQueryService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockInvoiceQueryService) CardData(ctx context.Context) (*models.CardData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardData), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, creds models.Credentials) (*models.Session, string, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.Session), args.String(1), args.Error(2)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}
