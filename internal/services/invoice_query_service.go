package services

import (
	"context"
	"time"

	"invoicedash/internal/caching"
	"invoicedash/internal/models"
	"invoicedash/internal/repositories"
	"invoicedash/internal/search"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemsPerPage is the size of one page of the invoice list.
const ItemsPerPage = 6

// InvoiceQueryService serves the read side of the dashboard.
type InvoiceQueryService interface {
	ListInvoices(ctx context.Context, params search.ListParams) (*models.InvoicePage, error)
	GetInvoice(ctx context.Context, id string) (*models.InvoiceEditView, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CardData(ctx context.Context) (*models.CardData, error)
}

type invoiceQueryService struct {
	invoices  repositories.InvoiceRepository
	customers repositories.CustomerRepository
	cache     caching.CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewInvoiceQueryService creates the read service. List pages are cached under InvoicesPath.
func NewInvoiceQueryService(invoices repositories.InvoiceRepository, customers repositories.CustomerRepository, cache caching.CacheService, cacheTTL time.Duration, logger *zap.Logger) InvoiceQueryService {
	return &invoiceQueryService{
		invoices:  invoices,
		customers: customers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ListInvoices returns one filtered page and the total page count.
func (s *invoiceQueryService) ListInvoices(ctx context.Context, params search.ListParams) (*models.InvoicePage, error) {
	params.Page = max(1, min(params.Page, search.MaxPage))
	variant := params.Encode()

	cached := &models.InvoicePage{}
	found, err := s.cache.GetPage(ctx, InvoicesPath, variant, cached)
	if err != nil {
		s.logger.Warn("failed to read cached invoice page", zap.String("variant", variant), zap.Error(err))
	} else if found {
		return cached, nil
	}

	offset := (params.Page - 1) * ItemsPerPage
	rows, err := s.invoices.FilteredInvoices(ctx, params.Query, ItemsPerPage, offset)
	if err != nil {
		return nil, err
	}
	count, err := s.invoices.CountFiltered(ctx, params.Query)
	if err != nil {
		return nil, err
	}

	page := &models.InvoicePage{
		Invoices:   rows,
		Query:      params.Query,
		Page:       params.Page,
		TotalPages: totalPages(count),
	}

	if err := s.cache.SetPage(ctx, InvoicesPath, variant, page, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache invoice page", zap.String("variant", variant), zap.Error(err))
	}
	return page, nil
}

// GetInvoice loads the edit form values. The amount is converted back to dollars.
func (s *invoiceQueryService) GetInvoice(ctx context.Context, id string) (*models.InvoiceEditView, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.InvoiceEditView{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     decimal.New(invoice.Amount, -2),
		Status:     invoice.Status,
	}, nil
}

func (s *invoiceQueryService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

func (s *invoiceQueryService) CardData(ctx context.Context) (*models.CardData, error) {
	return s.invoices.CardData(ctx)
}

func totalPages(count int64) int {
	return int((count + ItemsPerPage - 1) / ItemsPerPage)
}
