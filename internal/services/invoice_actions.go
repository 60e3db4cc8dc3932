package services

import (
	"context"
	"math"

	"invoicedash/internal/models"
	"invoicedash/internal/validation"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoicesPath is the invoice list route. Mutations invalidate it and redirect to it.
const InvoicesPath = "/dashboard/invoices"

const (
	MsgCreateFailed = "Database Error: Failed to Create Invoice."
	MsgUpdateFailed = "Database Error: Failed to Update Invoice."
	MsgDeleteFailed = "Database Error: Failed to Delete Invoice."
	MsgDeleted      = "Deleted Invoice."
)

// CacheInvalidator drops cached views of a route.
type CacheInvalidator interface {
	InvalidatePath(ctx context.Context, path string) error
}

// Navigator sends the caller to another route. It is bound to one request.
type Navigator interface {
	Redirect(path string) error
}

// InvoiceWriter is the persistence gateway for invoice mutations.
type InvoiceWriter interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id string) error
}

// FormState is returned to the form when a create or update does not go through.
type FormState struct {
	Errors  validation.FieldErrors `json:"errors,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// DeleteOutcome is the in-place status of a delete.
type DeleteOutcome struct {
	Deleted bool   `json:"-"`
	Message string `json:"message"`
}

// InvoiceActions are the invoice mutations behind the dashboard forms.
//
// Create and Update return a nil FormState once the write succeeded, the list cache
// was invalidated and nav was told to redirect. A non-nil error is only returned for
// failures outside validation and persistence, such as a failing Navigator.
type InvoiceActions interface {
	CreateInvoice(ctx context.Context, nav Navigator, form models.InvoiceForm) (*FormState, error)
	UpdateInvoice(ctx context.Context, nav Navigator, id string, form models.InvoiceForm) (*FormState, error)
	DeleteInvoice(ctx context.Context, id string) DeleteOutcome
}

type invoiceActions struct {
	invoices InvoiceWriter
	cache    CacheInvalidator
	clock    clockwork.Clock
	logger   *zap.Logger
}

// NewInvoiceActions creates the invoice mutation service
func NewInvoiceActions(invoices InvoiceWriter, cache CacheInvalidator, clock clockwork.Clock, logger *zap.Logger) InvoiceActions {
	return &invoiceActions{
		invoices: invoices,
		cache:    cache,
		clock:    clock,
		logger:   logger,
	}
}

var (
	centsPerDollar = decimal.NewFromInt(100)
	maxMinorUnits  = decimal.NewFromInt(math.MaxInt64)
)

// CreateInvoice validates the form, inserts a new invoice dated today (UTC),
// then invalidates the list and redirects to it.
func (s *invoiceActions) CreateInvoice(ctx context.Context, nav Navigator, form models.InvoiceForm) (*FormState, error) {
	invoice, state := s.invoiceFromForm(form)
	if state != nil {
		return state, nil
	}

	invoice.ID = uuid.NewString()
	invoice.Date = s.clock.Now().UTC().Format("2006-01-02")

	if err := s.invoices.Create(ctx, invoice); err != nil {
		s.logger.Error("failed to create invoice", zap.String("customer_id", invoice.CustomerID), zap.Error(err))
		return &FormState{Message: MsgCreateFailed}, nil
	}

	return nil, s.revalidateAndRedirect(ctx, nav)
}

// UpdateInvoice validates the form and rewrites customer, amount and status of invoice id.
func (s *invoiceActions) UpdateInvoice(ctx context.Context, nav Navigator, id string, form models.InvoiceForm) (*FormState, error) {
	invoice, state := s.invoiceFromForm(form)
	if state != nil {
		return state, nil
	}
	invoice.ID = id

	if err := s.invoices.Update(ctx, invoice); err != nil {
		s.logger.Error("failed to update invoice", zap.String("invoice_id", id), zap.Error(err))
		return &FormState{Message: MsgUpdateFailed}, nil
	}

	return nil, s.revalidateAndRedirect(ctx, nav)
}

// DeleteInvoice removes invoice id. It never redirects; the caller stays on the list.
func (s *invoiceActions) DeleteInvoice(ctx context.Context, id string) DeleteOutcome {
	if err := s.invoices.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete invoice", zap.String("invoice_id", id), zap.Error(err))
		return DeleteOutcome{Message: MsgDeleteFailed}
	}

	s.invalidateList(ctx)
	return DeleteOutcome{Deleted: true, Message: MsgDeleted}
}

// invoiceFromForm runs the validator and converts the dollar amount to cents.
func (s *invoiceActions) invoiceFromForm(form models.InvoiceForm) (*models.Invoice, *FormState) {
	result := validation.ValidateInvoiceForm(form)
	if !result.Success {
		return nil, &FormState{Errors: result.FieldErrors, Message: result.Message}
	}

	cents := result.Data.Amount.Mul(centsPerDollar).Round(0)
	if !cents.IsPositive() {
		// Sub-cent amounts pass the dollar check but would be stored as zero.
		errs := validation.FieldErrors{}
		errs.Add(validation.FieldAmount, validation.MsgAmountPositive)
		return nil, &FormState{Errors: errs, Message: validation.MsgMissingFields}
	}
	if cents.GreaterThan(maxMinorUnits) {
		errs := validation.FieldErrors{}
		errs.Add(validation.FieldAmount, validation.MsgAmountTooLarge)
		return nil, &FormState{Errors: errs, Message: validation.MsgMissingFields}
	}

	return &models.Invoice{
		CustomerID: result.Data.CustomerID,
		Amount:     cents.IntPart(),
		Status:     result.Data.Status,
	}, nil
}

func (s *invoiceActions) revalidateAndRedirect(ctx context.Context, nav Navigator) error {
	s.invalidateList(ctx)
	return nav.Redirect(InvoicesPath)
}

// invalidateList does not fail the mutation; stale list reads are tolerated until the TTL.
func (s *invoiceActions) invalidateList(ctx context.Context) {
	if err := s.cache.InvalidatePath(ctx, InvoicesPath); err != nil {
		s.logger.Warn("failed to invalidate cached path", zap.String("path", InvoicesPath), zap.Error(err))
	}
}
