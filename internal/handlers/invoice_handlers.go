package handlers

import (
	"errors"
	"net/http"

	"invoicedash/internal/common"
	"invoicedash/internal/repositories"
	"invoicedash/internal/search"
	"invoicedash/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InvoiceHandlers handles HTTP requests for the dashboard invoice pages
type InvoiceHandlers struct {
	actions services.InvoiceActions
	queries services.InvoiceQueryService
	logger  *zap.Logger
}

// NewInvoiceHandlers creates a new invoice handlers instance
func NewInvoiceHandlers(actions services.InvoiceActions, queries services.InvoiceQueryService, logger *zap.Logger) *InvoiceHandlers {
	return &InvoiceHandlers{
		actions: actions,
		queries: queries,
		logger:  logger,
	}
}

// echoNavigator redirects the current request with 303 so a form POST lands on a GET.
type echoNavigator struct {
	c echo.Context
}

func (n echoNavigator) Redirect(path string) error {
	return n.c.Redirect(http.StatusSeeOther, path)
}

// Dashboard handles GET /dashboard
func (h *InvoiceHandlers) Dashboard(c echo.Context) error {
	cards, err := h.queries.CardData(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to fetch card data", zap.Error(err))
		return common.SendServerError(c, "Failed to fetch card data.")
	}
	return c.JSON(http.StatusOK, cards)
}

// ListCustomers handles GET /dashboard/customers
func (h *InvoiceHandlers) ListCustomers(c echo.Context) error {
	customers, err := h.queries.ListCustomers(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to fetch customers", zap.Error(err))
		return common.SendServerError(c, "Failed to fetch all customers.")
	}
	return c.JSON(http.StatusOK, customers)
}

// ListInvoices handles GET /dashboard/invoices?query=&page=
func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	params := search.ParseListParams(c.QueryParams())

	page, err := h.queries.ListInvoices(c.Request().Context(), params)
	if err != nil {
		h.logger.Error("failed to fetch invoices", zap.String("query", params.Query), zap.Int("page", params.Page), zap.Error(err))
		return common.SendServerError(c, "Failed to fetch invoices.")
	}
	return c.JSON(http.StatusOK, page)
}

// GetInvoice handles GET /dashboard/invoices/:id
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return common.SendNotFoundError(c, "invoice")
	}

	invoice, err := h.queries.GetInvoice(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return common.SendNotFoundError(c, "invoice")
		}
		h.logger.Error("failed to fetch invoice", zap.String("invoice_id", id), zap.Error(err))
		return common.SendServerError(c, "Failed to fetch invoice.")
	}
	return c.JSON(http.StatusOK, invoice)
}

// CreateInvoice handles POST /dashboard/invoices
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	form, err := bindInvoiceForm(c)
	if err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	state, err := h.actions.CreateInvoice(c.Request().Context(), echoNavigator{c: c}, form)
	if err != nil {
		return err
	}
	return respondFormState(c, state)
}

// UpdateInvoice handles PUT /dashboard/invoices/:id and POST /dashboard/invoices/:id/edit
func (h *InvoiceHandlers) UpdateInvoice(c echo.Context) error {
	form, err := bindInvoiceForm(c)
	if err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	state, err := h.actions.UpdateInvoice(c.Request().Context(), echoNavigator{c: c}, c.Param("id"), form)
	if err != nil {
		return err
	}
	return respondFormState(c, state)
}

// DeleteInvoice handles DELETE /dashboard/invoices/:id and POST /dashboard/invoices/:id/delete
func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	outcome := h.actions.DeleteInvoice(c.Request().Context(), c.Param("id"))
	if !outcome.Deleted {
		return c.JSON(http.StatusInternalServerError, outcome)
	}
	return c.JSON(http.StatusOK, outcome)
}

// respondFormState writes a failed form state. A nil state means the navigator
// already answered with a redirect.
func respondFormState(c echo.Context, state *services.FormState) error {
	if state == nil {
		return nil
	}
	if len(state.Errors) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, state)
	}
	return c.JSON(http.StatusInternalServerError, state)
}
