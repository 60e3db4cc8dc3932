// Package validation checks raw invoice form input and coerces it into typed fields.
// It knows nothing about transports; handlers build the InvoiceForm.
package validation

import (
	"strings"

	"invoicedash/internal/models"

	"github.com/shopspring/decimal"
)

// Form field names as submitted by the browser.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
	MsgMissingFields  = "Missing Fields. Failed to Create Invoice."

	// MsgAmountTooLarge is reported when the amount does not fit in the amount column.
	MsgAmountTooLarge = "Please enter a smaller amount."
)

// Amount bounds checked on the parsed decimal before any arithmetic. 10^17 dollars
// already exceeds an int64 of cents.
const (
	maxAmountScale       = 20
	maxAmountWholeDigits = 17
)

// FieldErrors maps a field name to its messages, in the order they were found.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether field has at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// InvoiceFields is a validated invoice form. Amount is still in dollars.
type InvoiceFields struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     string
}

// Result is either a success carrying Data or a failure carrying FieldErrors and Message.
type Result struct {
	Success     bool
	Data        *InvoiceFields
	FieldErrors FieldErrors
	Message     string
}

var allowedStatuses = map[string]bool{
	models.InvoiceStatusPending: true,
	models.InvoiceStatusPaid:    true,
}

// ValidateInvoiceForm applies every field rule and collects all failures.
func ValidateInvoiceForm(form models.InvoiceForm) Result {
	errs := FieldErrors{}

	var customerID string
	if form.CustomerID == nil || *form.CustomerID == "" {
		errs.Add(FieldCustomerID, MsgSelectCustomer)
	} else {
		customerID = *form.CustomerID
	}

	amount, ok := coerceAmount(form.Amount)
	switch {
	case !ok || !amount.IsPositive():
		errs.Add(FieldAmount, MsgAmountPositive)
	case wholeDigits(amount) > maxAmountWholeDigits:
		errs.Add(FieldAmount, MsgAmountTooLarge)
	}

	var status string
	if form.Status == nil || !allowedStatuses[*form.Status] {
		errs.Add(FieldStatus, MsgSelectStatus)
	} else {
		status = *form.Status
	}

	if len(errs) > 0 {
		return Result{FieldErrors: errs, Message: MsgMissingFields}
	}

	return Result{
		Success: true,
		Data: &InvoiceFields{
			CustomerID: customerID,
			Amount:     amount,
			Status:     status,
		},
	}
}

// coerceAmount turns the submitted string into a number. Absent and blank input
// coerce to zero, so they always fail the positivity check. More than
// maxAmountScale fractional digits is not accepted as a number.
func coerceAmount(raw *string) (decimal.Decimal, bool) {
	if raw == nil {
		return decimal.Zero, true
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Exponent() < -maxAmountScale {
		return decimal.Zero, false
	}
	return d, true
}

// wholeDigits counts digits left of the decimal point without rescaling d.
func wholeDigits(d decimal.Decimal) int {
	return d.NumDigits() + int(d.Exponent())
}
