package models

import (
	"github.com/shopspring/decimal"
)

// Invoice statuses accepted by the store.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice is a row of the invoices table. Amount is kept in minor units (cents).
type Invoice struct {
	ID         string `json:"id" db:"id"`
	CustomerID string `json:"customer_id" db:"customer_id"`
	Amount     int64  `json:"amount" db:"amount"`
	Status     string `json:"status" db:"status"`
	Date       string `json:"date" db:"date"`
}

// InvoiceForm is the raw user input for the create and update forms.
// A nil field means the value was absent or submitted with the wrong type.
type InvoiceForm struct {
	CustomerID *string
	Amount     *string
	Status     *string
}

// InvoiceTableRow is an invoice joined with its customer for the list view.
type InvoiceTableRow struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// InvoiceEditView is what the edit form needs; Amount is in dollars.
type InvoiceEditView struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
}

// InvoicePage is one page of the filtered invoice list.
type InvoicePage struct {
	Invoices   []InvoiceTableRow `json:"invoices"`
	Query      string            `json:"query"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

// CardData summarises the dashboard overview.
type CardData struct {
	NumberOfInvoices  int64 `json:"number_of_invoices"`
	NumberOfCustomers int64 `json:"number_of_customers"`
	TotalPaid         int64 `json:"total_paid_invoices"`
	TotalPending      int64 `json:"total_pending_invoices"`
}
