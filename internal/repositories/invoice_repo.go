package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invoicedash/internal/models"

	"github.com/jackc/pgx/v5"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	FilteredInvoices(ctx context.Context, query string, limit, offset int) ([]models.InvoiceTableRow, error)
	CountFiltered(ctx context.Context, query string) (int64, error)
	CardData(ctx context.Context) (*models.CardData, error)
}

type invoiceRepo struct {
	db Database
}

func NewInvoiceRepo(db Database) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, invoice.ID, invoice.CustomerID, invoice.Amount, invoice.Status, invoice.Date)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

// Update rewrites customer, amount and status only. id and date never change.
func (r *invoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, invoice.CustomerID, invoice.Amount, invoice.Status, invoice.ID)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `
		SELECT id, customer_id, amount, status, date::text
		FROM invoices
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount, &invoice.Status, &invoice.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	return invoice, nil
}

const filteredInvoicesWhere = `
		customers.name ILIKE $1 OR
		customers.email ILIKE $1 OR
		invoices.amount::text ILIKE $1 OR
		invoices.date::text ILIKE $1 OR
		invoices.status ILIKE $1
`

// FilteredInvoices searches customer name, email, amount, date and status.
func (r *invoiceRepo) FilteredInvoices(ctx context.Context, query string, limit, offset int) ([]models.InvoiceTableRow, error) {
	sql := `
		SELECT invoices.id, invoices.amount, invoices.date::text, invoices.status,
			customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE` + filteredInvoicesWhere + `
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, sql, likePattern(query), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	defer rows.Close()

	invoices := []models.InvoiceTableRow{}
	for rows.Next() {
		var row models.InvoiceTableRow
		if err := rows.Scan(&row.ID, &row.Amount, &row.Date, &row.Status, &row.Name, &row.Email, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) CountFiltered(ctx context.Context, query string) (int64, error) {
	sql := `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE` + filteredInvoicesWhere

	var count int64
	if err := r.db.QueryRow(ctx, sql, likePattern(query)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

func (r *invoiceRepo) CardData(ctx context.Context) (*models.CardData, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM customers),
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
		FROM invoices
	`
	data := &models.CardData{}
	err := r.db.QueryRow(ctx, query).Scan(&data.NumberOfInvoices, &data.NumberOfCustomers, &data.TotalPaid, &data.TotalPending)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card data: %w", err)
	}
	return data, nil
}

// likePattern wraps the term for ILIKE, escaping the LIKE wildcards it may contain.
func likePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}
