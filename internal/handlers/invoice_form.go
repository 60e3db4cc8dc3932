package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"invoicedash/internal/models"
	"invoicedash/internal/validation"

	"github.com/labstack/echo/v4"
)

// bindInvoiceForm reads the raw invoice form fields. A field is nil when it was not
// submitted, or when a JSON body carries it with a non-string value. A JSON number is
// accepted for amount.
func bindInvoiceForm(c echo.Context) (models.InvoiceForm, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return bindInvoiceJSON(c.Request())
	}

	values, err := c.FormParams()
	if err != nil {
		return models.InvoiceForm{}, fmt.Errorf("failed to read form: %w", err)
	}
	field := func(name string) *string {
		v, ok := values[name]
		if !ok || len(v) == 0 {
			return nil
		}
		return &v[0]
	}
	return models.InvoiceForm{
		CustomerID: field(validation.FieldCustomerID),
		Amount:     field(validation.FieldAmount),
		Status:     field(validation.FieldStatus),
	}, nil
}

func bindInvoiceJSON(r *http.Request) (models.InvoiceForm, error) {
	raw := map[string]any{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return models.InvoiceForm{}, fmt.Errorf("failed to decode invoice json: %w", err)
	}

	str := func(name string) *string {
		if s, ok := raw[name].(string); ok {
			return &s
		}
		return nil
	}

	form := models.InvoiceForm{
		CustomerID: str(validation.FieldCustomerID),
		Amount:     str(validation.FieldAmount),
		Status:     str(validation.FieldStatus),
	}
	if n, ok := raw[validation.FieldAmount].(json.Number); ok {
		amount := n.String()
		form.Amount = &amount
	}
	return form, nil
}
