package handlers

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the public auth and health routes and the session-protected
// dashboard routes on e.
func RegisterRoutes(e *echo.Echo, invoices *InvoiceHandlers, auth *AuthHandlers, health *HealthHandlers, session echo.MiddlewareFunc) {
	e.GET("/health", health.HealthCheck)
	e.GET("/health/ready", health.ReadinessCheck)

	e.POST("/login", auth.Login)
	e.POST("/logout", auth.Logout)

	dashboard := e.Group("/dashboard", session)
	dashboard.GET("", invoices.Dashboard)
	dashboard.GET("/customers", invoices.ListCustomers)

	dashboard.GET("/invoices", invoices.ListInvoices)
	dashboard.POST("/invoices", invoices.CreateInvoice)
	dashboard.GET("/invoices/:id", invoices.GetInvoice)
	dashboard.PUT("/invoices/:id", invoices.UpdateInvoice)
	dashboard.POST("/invoices/:id/edit", invoices.UpdateInvoice)
	dashboard.DELETE("/invoices/:id", invoices.DeleteInvoice)
	dashboard.POST("/invoices/:id/delete", invoices.DeleteInvoice)
}
