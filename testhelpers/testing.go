package testhelpers

import (
	"context"
	"os"
	"testing"

	"invoicedash/internal/models"
	"invoicedash/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema and empties the
// tables. The test is skipped when the variable is not set.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE invoices, customers, users`); err != nil {
		pool.Close()
		t.Fatalf("Failed to truncate test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
	t.Cleanup(func() { _ = db.Cleanup() })
	return db
}

// SetupTestCustomer inserts a customer and returns it.
func SetupTestCustomer(t *testing.T, db *TestDB, name, email string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		ImageURL: "/customers/" + name + ".png",
	}
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO customers (id, name, email, image_url) VALUES ($1, $2, $3, $4)`,
		customer.ID, customer.Name, customer.Email, customer.ImageURL)
	if err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return customer
}
