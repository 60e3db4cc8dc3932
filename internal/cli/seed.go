package cli

import (
	"errors"
	"fmt"
	"net/mail"

	"invoicedash/internal/models"
	"invoicedash/internal/repositories"
	"invoicedash/internal/services"
	"invoicedash/pkg/database"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minSeedPasswordLength = 6

func newSeedUserCmd(configPath *string) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "seed-user",
		Short: "Create or update a dashboard user",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := mail.ParseAddress(email); err != nil {
				return fmt.Errorf("invalid --email %q: %w", email, err)
			}
			if len(password) < minSeedPasswordLength {
				return fmt.Errorf("--password must be at least %d characters", minSeedPasswordLength)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			hash, err := services.NewBcryptHasher(bcrypt.DefaultCost).Hash(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			pool, err := database.NewPool(cmd.Context(), cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			user := &models.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: hash}
			if err := repositories.NewUserRepo(pool).Create(cmd.Context(), user); err != nil {
				return err
			}
			logger.Info("user seeded", zap.String("email", email))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "User", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	return cmd
}

func newSeedCustomerCmd(configPath *string) *cobra.Command {
	var id, name, email, imageURL string

	cmd := &cobra.Command{
		Use:   "seed-customer",
		Short: "Create a customer that invoices can reference",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			if _, err := mail.ParseAddress(email); err != nil {
				return fmt.Errorf("invalid --email %q: %w", email, err)
			}
			if id == "" {
				id = uuid.NewString()
			} else if _, err := uuid.Parse(id); err != nil {
				return fmt.Errorf("invalid --id %q: %w", id, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			pool, err := database.NewPool(cmd.Context(), cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			customer := &models.Customer{ID: id, Name: name, Email: email, ImageURL: imageURL}
			if err := repositories.NewCustomerRepo(pool).Create(cmd.Context(), customer); err != nil {
				return err
			}
			logger.Info("customer seeded", zap.String("id", id), zap.String("name", name))
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "customer id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&email, "email", "", "customer email")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "avatar path")
	return cmd
}
