package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"invoicedash/internal/caching"
	"invoicedash/internal/handlers"
	"invoicedash/internal/middleware"
	"invoicedash/internal/repositories"
	"invoicedash/internal/services"
	"invoicedash/pkg/database"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if cfg.GeneratedSecret {
				logger.Warn("JWT_SECRET not set, using a generated secret; sessions will not survive a restart")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			cacheSvc, err := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
			if err != nil {
				return fmt.Errorf("failed to configure redis: %w", err)
			}

			clock := clockwork.NewRealClock()

			// Create repositories
			invoiceRepo := repositories.NewInvoiceRepo(pool)
			customerRepo := repositories.NewCustomerRepo(pool)
			userRepo := repositories.NewUserRepo(pool)

			// Create services
			tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL, clock)
			authSvc := services.NewAuthService(services.NewCredentialsProvider(userRepo, services.NewBcryptHasher(bcrypt.DefaultCost), tokens))
			actions := services.NewInvoiceActions(invoiceRepo, cacheSvc, clock, logger)
			queries := services.NewInvoiceQueryService(invoiceRepo, customerRepo, cacheSvc, cfg.ListCacheTTL, logger)

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true

			// Global middleware
			e.Use(echoMiddleware.RequestID())
			e.Use(middleware.RequestLogger(logger))
			e.Use(echoMiddleware.Recover())
			e.Use(echoMiddleware.RemoveTrailingSlash())

			handlers.RegisterRoutes(e,
				handlers.NewInvoiceHandlers(actions, queries, logger),
				handlers.NewAuthHandlers(authSvc, cfg.SecureCookies, logger),
				handlers.NewHealthHandlers(pool, cacheSvc, version),
				middleware.SessionAuth(tokens),
			)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", zap.String("version", version), zap.Int("port", cfg.Port))
				if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}
