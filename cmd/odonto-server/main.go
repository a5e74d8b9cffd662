package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odontosys/odontosys/internal/config"
	"github.com/odontosys/odontosys/internal/domain/appointment"
	"github.com/odontosys/odontosys/internal/domain/dashboard"
	"github.com/odontosys/odontosys/internal/domain/dentist"
	"github.com/odontosys/odontosys/internal/domain/notification"
	"github.com/odontosys/odontosys/internal/domain/patient"
	"github.com/odontosys/odontosys/internal/domain/user"
	"github.com/odontosys/odontosys/internal/platform/apperr"
	"github.com/odontosys/odontosys/internal/platform/auth"
	"github.com/odontosys/odontosys/internal/platform/db"
	"github.com/odontosys/odontosys/internal/platform/middleware"
	"github.com/odontosys/odontosys/internal/platform/whatsapp"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odonto-server",
		Short: "Dental clinic scheduling API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Public auth endpoints
	public := e.Group("/api/v1", middleware.RateLimit(rateLimitCfg))

	// Everything else requires a bearer token
	api := e.Group("/api/v1", middleware.RateLimit(rateLimitCfg), auth.Middleware(tokens))

	// Repositories
	patientRepo := patient.NewRepoPG(pool)
	dentistRepo := dentist.NewRepoPG(pool)
	apptRepo := appointment.NewRepoPG(pool)
	dashRepo := dashboard.NewRepoPG(pool)
	userRepo := user.NewRepoPG(pool)

	// WhatsApp sender. In development a mock stands in when no token is
	// configured; elsewhere the sender stays nil and the notification
	// service reports every dispatch as an upstream failure.
	var sender whatsapp.Sender
	switch {
	case cfg.WhatsAppToken != "":
		sender = whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppToken, cfg.WhatsAppSenderID)
	case cfg.IsDev():
		logger.Warn().Msg("WHATSAPP_TOKEN not set; notification sends are mocked")
		sender = whatsapp.NewMockSender()
	default:
		logger.Warn().Msg("WHATSAPP_TOKEN not set; notification dispatch is disabled")
	}

	// Services and handlers
	patientSvc := patient.NewService(patientRepo)
	patient.NewHandler(patientSvc).RegisterRoutes(api)

	dentistSvc := dentist.NewService(dentistRepo)
	dentist.NewHandler(dentistSvc).RegisterRoutes(api)

	apptSvc := appointment.NewService(apptRepo, patientRepo, dentistRepo)
	appointment.NewHandler(apptSvc).RegisterRoutes(api)

	dashSvc := dashboard.NewService(dashRepo, patientRepo, dentistRepo)
	dashboard.NewHandler(dashSvc).RegisterRoutes(api)

	notifySvc := notification.NewService(sender, apptRepo, patientRepo, dentistRepo, cfg.DefaultCountryCode)
	notification.NewHandler(notifySvc).RegisterRoutes(api)

	userSvc := user.NewService(userRepo, tokens)
	user.NewHandler(userSvc).RegisterRoutes(public)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	return nil
}
