// Command server runs the college events HTTP API.
//
// @title College Events API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collegeevents/config"
	_ "collegeevents/docs"
	"collegeevents/internal/adapters/auth"
	"collegeevents/internal/adapters/email"
	"collegeevents/internal/adapters/sheets"
	deliveryhttp "collegeevents/internal/delivery/http"
	"collegeevents/internal/delivery/http/controllers"
	"collegeevents/internal/delivery/http/middleware"
	"collegeevents/internal/repository/postgres"
	"collegeevents/internal/services"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)

	// Adapters
	opener := sheets.Unconfigured()
	if cfg.GoogleServiceAccountJSON != "" {
		if opener, err = sheets.NewServiceAccountOpener(ctx, cfg.GoogleServiceAccountJSON, cfg.SheetsEndpoint); err != nil {
			logger.Error("failed to create sheets client", "err", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("GOOGLE_SERVICE_ACCOUNT_JSON not set, sheet import and write-back are disabled")
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	userService := services.NewUserService(userRepo, hasher, auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry, cfg.RequestTimeout)
	venueService := services.NewVenueService(venueRepo, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, venueRepo, cfg.RequestTimeout)
	participantService := services.NewParticipantService(participantRepo, registrationRepo, eventRepo, opener, logger, cfg.RequestTimeout)
	registrationService := services.NewRegistrationService(eventRepo, participantRepo, registrationRepo, userRepo, emailService, logger, cfg.RequestTimeout)
	reconcileService := services.NewReconcileService(eventRepo, participantRepo, registrationRepo, opener, cfg.SheetDateOrder, logger)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:         controllers.NewAuthController(logger, userService),
		User:         controllers.NewUserController(logger, userService),
		Venue:        controllers.NewVenueController(logger, venueService),
		Event:        controllers.NewEventController(logger, eventService),
		Participant:  controllers.NewParticipantController(logger, participantService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
		Reconcile:    controllers.NewReconcileController(logger, reconcileService),
	}, verifier, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
