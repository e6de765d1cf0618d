package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/puzzlesmarathon/registration-backend/api"
	"github.com/puzzlesmarathon/registration-backend/checkout"
	"github.com/puzzlesmarathon/registration-backend/registration"
	"github.com/puzzlesmarathon/registration-backend/relay"
	"google.golang.org/api/option"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %s\n", err)
		os.Exit(1)
	}

	env, _ := cfg.environment()
	logger := newLogger(env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, env, logger); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(env api.Environment) *slog.Logger {
	if env == api.PROD {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(ctx context.Context, cfg Config, env api.Environment, logger *slog.Logger) error {
	shutdownTracing, err := setupTracing(ctx, cfg.OtelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	loadAWSConfig := sync.OnceValues(func() (aws.Config, error) {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to get aws config: %w", err)
		}
		return awsCfg, nil
	})

	db, closeDB, err := openStorage(ctx, cfg, logger, loadAWSConfig)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeDB()

	stripeSecretKey, err := getStripeSecretKey(ctx, cfg, loadAWSConfig)
	if err != nil {
		return err
	}
	processor := checkout.NewStripeProcessor(stripeSecretKey)

	httpRelay := relay.NewHTTPRelay(cfg.RelayTimeout)

	failureNotifier, err := createFailureNotifier(cfg, env, logger, httpRelay, loadAWSConfig)
	if err != nil {
		return err
	}

	paidLedger, err := createPaidLedger(ctx, cfg)
	if err != nil {
		return err
	}

	registrationAPI := api.NewAPI(db, logger, env, processor, cfg.checkoutSettings(), httpRelay, failureNotifier, paidLedger)

	h, err := registrationAPI.Handler()
	if err != nil {
		return err
	}

	s := &http.Server{
		Handler:           h,
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}

// createFailureNotifier returns nil when no alert channel is configured.
func createFailureNotifier(cfg Config, env api.Environment, logger *slog.Logger, httpRelay registration.Relay, loadAWSConfig func() (aws.Config, error)) (registration.FailureNotifier, error) {
	var notifiers registration.FailureNotifiers

	if cfg.AdminRelayURL != "" {
		notifiers = append(notifiers, relay.NewAdminNotifier(httpRelay, cfg.AdminRelayURL))
	}

	if cfg.AlertEmailFrom != "" {
		sender, err := createEmailSender(logger, env, loadAWSConfig)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, registration.NewEmailFailureNotifier(sender, cfg.AlertEmailFrom, cfg.AlertEmailTo))
	}

	if len(notifiers) == 0 {
		logger.Warn("no finalize failure alerts configured")
		return nil, nil
	}

	return notifiers, nil
}

// createPaidLedger returns nil when no spreadsheet is configured.
func createPaidLedger(ctx context.Context, cfg Config) (registration.PaidLedger, error) {
	if cfg.LedgerSpreadsheetID == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.GoogleServiceAccountFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GoogleServiceAccountFile))
	}

	ledger, err := relay.NewSheetsLedger(ctx, cfg.LedgerSpreadsheetID, opts...)
	if err != nil {
		return nil, err
	}

	return ledger, nil
}
