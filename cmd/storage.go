package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/puzzlesmarathon/registration-backend/api"
	"github.com/puzzlesmarathon/registration-backend/dynamo"
	"github.com/puzzlesmarathon/registration-backend/sqlite"
)

// openStorage opens the configured backend and makes sure its schema exists.
// The returned close func is always non-nil.
func openStorage(ctx context.Context, cfg Config, logger *slog.Logger, loadAWSConfig func() (aws.Config, error)) (api.DB, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case storageDynamo:
		awsCfg, err := loadAWSConfig()
		if err != nil {
			return nil, noop, err
		}

		client := dynamo.NewClient(awsCfg, cfg.DynamoEndpoint)
		if err := dynamo.EnsureTable(ctx, client, cfg.DynamoTableName); err != nil {
			return nil, noop, fmt.Errorf("failed to ensure dynamo table %q: %w", cfg.DynamoTableName, err)
		}

		logger.Info("using dynamo storage", slog.String("table", cfg.DynamoTableName))
		return dynamo.NewDB(client, cfg.DynamoTableName), noop, nil
	default:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}

		logger.Info("using sqlite storage", slog.String("path", cfg.SQLitePath))
		return store, store.Close, nil
	}
}
