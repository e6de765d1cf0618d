package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/caarlos0/env/v11"
	"github.com/puzzlesmarathon/registration-backend/api"
	"github.com/puzzlesmarathon/registration-backend/registration"
)

const (
	storageSQLite = "sqlite"
	storageDynamo = "dynamo"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"LOCAL"`
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`

	StorageBackend  string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"registrations.db"`
	DynamoTableName string `env:"DYNAMO_TABLE_NAME" envDefault:"registrations"`
	DynamoEndpoint  string `env:"DYNAMO_ENDPOINT"`

	StripeSecretKey         string `env:"STRIPE_SECRET_KEY"`
	StripeSecretKeySSMParam string `env:"STRIPE_SECRET_KEY_SSM_PARAM"`

	SiteURL   string `env:"SITE_URL" envDefault:"https://puzzlesmarathon.com"`
	EventName string `env:"EVENT_NAME" envDefault:"Puzzles Marathon"`
	Currency  string `env:"CURRENCY" envDefault:"USD"`

	AmountParticipant   *int64 `env:"AMOUNT_PARTICIPANT"`
	AmountVendor        *int64 `env:"AMOUNT_VENDOR"`
	AmountSponsorSilver *int64 `env:"AMOUNT_SPONSOR_SILVER"`
	AmountSponsorGold   *int64 `env:"AMOUNT_SPONSOR_GOLD"`
	PriceParticipant    string `env:"PRICE_PARTICIPANT"`
	PriceVendor         string `env:"PRICE_VENDOR"`
	PriceSponsorSilver  string `env:"PRICE_SPONSOR_SILVER"`
	PriceSponsorGold    string `env:"PRICE_SPONSOR_GOLD"`

	RelayTimeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`
	AdminRelayURL string        `env:"ADMIN_RELAY_URL"`

	AlertEmailFrom string   `env:"ALERT_EMAIL_FROM"`
	AlertEmailTo   []string `env:"ALERT_EMAIL_TO" envSeparator:","`

	LedgerSpreadsheetID      string `env:"LEDGER_SPREADSHEET_ID"`
	GoogleServiceAccountFile string `env:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	OtelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.environment(); err != nil {
		return err
	}

	switch c.StorageBackend {
	case storageSQLite, storageDynamo:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q, expected %q or %q", c.StorageBackend, storageSQLite, storageDynamo)
	}

	if c.StripeSecretKey == "" && c.StripeSecretKeySSMParam == "" {
		return fmt.Errorf("one of STRIPE_SECRET_KEY or STRIPE_SECRET_KEY_SSM_PARAM must be set")
	}

	if c.AlertEmailFrom != "" && len(c.AlertEmailTo) == 0 {
		return fmt.Errorf("ALERT_EMAIL_TO must be set when ALERT_EMAIL_FROM is")
	}

	return nil
}

func (c Config) environment() (api.Environment, error) {
	switch strings.ToUpper(c.Env) {
	case "LOCAL":
		return api.LOCAL, nil
	case "PROD":
		return api.PROD, nil
	default:
		return api.LOCAL, fmt.Errorf("unknown ENV %q, expected LOCAL or PROD", c.Env)
	}
}

// tierTable starts from the default prices and applies any per-tier overrides.
func (c Config) tierTable() registration.TierTable {
	tiers := registration.DefaultTierTable(c.Currency)

	overrides := []struct {
		tier     registration.Tier
		amount   *int64
		priceRef string
	}{
		{registration.PARTICIPANT, c.AmountParticipant, c.PriceParticipant},
		{registration.VENDOR, c.AmountVendor, c.PriceVendor},
		{registration.SPONSOR_SILVER, c.AmountSponsorSilver, c.PriceSponsorSilver},
		{registration.SPONSOR_GOLD, c.AmountSponsorGold, c.PriceSponsorGold},
	}

	for _, o := range overrides {
		price := tiers[o.tier]
		if o.amount != nil {
			price.Amount = money.New(*o.amount, c.Currency)
		}
		if o.priceRef != "" {
			price.PriceRef = o.priceRef
		}
		tiers[o.tier] = price
	}

	return tiers
}

func (c Config) checkoutSettings() registration.CheckoutSettings {
	return registration.CheckoutSettings{
		SiteURL:   c.SiteURL,
		EventName: c.EventName,
		Currency:  c.Currency,
		Tiers:     c.tierTable(),
	}
}
