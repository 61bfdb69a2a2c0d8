package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// Config holds all application configuration, including secrets.
type Config struct {
	AppName string
	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppUrl  string `env:"APP_URL" envDefault:"http://localhost:8080"`
	DBUrl   string `env:"DB_URL,required"`

	// AdminPassword gates the /api/admin endpoints. Deliberately not
	// required: an unset password fails every admin check (fail
	// closed) instead of refusing to boot.
	AdminPassword string `env:"ADMIN_PASSWORD"`

	SendGridAPIKey      string `env:"SENDGRID_API_KEY,required"`
	InvoiceFromEmail    string `env:"INVOICE_FROM_EMAIL,required"`
	InvoiceRecipient    string `env:"INVOICE_RECIPIENT,required"`
	SendGridSandboxMode bool   `env:"SENDGRID_SANDBOX_MODE" envDefault:"false"`

	DeviceTokenTTL  time.Duration
	ChallengeTTL    time.Duration
	RateLimitWindow time.Duration
}

// Defaults for the pieces of mutable state the admin can change, and
// fixed expiries for the pieces they cannot.
const (
	AppName = "invoice-scanner"

	DefaultPIN              = "1234"
	DefaultRateLimitPerHour = 20
	MinRateLimitPerHour     = 1
	MaxRateLimitPerHour     = 1000

	DeviceTokenTTL  = 30 * 24 * time.Hour
	ChallengeTTL    = 5 * time.Minute
	RateLimitWindow = 1 * time.Hour
)

// LoadConfig parses the environment into a Config. Missing required
// variables are fatal.
func LoadConfig() *Config {
	cfg := &Config{
		AppName:         AppName,
		DeviceTokenTTL:  DeviceTokenTTL,
		ChallengeTTL:    ChallengeTTL,
		RateLimitWindow: RateLimitWindow,
	}
	if err := env.Parse(cfg); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse environment configuration")
	}

	if cfg.AdminPassword == "" {
		utils.Logger.Warn("ADMIN_PASSWORD is not set; all admin endpoints will reject")
	}

	utils.Logger.Info("Loaded config for app: ", cfg.AppName)
	return cfg
}
