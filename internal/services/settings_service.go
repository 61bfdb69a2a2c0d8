package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/models"
	"github.com/shafferjason/invoice-scanner/internal/repositories"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// Keys within the settings namespace.
const (
	settingsKeyPIN       = "userPin"
	settingsKeyRateLimit = "rateLimit"
)

var pinPattern = regexp.MustCompile(`^\d{4,6}$`)

// SettingsService is the registry for the two pieces of admin-mutable
// state (PIN, rate limit) plus the secret checks gating everything
// else. Writes are last-write-wins; there is no optimistic locking.
type SettingsService interface {
	// Get returns current settings, falling back to defaults for any
	// value never written.
	Get(ctx context.Context) (models.Settings, error)
	// SetPIN stores a new PIN. Returns utils.ErrValidation unless the
	// PIN is 4-6 digits.
	SetPIN(ctx context.Context, pin string) error
	// SetRateLimit stores a new hourly quota. Returns
	// utils.ErrValidation unless 1 <= limit <= 1000.
	SetRateLimit(ctx context.Context, limit int) error
	// VerifyAdmin checks the supplied password against the process
	// secret. An unset secret fails every check.
	VerifyAdmin(password string) bool
	// VerifyPIN checks the supplied PIN against the stored one
	// (default when unset). Storage errors are returned to the caller.
	VerifyPIN(ctx context.Context, pin string) (bool, error)
}

type settingsService struct {
	store repositories.Store
	cfg   *config.Config
}

func NewSettingsService(store repositories.Store, cfg *config.Config) SettingsService {
	return &settingsService{store: store, cfg: cfg}
}

func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	settings := models.Settings{
		PIN:              config.DefaultPIN,
		RateLimitPerHour: config.DefaultRateLimitPerHour,
	}

	pin, found, err := s.store.Get(ctx, repositories.NamespaceSettings, settingsKeyPIN)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read pin: %w", err)
	}
	if found {
		settings.PIN = pin
	}

	rawLimit, found, err := s.store.Get(ctx, repositories.NamespaceSettings, settingsKeyRateLimit)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read rate limit: %w", err)
	}
	if found {
		if limit, convErr := strconv.Atoi(rawLimit); convErr == nil {
			settings.RateLimitPerHour = limit
		} else {
			utils.Logger.Warnf("Stored rate limit %q is not a number, using default", rawLimit)
		}
	}

	return settings, nil
}

func (s *settingsService) SetPIN(ctx context.Context, pin string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("%w: PIN must be 4-6 digits", utils.ErrValidation)
	}
	return s.store.Set(ctx, repositories.NamespaceSettings, settingsKeyPIN, pin)
}

func (s *settingsService) SetRateLimit(ctx context.Context, limit int) error {
	if limit < config.MinRateLimitPerHour || limit > config.MaxRateLimitPerHour {
		return fmt.Errorf("%w: rate limit must be %d-%d", utils.ErrValidation,
			config.MinRateLimitPerHour, config.MaxRateLimitPerHour)
	}
	return s.store.Set(ctx, repositories.NamespaceSettings, settingsKeyRateLimit, strconv.Itoa(limit))
}

func (s *settingsService) VerifyAdmin(password string) bool {
	// Fail closed: a deployment without ADMIN_PASSWORD rejects all
	// admin calls rather than accepting any.
	return s.cfg.AdminPassword != "" && password == s.cfg.AdminPassword
}

func (s *settingsService) VerifyPIN(ctx context.Context, pin string) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return pin == settings.PIN, nil
}
