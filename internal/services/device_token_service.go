package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/models"
	"github.com/shafferjason/invoice-scanner/internal/repositories"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// DeviceTokenVerifyPolicy: an unreachable store denies access rather
// than granting it.
const DeviceTokenVerifyPolicy = utils.FailClosed

// DeviceTokenService issues, validates, and revokes opaque bearer
// tokens. A token is immutable once issued: no renewal, fixed expiry,
// purged lazily when a verify reads it past its expiry.
type DeviceTokenService interface {
	// Register issues a new token after a PIN check. Returns
	// utils.ErrUnauthorized on a bad PIN.
	Register(ctx context.Context, pin string) (string, error)
	// Verify reports whether the token exists and has not expired.
	// Expired tokens are deleted on read. Storage errors are swallowed
	// per DeviceTokenVerifyPolicy.
	Verify(ctx context.Context, token string) bool
	// Revoke deletes the token. Revoking an unknown token is not an
	// error.
	Revoke(ctx context.Context, token string) error
	// CleanupExpired removes tokens already past their expiry. Pure
	// garbage collection; verify semantics do not depend on it.
	CleanupExpired(ctx context.Context) error
}

type deviceTokenService struct {
	store    repositories.Store
	settings SettingsService
	cfg      *config.Config
}

func NewDeviceTokenService(store repositories.Store, settings SettingsService, cfg *config.Config) DeviceTokenService {
	return &deviceTokenService{store: store, settings: settings, cfg: cfg}
}

func (s *deviceTokenService) Register(ctx context.Context, pin string) (string, error) {
	ok, err := s.settings.VerifyPIN(ctx, pin)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: invalid PIN", utils.ErrUnauthorized)
	}

	// Two concatenated UUIDs give well over the 122 bits of entropy a
	// single one carries; the token string is the sole credential.
	token := uuid.New().String() + "-" + uuid.New().String()

	record := models.DeviceToken{ExpiresAt: time.Now().UTC().Add(s.cfg.DeviceTokenTTL)}
	value, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, repositories.NamespaceDevices, token, string(value)); err != nil {
		return "", err
	}
	return token, nil
}

func (s *deviceTokenService) Verify(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	value, found, err := s.store.Get(ctx, repositories.NamespaceDevices, token)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Device token lookup failed, applying %s", DeviceTokenVerifyPolicy)
		return DeviceTokenVerifyPolicy.AllowOnError()
	}
	if !found {
		return false
	}

	var record models.DeviceToken
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		utils.Logger.WithError(err).Warnf("Device token record is malformed, applying %s", DeviceTokenVerifyPolicy)
		return DeviceTokenVerifyPolicy.AllowOnError()
	}

	if record.Expired(time.Now().UTC()) {
		// Lazy expiry: expired tokens are only purged when looked up.
		if err := s.store.Delete(ctx, repositories.NamespaceDevices, token); err != nil {
			utils.Logger.WithError(err).Warn("Failed to purge expired device token")
		}
		return false
	}
	return true
}

func (s *deviceTokenService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, repositories.NamespaceDevices, token); err != nil {
		// Revocation is idempotent and best-effort, matching verify's
		// lazy purge; the token still dies at its expiry.
		utils.Logger.WithError(err).Warn("Failed to delete device token on revoke")
	}
	return nil
}

func (s *deviceTokenService) CleanupExpired(ctx context.Context) error {
	entries, err := s.store.List(ctx, repositories.NamespaceDevices)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	removed := 0
	for _, entry := range entries {
		var record models.DeviceToken
		if err := json.Unmarshal([]byte(entry.Value), &record); err != nil {
			continue
		}
		if !record.Expired(now) {
			continue
		}
		if err := s.store.Delete(ctx, repositories.NamespaceDevices, entry.Key); err != nil {
			return err
		}
		removed++
	}

	utils.Logger.Infof("Device token cleanup removed %d expired tokens", removed)
	return nil
}
