package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/models"
	"github.com/shafferjason/invoice-scanner/internal/repositories"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// RateWindowReadPolicy: a corrupt or unreadable window counts as
// empty. The quota is a soft operational guard on email cost, so a bad
// record must not lock a client out permanently.
const RateWindowReadPolicy = utils.FailOpen

// RateLimiterService enforces a per-client sliding-window quota on
// sends, with the hourly limit read from settings on every check.
//
// The check and the commit are split so that only effectful sends
// consume quota: Check filters the stored window and denies without
// persisting anything, and the caller invokes RecordSend with the
// filtered window only after the downstream send succeeded. Two
// concurrent sends can race the read-modify-write and under-count by
// one; that loosens the quota, it never corrupts other state.
type RateLimiterService interface {
	// Check returns the client's window filtered to the trailing
	// hour, or utils.ErrRateLimitExceeded when the quota is already
	// spent. A denied check leaves stored state untouched.
	Check(ctx context.Context, clientID string) (models.RateWindow, error)
	// RecordSend appends the current instant to the filtered window
	// from Check and persists it.
	RecordSend(ctx context.Context, clientID string, window models.RateWindow) error
	// CleanupStale deletes windows whose entries have all aged out.
	CleanupStale(ctx context.Context) error
}

type rateLimiterService struct {
	store    repositories.Store
	settings SettingsService
	cfg      *config.Config
}

func NewRateLimiterService(store repositories.Store, settings SettingsService, cfg *config.Config) RateLimiterService {
	return &rateLimiterService{store: store, settings: settings, cfg: cfg}
}

func (s *rateLimiterService) Check(ctx context.Context, clientID string) (models.RateWindow, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	window := s.readWindow(ctx, clientID)
	filtered := window.Within(time.Now().UTC().Add(-s.cfg.RateLimitWindow))

	if len(filtered) >= settings.RateLimitPerHour {
		utils.Logger.Warnf("Rate limit exceeded for client %s (%d sends in window, limit %d)",
			clientID, len(filtered), settings.RateLimitPerHour)
		return nil, utils.ErrRateLimitExceeded
	}
	return filtered, nil
}

func (s *rateLimiterService) RecordSend(ctx context.Context, clientID string, window models.RateWindow) error {
	window = append(window, time.Now().UTC())
	value, err := json.Marshal(window)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, repositories.NamespaceRateLimits, clientID, string(value))
}

// readWindow loads and parses the stored window, treating unreadable
// or malformed records as empty per RateWindowReadPolicy.
func (s *rateLimiterService) readWindow(ctx context.Context, clientID string) models.RateWindow {
	value, found, err := s.store.Get(ctx, repositories.NamespaceRateLimits, clientID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Rate window read failed, applying %s", RateWindowReadPolicy)
		return nil
	}
	if !found {
		return nil
	}

	var window models.RateWindow
	if err := json.Unmarshal([]byte(value), &window); err != nil {
		utils.Logger.WithError(err).Warnf("Rate window is malformed, applying %s", RateWindowReadPolicy)
		return nil
	}
	return window
}

func (s *rateLimiterService) CleanupStale(ctx context.Context) error {
	entries, err := s.store.List(ctx, repositories.NamespaceRateLimits)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-s.cfg.RateLimitWindow)
	removed := 0
	for _, entry := range entries {
		var window models.RateWindow
		if err := json.Unmarshal([]byte(entry.Value), &window); err == nil && len(window.Within(cutoff)) > 0 {
			continue
		}
		// Fully aged-out (or unparseable) windows are safe to drop;
		// partially live ones are left alone so the sweep never races
		// a concurrent send's read-modify-write.
		if err := s.store.Delete(ctx, repositories.NamespaceRateLimits, entry.Key); err != nil {
			return err
		}
		removed++
	}

	utils.Logger.Infof("Rate window cleanup removed %d stale windows", removed)
	return nil
}
