package services

import (
	"context"

	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// CleanupService runs the nightly garbage-collection sweeps. Every
// sweep only removes records the read paths already treat as dead, so
// lazy-expiry semantics are unaffected by whether or when it runs.
type CleanupService interface {
	CleanupDaily(ctx context.Context) error
}

type cleanupService struct {
	deviceTokens DeviceTokenService
	webAuthn     WebAuthnService
	rateLimiter  RateLimiterService
}

func NewCleanupService(
	deviceTokens DeviceTokenService,
	webAuthn WebAuthnService,
	rateLimiter RateLimiterService,
) CleanupService {
	return &cleanupService{
		deviceTokens: deviceTokens,
		webAuthn:     webAuthn,
		rateLimiter:  rateLimiter,
	}
}

func (s *cleanupService) CleanupDaily(ctx context.Context) error {
	logger := utils.Logger

	if err := s.deviceTokens.CleanupExpired(ctx); err != nil {
		logger.WithError(err).Error("Failed to cleanup expired device tokens")
		return err
	}

	if err := s.webAuthn.CleanupExpiredChallenges(ctx); err != nil {
		logger.WithError(err).Error("Failed to cleanup expired challenges")
		return err
	}

	if err := s.rateLimiter.CleanupStale(ctx); err != nil {
		logger.WithError(err).Error("Failed to cleanup stale rate windows")
		return err
	}

	logger.Info("Daily cleanup completed successfully.")
	return nil
}
