package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/models"
	"github.com/shafferjason/invoice-scanner/internal/repositories"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// CredentialVerifyPolicy: storage errors deny, same as device tokens.
const CredentialVerifyPolicy = utils.FailClosed

// challengeKeyPrefix separates challenge records from credential
// records inside the webauthn namespace.
const challengeKeyPrefix = "challenge:"

// WebAuthnService registers and verifies credential identifiers and
// issues time-boxed challenges. No signature verification happens
// here: verification checks only that the credential id is registered,
// and challenges are never consumed. Their expiry is advisory
// metadata for a future assertion ceremony.
type WebAuthnService interface {
	// Register upserts a credential id after a PIN check. Returns
	// utils.ErrUnauthorized on a bad PIN, utils.ErrValidation on an
	// empty id. Re-registering an id overwrites its timestamps.
	Register(ctx context.Context, pin, credentialID string) error
	// Verify reports whether the credential id is registered, bumping
	// its last-used timestamp on a hit. Storage errors are swallowed
	// per CredentialVerifyPolicy.
	Verify(ctx context.Context, credentialID string) bool
	// IssueChallenge stores and returns a fresh random challenge with
	// a 5-minute advisory expiry.
	IssueChallenge(ctx context.Context) (string, error)
	// CleanupExpiredChallenges removes challenges past their expiry.
	CleanupExpiredChallenges(ctx context.Context) error
}

type webAuthnService struct {
	store    repositories.Store
	settings SettingsService
	cfg      *config.Config
}

func NewWebAuthnService(store repositories.Store, settings SettingsService, cfg *config.Config) WebAuthnService {
	return &webAuthnService{store: store, settings: settings, cfg: cfg}
}

func (s *webAuthnService) Register(ctx context.Context, pin, credentialID string) error {
	ok, err := s.settings.VerifyPIN(ctx, pin)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: invalid PIN", utils.ErrUnauthorized)
	}
	if credentialID == "" {
		return fmt.Errorf("%w: missing credential ID", utils.ErrValidation)
	}

	now := time.Now().UTC()
	value, err := json.Marshal(models.WebAuthnCredential{CreatedAt: now, LastUsedAt: now})
	if err != nil {
		return err
	}
	return s.store.Set(ctx, repositories.NamespaceWebAuthn, credentialID, string(value))
}

func (s *webAuthnService) Verify(ctx context.Context, credentialID string) bool {
	if credentialID == "" {
		return false
	}

	value, found, err := s.store.Get(ctx, repositories.NamespaceWebAuthn, credentialID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Credential lookup failed, applying %s", CredentialVerifyPolicy)
		return CredentialVerifyPolicy.AllowOnError()
	}
	if !found {
		return false
	}

	var credential models.WebAuthnCredential
	if err := json.Unmarshal([]byte(value), &credential); err != nil {
		utils.Logger.WithError(err).Warnf("Credential record is malformed, applying %s", CredentialVerifyPolicy)
		return CredentialVerifyPolicy.AllowOnError()
	}

	// Read-modify-write without a lock: two concurrent verifications
	// may race on the timestamp, which only affects the last-used
	// bookkeeping.
	credential.LastUsedAt = time.Now().UTC()
	updated, err := json.Marshal(credential)
	if err != nil {
		return CredentialVerifyPolicy.AllowOnError()
	}
	if err := s.store.Set(ctx, repositories.NamespaceWebAuthn, credentialID, string(updated)); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to update credential last-used, applying %s", CredentialVerifyPolicy)
		return CredentialVerifyPolicy.AllowOnError()
	}
	return true
}

func (s *webAuthnService) IssueChallenge(ctx context.Context) (string, error) {
	challenge := uuid.New().String() + uuid.New().String()

	value, err := json.Marshal(models.Challenge{ExpiresAt: time.Now().UTC().Add(s.cfg.ChallengeTTL)})
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, repositories.NamespaceWebAuthn, challengeKeyPrefix+challenge, string(value)); err != nil {
		return "", err
	}
	return challenge, nil
}

func (s *webAuthnService) CleanupExpiredChallenges(ctx context.Context) error {
	entries, err := s.store.List(ctx, repositories.NamespaceWebAuthn)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	removed := 0
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Key, challengeKeyPrefix) {
			continue
		}
		var challenge models.Challenge
		if err := json.Unmarshal([]byte(entry.Value), &challenge); err != nil {
			continue
		}
		if !challenge.Expired(now) {
			continue
		}
		if err := s.store.Delete(ctx, repositories.NamespaceWebAuthn, entry.Key); err != nil {
			return err
		}
		removed++
	}

	utils.Logger.Infof("Challenge cleanup removed %d expired challenges", removed)
	return nil
}
