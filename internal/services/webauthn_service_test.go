package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/models"
	"github.com/shafferjason/invoice-scanner/internal/repositories"
	"github.com/shafferjason/invoice-scanner/internal/services"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

func newWebAuthnService(store repositories.Store) services.WebAuthnService {
	cfg := newTestConfig()
	settings := services.NewSettingsService(store, cfg)
	return services.NewWebAuthnService(store, settings, cfg)
}

func TestWebAuthnRegisterAndVerify(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newWebAuthnService(store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, config.DefaultPIN, "cred-1"))

	assert.True(t, svc.Verify(ctx, "cred-1"))
	assert.False(t, svc.Verify(ctx, "cred-unknown"))
	assert.False(t, svc.Verify(ctx, ""))
}

func TestWebAuthnRegisterGates(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newWebAuthnService(store)
	ctx := context.Background()

	err := svc.Register(ctx, "9999", "cred-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))

	err = svc.Register(ctx, config.DefaultPIN, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestWebAuthnReregisterOverwrites(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newWebAuthnService(store)
	ctx := context.Background()

	stale, err := json.Marshal(models.WebAuthnCredential{
		CreatedAt:  time.Now().UTC().Add(-48 * time.Hour),
		LastUsedAt: time.Now().UTC().Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, repositories.NamespaceWebAuthn, "cred-1", string(stale)))

	require.NoError(t, svc.Register(ctx, config.DefaultPIN, "cred-1"))

	value, found, err := store.Get(ctx, repositories.NamespaceWebAuthn, "cred-1")
	require.NoError(t, err)
	require.True(t, found)

	var credential models.WebAuthnCredential
	require.NoError(t, json.Unmarshal([]byte(value), &credential))
	assert.WithinDuration(t, time.Now().UTC(), credential.CreatedAt, time.Minute,
		"re-registration resets timestamps rather than appending")
}

func TestWebAuthnVerifyBumpsLastUsed(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newWebAuthnService(store)
	ctx := context.Background()

	old := time.Now().UTC().Add(-24 * time.Hour)
	seeded, err := json.Marshal(models.WebAuthnCredential{CreatedAt: old, LastUsedAt: old})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, repositories.NamespaceWebAuthn, "cred-1", string(seeded)))

	require.True(t, svc.Verify(ctx, "cred-1"))

	value, found, err := store.Get(ctx, repositories.NamespaceWebAuthn, "cred-1")
	require.NoError(t, err)
	require.True(t, found)

	var credential models.WebAuthnCredential
	require.NoError(t, json.Unmarshal([]byte(value), &credential))
	assert.Equal(t, old, credential.CreatedAt)
	assert.WithinDuration(t, time.Now().UTC(), credential.LastUsedAt, time.Minute)
}

func TestWebAuthnVerifyFailsClosed(t *testing.T) {
	assert.Equal(t, utils.FailClosed, services.CredentialVerifyPolicy)

	svc := newWebAuthnService(failingStore{})
	assert.False(t, svc.Verify(context.Background(), "cred-1"))
}

func TestWebAuthnIssueChallenge(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newWebAuthnService(store)
	ctx := context.Background()

	challenge, err := svc.IssueChallenge(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, challenge)

	value, found, err := store.Get(ctx, repositories.NamespaceWebAuthn, "challenge:"+challenge)
	require.NoError(t, err)
	require.True(t, found)

	var record models.Challenge
	require.NoError(t, json.Unmarshal([]byte(value), &record))
	assert.WithinDuration(t, time.Now().UTC().Add(config.ChallengeTTL), record.ExpiresAt, time.Minute)

	// A challenge id must never verify as a credential.
	assert.False(t, svc.Verify(ctx, challenge))
}

func TestWebAuthnCleanupExpiredChallenges(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := newWebAuthnService(store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, config.DefaultPIN, "cred-1"))

	live, err := svc.IssueChallenge(ctx)
	require.NoError(t, err)

	expired, err := json.Marshal(models.Challenge{ExpiresAt: time.Now().UTC().Add(-time.Minute)})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, repositories.NamespaceWebAuthn, "challenge:dead", string(expired)))

	require.NoError(t, svc.CleanupExpiredChallenges(ctx))

	_, found, err := store.Get(ctx, repositories.NamespaceWebAuthn, "challenge:dead")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.Get(ctx, repositories.NamespaceWebAuthn, "challenge:"+live)
	require.NoError(t, err)
	assert.True(t, found, "live challenges survive the sweep")

	assert.True(t, svc.Verify(ctx, "cred-1"), "credentials are never swept")
}
