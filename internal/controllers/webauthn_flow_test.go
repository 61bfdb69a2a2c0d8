package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafferjason/invoice-scanner/internal/routes"
)

func TestWebAuthnFlow(t *testing.T) {
	env := newTestEnv(t)

	status := env.post(t, routes.WebAuthn, map[string]string{
		"action":       "register",
		"pin":          "1234",
		"credentialId": "cred-abc",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	var verdict struct {
		Valid bool `json:"valid"`
	}
	status = env.post(t, routes.WebAuthn, map[string]string{
		"action":       "verify",
		"credentialId": "cred-abc",
	}, &verdict)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, verdict.Valid)

	status = env.post(t, routes.WebAuthn, map[string]string{
		"action":       "verify",
		"credentialId": "cred-unknown",
	}, &verdict)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, verdict.Valid)
}

func TestWebAuthnRegisterRejections(t *testing.T) {
	env := newTestEnv(t)

	status := env.post(t, routes.WebAuthn, map[string]string{
		"action":       "register",
		"pin":          "0000",
		"credentialId": "cred-abc",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = env.post(t, routes.WebAuthn, map[string]string{
		"action": "register",
		"pin":    "1234",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status, "missing credential id")
}

func TestWebAuthnChallenge(t *testing.T) {
	env := newTestEnv(t)

	var issued struct {
		Challenge string `json:"challenge"`
	}
	status := env.post(t, routes.WebAuthn, map[string]string{"action": "challenge"}, &issued)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, issued.Challenge)

	// Challenge ids are not credentials.
	var verdict struct {
		Valid bool `json:"valid"`
	}
	status = env.post(t, routes.WebAuthn, map[string]string{
		"action":       "verify",
		"credentialId": issued.Challenge,
	}, &verdict)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, verdict.Valid)
}

func TestWebAuthnUnknownAction(t *testing.T) {
	env := newTestEnv(t)

	status := env.post(t, routes.WebAuthn, map[string]string{"action": "attest"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
