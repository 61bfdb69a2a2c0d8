package models

import "time"

// WebAuthnCredential is the stored value for a registered credential,
// keyed by the caller-supplied credential id. No signature material is
// kept; presence of the id is what verification checks.
type WebAuthnCredential struct {
	CreatedAt  time.Time `json:"createdAt"`
	LastUsedAt time.Time `json:"lastUsedAt"`
}

// Challenge is a short-lived random value intended to anchor a future
// assertion ceremony. The expiry is advisory: nothing consumes the
// challenge automatically, a verifier must check ExpiresAt itself.
type Challenge struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the challenge is past its expiry at the
// given instant.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
