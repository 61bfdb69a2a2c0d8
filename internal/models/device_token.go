package models

import "time"

// DeviceToken is the stored value for a bearer device token, keyed by
// the opaque token string itself. Expiry is fixed at registration;
// there is no renewal.
type DeviceToken struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the token is past its expiry at the given
// instant.
func (t DeviceToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
