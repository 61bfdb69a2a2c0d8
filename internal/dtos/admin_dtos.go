package dtos

// AdminLoginRequest is the request body for the admin login endpoint.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminAuthedRequest is the body for admin endpoints that only need
// the password.
type AdminAuthedRequest struct {
	AdminPassword string `json:"adminPassword" validate:"required"`
}

// SettingsResponse mirrors the stored settings, defaults included.
type SettingsResponse struct {
	PIN       string `json:"pin"`
	RateLimit int    `json:"rateLimit"`
}

type SetPINRequest struct {
	AdminPassword string `json:"adminPassword" validate:"required"`
	PIN           string `json:"pin" validate:"required"`
}

type SetRateLimitRequest struct {
	AdminPassword string `json:"adminPassword" validate:"required"`
	RateLimit     int    `json:"rateLimit" validate:"required"`
}
