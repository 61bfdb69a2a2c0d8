package routes

const (
	// Health
	Health = "/health"

	// Admin endpoints
	AdminLogin        = "/api/admin/login"
	AdminSettings     = "/api/admin/settings"
	AdminSetPIN       = "/api/admin/set-pin"
	AdminSetRateLimit = "/api/admin/set-rate-limit"

	// Authentication endpoints
	DeviceToken = "/api/device-token"
	WebAuthn    = "/api/webauthn"
	VerifyPIN   = "/api/verify-pin"

	// Document sending
	SendInvoice = "/api/send-invoice"
)
