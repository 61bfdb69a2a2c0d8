package dtos

// WebAuthn actions.
const (
	WebAuthnActionRegister  = "register"
	WebAuthnActionVerify    = "verify"
	WebAuthnActionChallenge = "challenge"
)

// WebAuthnRequest is the action-dispatch body for the webauthn
// endpoint.
type WebAuthnRequest struct {
	Action       string `json:"action" validate:"required"`
	CredentialID string `json:"credentialId"`
	PIN          string `json:"pin"`
}

type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}
