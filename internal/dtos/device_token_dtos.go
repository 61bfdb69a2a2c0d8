package dtos

// Device token actions.
const (
	DeviceActionRegister = "register"
	DeviceActionVerify   = "verify"
	DeviceActionRevoke   = "revoke"
)

// DeviceTokenRequest is the action-dispatch body for the device-token
// endpoint. Token and PIN are required only by the actions that use
// them.
type DeviceTokenRequest struct {
	Action string `json:"action" validate:"required"`
	Token  string `json:"token"`
	PIN    string `json:"pin"`
}

// DeviceTokenRegisterResponse returns the freshly issued token; the
// caller is responsible for safekeeping it.
type DeviceTokenRegisterResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
