package controllers

import (
	"errors"
	"net/http"

	"github.com/shafferjason/invoice-scanner/internal/dtos"
	"github.com/shafferjason/invoice-scanner/internal/services"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// DeviceTokenController dispatches the register/verify/revoke actions
// for bearer device tokens.
type DeviceTokenController struct {
	deviceTokens services.DeviceTokenService
}

func NewDeviceTokenController(deviceTokens services.DeviceTokenService) *DeviceTokenController {
	return &DeviceTokenController{deviceTokens: deviceTokens}
}

func (c *DeviceTokenController) Handle(w http.ResponseWriter, r *http.Request) {
	var req dtos.DeviceTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	switch req.Action {
	case dtos.DeviceActionRegister:
		token, err := c.deviceTokens.Register(r.Context(), req.PIN)
		if err != nil {
			if errors.Is(err, utils.ErrUnauthorized) {
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidPIN, "Invalid PIN", err)
				return
			}
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to register device", err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, dtos.DeviceTokenRegisterResponse{Success: true, Token: token})

	case dtos.DeviceActionVerify:
		valid := c.deviceTokens.Verify(r.Context(), req.Token)
		utils.RespondWithJSON(w, http.StatusOK, dtos.ValidityResponse{Valid: valid})

	case dtos.DeviceActionRevoke:
		if err := c.deviceTokens.Revoke(r.Context(), req.Token); err != nil {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to revoke device", err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, dtos.SuccessResponse{Success: true})

	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidAction, "Invalid action")
	}
}
