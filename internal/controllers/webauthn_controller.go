package controllers

import (
	"errors"
	"net/http"

	"github.com/shafferjason/invoice-scanner/internal/dtos"
	"github.com/shafferjason/invoice-scanner/internal/services"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// WebAuthnController dispatches the register/verify/challenge actions
// for credential identifiers.
type WebAuthnController struct {
	webAuthn services.WebAuthnService
}

func NewWebAuthnController(webAuthn services.WebAuthnService) *WebAuthnController {
	return &WebAuthnController{webAuthn: webAuthn}
}

func (c *WebAuthnController) Handle(w http.ResponseWriter, r *http.Request) {
	var req dtos.WebAuthnRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	switch req.Action {
	case dtos.WebAuthnActionRegister:
		if err := c.webAuthn.Register(r.Context(), req.PIN, req.CredentialID); err != nil {
			switch {
			case errors.Is(err, utils.ErrUnauthorized):
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidPIN, "Invalid PIN", err)
			case errors.Is(err, utils.ErrValidation):
				utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing credential ID", err)
			default:
				utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to register credential", err)
			}
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, dtos.SuccessResponse{Success: true})

	case dtos.WebAuthnActionVerify:
		valid := c.webAuthn.Verify(r.Context(), req.CredentialID)
		utils.RespondWithJSON(w, http.StatusOK, dtos.ValidityResponse{Valid: valid})

	case dtos.WebAuthnActionChallenge:
		challenge, err := c.webAuthn.IssueChallenge(r.Context())
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to issue challenge", err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, dtos.ChallengeResponse{Challenge: challenge})

	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidAction, "Invalid action")
	}
}
