package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shafferjason/invoice-scanner/internal/dtos"
	"github.com/shafferjason/invoice-scanner/internal/services"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// PINController answers standalone PIN checks.
type PINController struct {
	settings services.SettingsService
}

func NewPINController(settings services.SettingsService) *PINController {
	return &PINController{settings: settings}
}

func (c *PINController) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req dtos.VerifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", err)
		return
	}

	// An empty PIN just fails the comparison below.
	ok, err := c.settings.VerifyPIN(r.Context(), req.PIN)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Server error", err)
		return
	}
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidPIN, "Invalid PIN")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SuccessResponse{Success: true})
}
