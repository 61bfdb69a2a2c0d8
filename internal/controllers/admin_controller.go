package controllers

import (
	"errors"
	"net/http"

	"github.com/shafferjason/invoice-scanner/internal/dtos"
	"github.com/shafferjason/invoice-scanner/internal/services"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// AdminController serves the password-gated settings endpoints. The
// admin secret never touches the key-value layer; it lives in process
// configuration only.
type AdminController struct {
	settings services.SettingsService
}

func NewAdminController(settings services.SettingsService) *AdminController {
	return &AdminController{settings: settings}
}

func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.AdminLoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if !c.settings.VerifyAdmin(req.Password) {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid password")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SuccessResponse{Success: true})
}

func (c *AdminController) GetSettings(w http.ResponseWriter, r *http.Request) {
	var req dtos.AdminAuthedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !c.settings.VerifyAdmin(req.AdminPassword) {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized")
		return
	}

	settings, err := c.settings.Get(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load settings", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SettingsResponse{
		PIN:       settings.PIN,
		RateLimit: settings.RateLimitPerHour,
	})
}

func (c *AdminController) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req dtos.SetPINRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !c.settings.VerifyAdmin(req.AdminPassword) {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized")
		return
	}

	if err := c.settings.SetPIN(r.Context(), req.PIN); err != nil {
		if errors.Is(err, utils.ErrValidation) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "PIN must be 4-6 digits", err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to update PIN", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SuccessResponse{Success: true})
}

func (c *AdminController) SetRateLimit(w http.ResponseWriter, r *http.Request) {
	var req dtos.SetRateLimitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !c.settings.VerifyAdmin(req.AdminPassword) {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized")
		return
	}

	if err := c.settings.SetRateLimit(r.Context(), req.RateLimit); err != nil {
		if errors.Is(err, utils.ErrValidation) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Rate limit must be 1-1000", err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to update rate limit", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SuccessResponse{Success: true})
}
