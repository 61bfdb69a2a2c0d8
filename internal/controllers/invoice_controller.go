package controllers

import (
	"errors"
	"net/http"

	"github.com/shafferjason/invoice-scanner/internal/dtos"
	"github.com/shafferjason/invoice-scanner/internal/services"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// InvoiceController guards the send endpoint with the sliding-window
// quota and records quota consumption only after the provider accepted
// the message, so failed sends cost the caller nothing.
type InvoiceController struct {
	invoices    services.InvoiceService
	rateLimiter services.RateLimiterService
}

func NewInvoiceController(invoices services.InvoiceService, rateLimiter services.RateLimiterService) *InvoiceController {
	return &InvoiceController{invoices: invoices, rateLimiter: rateLimiter}
}

func (c *InvoiceController) SendInvoice(w http.ResponseWriter, r *http.Request) {
	var req dtos.SendInvoiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	clientID := utils.GetClientIdentifier(r)

	window, err := c.rateLimiter.Check(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, utils.ErrRateLimitExceeded) {
			utils.RespondErrorWithCode(w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded, "Rate limit exceeded", err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to check rate limit", err)
		return
	}

	messageID, err := c.invoices.Send(r.Context(), services.SendInvoiceParams{
		PDFBase64: req.PDF,
		Filename:  req.Filename,
		Amount:    req.Amount,
		DocType:   req.DocType,
	})
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to send email", err)
		return
	}

	if err := c.rateLimiter.RecordSend(r.Context(), clientID, window); err != nil {
		// The email already went out; losing the bookkeeping write
		// only loosens the quota.
		utils.Logger.WithError(err).Warn("Failed to record send in rate window")
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.SendInvoiceResponse{Success: true, MessageID: messageID})
}
