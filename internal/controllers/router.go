package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shafferjason/invoice-scanner/internal/routes"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

// NewRouter wires every endpoint. All API routes are POST-only; mux
// answers other verbs with a JSON 405 and unknown paths with a JSON
// 404.
func NewRouter(
	admin *AdminController,
	deviceTokens *DeviceTokenController,
	webAuthn *WebAuthnController,
	pin *PINController,
	invoices *InvoiceController,
	health *HealthController,
) *mux.Router {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondErrorWithCode(w, http.StatusMethodNotAllowed, utils.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	router.HandleFunc(routes.Health, health.HealthCheckHandler).Methods("GET")

	router.HandleFunc(routes.AdminLogin, admin.Login).Methods("POST")
	router.HandleFunc(routes.AdminSettings, admin.GetSettings).Methods("POST")
	router.HandleFunc(routes.AdminSetPIN, admin.SetPIN).Methods("POST")
	router.HandleFunc(routes.AdminSetRateLimit, admin.SetRateLimit).Methods("POST")

	router.HandleFunc(routes.DeviceToken, deviceTokens.Handle).Methods("POST")
	router.HandleFunc(routes.WebAuthn, webAuthn.Handle).Methods("POST")
	router.HandleFunc(routes.VerifyPIN, pin.VerifyPIN).Methods("POST")

	router.HandleFunc(routes.SendInvoice, invoices.SendInvoice).Methods("POST")

	return router
}
