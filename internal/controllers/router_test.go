package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/require"

	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/controllers"
	"github.com/shafferjason/invoice-scanner/internal/repositories"
	"github.com/shafferjason/invoice-scanner/internal/services"
)

// fakeMailer records sends and answers with a canned response.
type fakeMailer struct {
	sent     []*mail.SGMailV3
	response *rest.Response
	err      error
}

func (m *fakeMailer) Send(email *mail.SGMailV3) (*rest.Response, error) {
	m.sent = append(m.sent, email)
	return m.response, m.err
}

type testEnv struct {
	server *httptest.Server
	store  *repositories.MemoryStore
	mailer *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppName:          config.AppName,
		AdminPassword:    "correct",
		InvoiceFromEmail: "invoices@example.com",
		InvoiceRecipient: "inbox@example.com",
		DeviceTokenTTL:   config.DeviceTokenTTL,
		ChallengeTTL:     config.ChallengeTTL,
		RateLimitWindow:  config.RateLimitWindow,
	}

	store := repositories.NewMemoryStore()
	mailer := &fakeMailer{
		response: &rest.Response{
			StatusCode: http.StatusAccepted,
			Headers:    map[string][]string{"X-Message-Id": {"msg-test"}},
		},
	}

	settingsService := services.NewSettingsService(store, cfg)
	deviceTokenService := services.NewDeviceTokenService(store, settingsService, cfg)
	webAuthnService := services.NewWebAuthnService(store, settingsService, cfg)
	rateLimiterService := services.NewRateLimiterService(store, settingsService, cfg)
	invoiceService := services.NewInvoiceService(mailer, cfg)

	router := controllers.NewRouter(
		controllers.NewAdminController(settingsService),
		controllers.NewDeviceTokenController(deviceTokenService),
		controllers.NewWebAuthnController(webAuthnService),
		controllers.NewPINController(settingsService),
		controllers.NewInvoiceController(invoiceService, rateLimiterService),
		controllers.NewHealthController(nil),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, store: store, mailer: mailer}
}

// post sends a JSON body and decodes the JSON reply into out (if
// non-nil), returning the status code.
func (e *testEnv) post(t *testing.T, path string, body any, out any) int {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRouterMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/verify-pin")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestRouterNotFound(t *testing.T) {
	env := newTestEnv(t)

	status := env.post(t, "/api/nope", map[string]string{}, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
