package main

import (
	"context"
	"net/http"

	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"

	"github.com/shafferjason/invoice-scanner/internal/app"
	"github.com/shafferjason/invoice-scanner/internal/config"
	"github.com/shafferjason/invoice-scanner/internal/controllers"
	"github.com/shafferjason/invoice-scanner/internal/repositories"
	"github.com/shafferjason/invoice-scanner/internal/services"
	"github.com/shafferjason/invoice-scanner/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	store := repositories.NewKVStore(application.DB)

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	settingsService := services.NewSettingsService(store, cfg)
	deviceTokenService := services.NewDeviceTokenService(store, settingsService, cfg)
	webAuthnService := services.NewWebAuthnService(store, settingsService, cfg)
	rateLimiterService := services.NewRateLimiterService(store, settingsService, cfg)
	invoiceService := services.NewInvoiceService(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg)

	cleanupService := services.NewCleanupService(
		deviceTokenService,
		webAuthnService,
		rateLimiterService,
	)

	//----------------------------------------------------------------------
	// Controllers & Router
	//----------------------------------------------------------------------
	router := controllers.NewRouter(
		controllers.NewAdminController(settingsService),
		controllers.NewDeviceTokenController(deviceTokenService),
		controllers.NewWebAuthnController(webAuthnService),
		controllers.NewPINController(settingsService),
		controllers.NewInvoiceController(invoiceService, rateLimiterService),
		controllers.NewHealthController(application.DB),
	)

	//----------------------------------------------------------------------
	// Setup daily cleanup via cron
	//----------------------------------------------------------------------
	c := cron.New()

	_, schErr := c.AddFunc("15 3 * * *", func() {
		if e := cleanupService.CleanupDaily(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled cleanup failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule cleanup job")
	}

	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
