package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gdg-garage/travel-enquiry-api/internal/auth"
	"github.com/gdg-garage/travel-enquiry-api/internal/compose"
	"github.com/gdg-garage/travel-enquiry-api/internal/config"
	"github.com/gdg-garage/travel-enquiry-api/internal/dashboard"
	"github.com/gdg-garage/travel-enquiry-api/internal/database"
	"github.com/gdg-garage/travel-enquiry-api/internal/enquiry"
	"github.com/gdg-garage/travel-enquiry-api/internal/gateway"
	"github.com/gdg-garage/travel-enquiry-api/internal/handlers"
	"github.com/gdg-garage/travel-enquiry-api/internal/notifier"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Remote backend and local mirror
	var backend gateway.Backend
	switch cfg.Backend {
	case config.BackendSheet:
		if cfg.SheetEndpoint == "" {
			log.Fatalf("SHEET_ENDPOINT is required for the sheet backend")
		}
		backend = gateway.NewSheetBackend(cfg.SheetEndpoint, cfg.SheetToken, cfg.DefaultCurrency)
	case config.BackendREST:
		backend = gateway.NewRESTBackend(cfg.RESTEndpoint, nil)
	default:
		log.Fatalf("Unknown BACKEND %q", cfg.Backend)
	}
	mirror := gateway.NewMirror(cfg.MirrorPath)
	log.Printf("Persisting enquiries to the %s backend, mirroring to %s", backend.Name(), cfg.MirrorPath)

	// Notifiers
	var notifiers notifier.Multi
	discordNotifier, err := notifier.NewDiscordNotifier(cfg)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	} else {
		notifiers = append(notifiers, discordNotifier)
	}
	whatsAppNotifier, err := notifier.NewWhatsAppNotifier(cfg)
	if err != nil {
		log.Printf("WhatsApp notifier not initialized: %v", err)
	} else {
		notifiers = append(notifiers, whatsAppNotifier)
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	if !authHandler.Enabled() {
		log.Printf("JWT_SECRET is empty, staff routes are open")
	}
	builder := enquiry.NewBuilder(enquiry.NewTripTypePolicy(cfg.MultiCityDisablesReturn), cfg.DefaultCurrency)
	deskHandler := handlers.NewDeskHandler(
		builder,
		compose.Options{IncludeContactDetails: cfg.EmailIncludeContactDetails},
		gateway.New(backend, mirror),
		dashboard.NewReader(backend),
		notifiers,
	)
	enquiryHandler := handlers.NewEnquiryHandler(db)
	apiKeyHandler := handlers.NewAPIKeyHandler(db)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, enquiryHandler, deskHandler, apiKeyHandler, cfg.EnableCORS)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
