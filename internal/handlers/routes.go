package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gdg-garage/travel-enquiry-api/internal/auth"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, enquiryHandler *EnquiryHandler, deskHandler *DeskHandler, apiKeyHandler *APIKeyHandler, enableCORS bool) huma.API {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if enableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", auth.APIKeyHeader},
		}))
	}

	// Initialize Huma API
	config := huma.DefaultConfig("Travel Enquiry API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: auth.APIKeyHeader,
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	if enquiryHandler != nil {
		RegisterEnquiryRoutes(api, enquiryHandler)
	}
	if deskHandler != nil {
		RegisterDeskRoutes(api, authHandler, deskHandler)
	}
	if apiKeyHandler != nil {
		RegisterAPIKeyRoutes(api, authHandler, apiKeyHandler)
	}
	return api
}

// RegisterEnquiryRoutes mounts the relational backend under /api.
func RegisterEnquiryRoutes(api huma.API, h *EnquiryHandler) {
	huma.Post(api, "/api/enquiries", h.HandleSave, func(o *huma.Operation) {
		o.Tags = []string{"backend"}
	})
	huma.Get(api, "/api/enquiries", h.HandleList, func(o *huma.Operation) {
		o.Tags = []string{"backend"}
	})
	huma.Post(api, "/api/enquiries/{type}/{id}/notes", h.HandleAddNote, func(o *huma.Operation) {
		o.Tags = []string{"backend"}
	})
	huma.Get(api, "/api/status", h.HandleStatus, func(o *huma.Operation) {
		o.Tags = []string{"backend"}
	})
}

// RegisterDeskRoutes mounts the form and dashboard under /desk. The form
// routes are public; dashboard and mirror routes require staff.
func RegisterDeskRoutes(api huma.API, authHandler *auth.AuthHandler, h *DeskHandler) {
	// Public routes
	huma.Post(api, "/desk/preview", h.HandlePreview, func(o *huma.Operation) {
		o.Tags = []string{"form"}
	})
	huma.Post(api, "/desk/submit", h.HandleSubmit, func(o *huma.Operation) {
		o.Tags = []string{"form"}
	})

	// Protected routes
	protected := staffOnly(api, authHandler, "dashboard")
	huma.Get(api, "/desk/me", authHandler.HandleMe, protected)
	huma.Get(api, "/desk/enquiries", h.HandleList, protected)
	huma.Get(api, "/desk/enquiry", h.HandleGet, protected)
	huma.Post(api, "/desk/enquiry/notes", h.HandleAddNote, protected)
	huma.Get(api, "/desk/mirror", h.HandleMirrorList, protected)
	huma.Get(api, "/desk/mirror/export", h.HandleMirrorExport, protected)
	huma.Post(api, "/desk/mirror/import", h.HandleMirrorImport, protected)
	huma.Delete(api, "/desk/mirror", h.HandleMirrorClear, protected)
	huma.Delete(api, "/desk/mirror/{localId}", h.HandleMirrorDelete, protected)
}

func RegisterAPIKeyRoutes(api huma.API, authHandler *auth.AuthHandler, h *APIKeyHandler) {
	protected := staffOnly(api, authHandler, "api-keys")
	huma.Post(api, "/desk/api-keys", h.HandleCreate, protected)
	huma.Get(api, "/desk/api-keys", h.HandleList, protected)
	huma.Delete(api, "/desk/api-keys/{id}", h.HandleDelete, protected)
}

// staffOnly guards an operation with the staff middleware.
func staffOnly(api huma.API, authHandler *auth.AuthHandler, tag string) func(o *huma.Operation) {
	return func(o *huma.Operation) {
		o.Tags = []string{tag}
		o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
		o.Middlewares = append(o.Middlewares, authHandler.Middleware(api))
	}
}
