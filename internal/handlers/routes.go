package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/immunitrack/vaccine-tracker-api/internal/auth"
	"github.com/immunitrack/vaccine-tracker-api/internal/config"
)

func RegisterRoutes(
	r *chi.Mux,
	cfg *config.Config,
	authHandler *auth.AuthHandler,
	persons *PersonHandler,
	vaccines *VaccineHandler,
	locations *LocationHandler,
	sessions *SessionHandler,
	apiKeys *APIKeyHandler,
) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	if cfg.EnableCORS {
		r.Use(corsMiddleware(cfg.CORSOrigin))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Route not found",
		})
	})

	// Public API: auth routes plus the OpenAPI/docs endpoints.
	humaConfig := huma.DefaultConfig("Vaccination Tracker API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, humaConfig)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("OK"))
	})

	created := func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	}

	huma.Post(api, "/api/auth/register", authHandler.HandleRegister, created)
	huma.Post(api, "/api/auth/login", authHandler.HandleLogin)

	// Protected routes register against the group's sub-router so the
	// auth middleware actually wraps them. The second huma instance
	// shares nothing but the schema registry defaults; its docs/openapi
	// paths are disabled to avoid double registration on the mux.
	r.Group(func(gr chi.Router) {
		gr.Use(authHandler.AuthMiddleware)

		protectedConfig := huma.DefaultConfig("Vaccination Tracker API", "1.0.0")
		protectedConfig.OpenAPIPath = ""
		protectedConfig.DocsPath = ""
		protectedConfig.SchemasPath = ""
		protected := humachi.New(gr, protectedConfig)

		secured := func(o *huma.Operation) {
			o.Security = []map[string][]string{{"bearerAuth": {}}}
		}

		huma.Get(protected, "/api/auth/me", authHandler.HandleMe, secured)

		huma.Get(protected, "/api/persons", persons.HandleList, secured)
		huma.Post(protected, "/api/persons", persons.HandleCreate, secured, created)
		huma.Get(protected, "/api/persons/{id}", persons.HandleGet, secured)
		huma.Put(protected, "/api/persons/{id}", persons.HandleUpdate, secured)
		huma.Delete(protected, "/api/persons/{id}", persons.HandleDelete, secured)

		huma.Get(protected, "/api/vaccines", vaccines.HandleList, secured)
		huma.Post(protected, "/api/vaccines", vaccines.HandleCreate, secured, created)
		huma.Get(protected, "/api/vaccines/{id}", vaccines.HandleGet, secured)
		huma.Put(protected, "/api/vaccines/{id}", vaccines.HandleUpdate, secured)
		huma.Delete(protected, "/api/vaccines/{id}", vaccines.HandleDelete, secured)

		huma.Get(protected, "/api/locations", locations.HandleList, secured)
		huma.Post(protected, "/api/locations", locations.HandleCreate, secured, created)
		huma.Get(protected, "/api/locations/{id}", locations.HandleGet, secured)
		huma.Put(protected, "/api/locations/{id}", locations.HandleUpdate, secured)
		huma.Delete(protected, "/api/locations/{id}", locations.HandleDelete, secured)

		huma.Get(protected, "/api/sessions", sessions.HandleList, secured)
		huma.Post(protected, "/api/sessions", sessions.HandleCreate, secured, created)
		huma.Get(protected, "/api/sessions/{id}", sessions.HandleGet, secured)
		huma.Put(protected, "/api/sessions/{id}", sessions.HandleUpdate, secured)
		huma.Delete(protected, "/api/sessions/{id}", sessions.HandleDelete, secured)
		huma.Get(protected, "/api/sessions/{id}/history", sessions.HandleHistory, secured)

		huma.Post(protected, "/api/keys", apiKeys.HandleCreate, secured, created)
		huma.Get(protected, "/api/keys", apiKeys.HandleList, secured)
		huma.Delete(protected, "/api/keys/{id}", apiKeys.HandleDelete, secured)
	})
}

func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-KEY")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
