// internal/routes/routes.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"charity/internal/config"
	"charity/internal/services"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config) *chi.Mux {
	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresInSeconds)
	if err != nil {
		log.Fatalf("Failed to configure token service: %v", err)
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "API is running"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		type dbStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}
		resp := struct {
			Status string   `json:"status"`
			DB     dbStatus `json:"db"`
		}{Status: "ok", DB: dbStatus{Status: "ok"}}

		if err := db.PingContext(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.DB.Status = "down"
			resp.DB.Error = err.Error()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(resp)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	RegisterUserRoutes(r, db, cfg, tokens)
	RegisterCharityRoutes(r, db, tokens)
	RegisterChildRoutes(r, db, tokens, s3Config)
	RegisterNewsletterRoutes(r, db)
	RegisterSwaggerRoutes(r)

	return r
}
