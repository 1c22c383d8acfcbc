package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"charity/internal/config"
	"charity/internal/handlers"
	"charity/internal/middleware"
	"charity/internal/repository"
	"charity/internal/services"
)

func RegisterChildRoutes(router chi.Router, db *sql.DB, tokens *services.TokenService, s3Config *config.S3Config) {
	childRepo := repository.NewChildRepository(db)
	userRepo := repository.NewUserRepository(db)
	childHandler := handlers.NewChildHandler(childRepo, s3Config)

	router.Route("/children", func(r chi.Router) {
		r.Get("/available", childHandler.ListAvailable)
		r.Get("/featured", childHandler.ListFeatured)
		r.Get("/{id}", childHandler.GetChild)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens, userRepo))
			r.Post("/{id}/photo", childHandler.UploadPhoto)
		})
	})
}
