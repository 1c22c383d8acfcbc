package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"charity/internal/handlers"
	"charity/internal/repository"
)

func RegisterNewsletterRoutes(router chi.Router, db *sql.DB) {
	newsletterHandler := handlers.NewNewsletterHandler(repository.NewNewsletterRepository(db))

	router.Route("/newsletter", func(r chi.Router) {
		r.Post("/subscribe", newsletterHandler.Subscribe)
		r.Post("/unsubscribe", newsletterHandler.Unsubscribe)
		r.Get("/stats", newsletterHandler.GetStats)
	})
}
