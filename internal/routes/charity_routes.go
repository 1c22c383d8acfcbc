package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"charity/internal/handlers"
	"charity/internal/middleware"
	"charity/internal/repository"
	"charity/internal/services"
)

// RegisterCharityRoutes wires donations and sponsorships.
func RegisterCharityRoutes(router chi.Router, db *sql.DB, tokens *services.TokenService) {
	donationRepo := repository.NewDonationRepository(db)
	sponsorshipRepo := repository.NewSponsorshipRepository(db)
	childRepo := repository.NewChildRepository(db)
	userRepo := repository.NewUserRepository(db)

	donationHandler := handlers.NewDonationHandler(donationRepo, sponsorshipRepo)
	sponsorshipHandler := handlers.NewSponsorshipHandler(sponsorshipRepo, childRepo)

	router.Route("/donations", func(r chi.Router) {
		r.Post("/", donationHandler.CreateDonation)
		r.Get("/impact-stats", donationHandler.GetImpactStats)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens, userRepo))
			r.Get("/history", donationHandler.GetHistory)
		})
	})

	router.Post("/sponsorships", sponsorshipHandler.CreateSponsorship)
	router.Get("/sponsorship/stats", sponsorshipHandler.GetStats)
}
