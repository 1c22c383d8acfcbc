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

// RegisterUserRoutes wires /api/users: registration, login, password reset
// and the bearer-protected profile pair.
func RegisterUserRoutes(router chi.Router, db *sql.DB, cfg *config.Config, tokens *services.TokenService) {
	var mailer services.EmailSender
	if cfg.SMTPHost != "" {
		mailer = &services.SMTPSender{
			Host:   cfg.SMTPHost,
			Port:   cfg.SMTPPort,
			User:   cfg.SMTPUser,
			Pass:   cfg.SMTPPassword,
			From:   cfg.SMTPFrom,
			UseTLS: cfg.SMTPUseTLS,
		}
	} else {
		mailer = &services.LogSender{}
	}

	userRepo := repository.NewUserRepository(db)
	authHandler := handlers.NewAuthHandler(db, cfg, tokens, mailer)
	profileHandler := handlers.NewProfileHandler(userRepo, tokens)

	router.Route("/api/users", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password/{token}", authHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens, userRepo))
			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
		})
	})
}
