package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"charity/internal/config"
	"charity/internal/models"
	"charity/internal/repository"
	"charity/internal/services"
)

type AuthHandler struct {
	users  repository.UserRepository
	resets repository.PasswordResetRepository
	tokens *services.TokenService
	mailer services.EmailSender
	cfg    *config.Config
	v      *validator.Validate
}

func NewAuthHandler(db *sql.DB, cfg *config.Config, tokens *services.TokenService, mailer services.EmailSender) *AuthHandler {
	return &AuthHandler{
		users:  repository.NewUserRepository(db),
		resets: repository.NewPasswordResetRepository(db),
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		v:      validator.New(),
	}
}

// @Tags Users
// @Summary Register a new user
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/users/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "register_failed", "Failed to create user")
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusBadRequest, "duplicate_email", "User already exists")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "register_failed", "Failed to create user")
		return
	}

	// Register mints a token, same as login
	token, err := h.tokens.IssueSessionToken(u.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "register_failed", "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Token: token,
	})
}

// @Tags Users
// @Summary Authenticate user and get token
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	// Unknown email and wrong password must be indistinguishable
	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	if !services.VerifyPassword(u.PasswordHash, req.Password) {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := h.tokens.IssueSessionToken(u.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "login_failed", "Failed to login")
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Token: token,
	})
}

// @Tags Users
// @Summary Request a password reset
// @Accept json
// @Produce json
// @Param body body models.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}

	rawToken, tokenHash, expiresAt, err := services.IssueResetToken()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to issue reset token")
		return
	}

	prt := &models.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.resets.Create(r.Context(), prt); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to issue reset token")
		return
	}

	resetURL := strings.TrimRight(h.cfg.AppBaseURL, "/") + "/reset-password/" + rawToken

	subject := "Reset your password"
	body := "Follow this link to reset your password:\n\n" + resetURL + "\n\nThe link expires in 1 hour."
	if err := h.mailer.Send(u.Email, subject, body); err != nil {
		log.Printf("Failed to send reset email to %s: %v", u.Email, err)
	}

	// The reset URL is surfaced to the caller because there is no real
	// email delivery in this deployment.
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Password reset link generated",
		"resetUrl": resetURL,
	})
}

// @Tags Users
// @Summary Reset password with a one-time token
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param body body models.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/users/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	rawToken := chi.URLParam(r, "token")
	if rawToken == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_token", "Invalid or expired token")
		return
	}

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	token, err := h.resets.GetValidByTokenHash(r.Context(), services.HashResetToken(rawToken))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_token", "Invalid or expired token")
		return
	}

	hash, err := services.HashPassword(req.NewPassword)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	if err := h.users.UpdatePasswordHash(r.Context(), token.UserID, hash); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	// Spend this token and any other outstanding one for the user
	now := time.Now().UTC()
	if err := h.resets.MarkUsed(r.Context(), token.ID, now); err != nil {
		log.Printf("Failed to mark reset token used: %v", err)
	}
	if err := h.resets.InvalidateForUser(r.Context(), token.UserID, now); err != nil {
		log.Printf("Failed to invalidate reset tokens for user %s: %v", token.UserID, err)
	}

	writeJSONMessage(w, http.StatusOK, "Password reset successful")
}
