package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"charity/internal/middleware"
	"charity/internal/models"
	"charity/internal/repository"
	"charity/internal/services"
)

type ProfileHandler struct {
	users  repository.UserRepository
	tokens *services.TokenService
	v      *validator.Validate
}

func NewProfileHandler(users repository.UserRepository, tokens *services.TokenService) *ProfileHandler {
	return &ProfileHandler{
		users:  users,
		tokens: tokens,
		v:      validator.New(),
	}
}

// @Tags Users
// @Summary Get the authenticated user's profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.PublicView
// @Failure 401 {object} map[string]interface{}
// @Router /api/users/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}

	writeJSON(w, http.StatusOK, u.Public())
}

// @Tags Users
// @Summary Update the authenticated user's profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.UpdateProfileRequest true "Profile update"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/users/profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		req.Email = &lowered
	}

	if req.Name != nil || req.Email != nil {
		if err := h.users.UpdateProfile(r.Context(), u.ID, req.Name, req.Email); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to update profile")
			return
		}
	}

	// Password change goes through the explicit hash path
	if req.Password != nil {
		hash, err := services.HashPassword(*req.Password)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to update profile")
			return
		}
		if err := h.users.UpdatePasswordHash(r.Context(), u.ID, hash); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to update profile")
			return
		}
	}

	updated, err := h.users.GetByID(r.Context(), u.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to fetch updated profile")
		return
	}

	// A fresh token is issued so the client session reflects the update
	token, err := h.tokens.IssueSessionToken(updated.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{
		ID:    updated.ID,
		Name:  updated.Name,
		Email: updated.Email,
		Token: token,
	})
}
