package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"charity/internal/models"
	"charity/internal/repository"
)

type NewsletterHandler struct {
	subscribers repository.NewsletterRepository
	v           *validator.Validate
}

func NewNewsletterHandler(subscribers repository.NewsletterRepository) *NewsletterHandler {
	return &NewsletterHandler{
		subscribers: subscribers,
		v:           validator.New(),
	}
}

// @Tags Newsletter
// @Summary Subscribe to the newsletter
// @Accept json
// @Produce json
// @Param body body models.SubscribeRequest true "Subscription"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	sub := &models.NewsletterSubscriber{
		ID:          uuid.NewString(),
		Email:       strings.ToLower(req.Email),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Preferences: req.Preferences,
		Subscribed:  true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.subscribers.Upsert(r.Context(), sub); err != nil {
		log.Printf("Failed to subscribe %s: %v", sub.Email, err)
		writeJSONError(w, http.StatusInternalServerError, "subscribe_failed", "Failed to subscribe")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Subscribed to newsletter")
}

// @Tags Newsletter
// @Summary Unsubscribe from the newsletter
// @Accept json
// @Produce json
// @Param body body models.UnsubscribeRequest true "Unsubscription"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.subscribers.Unsubscribe(r.Context(), req.Email); err != nil {
		if err.Error() == "subscriber not found" {
			writeJSONError(w, http.StatusNotFound, "subscriber_not_found", "Subscriber not found")
			return
		}
		log.Printf("Failed to unsubscribe %s: %v", req.Email, err)
		writeJSONError(w, http.StatusInternalServerError, "unsubscribe_failed", "Failed to unsubscribe")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Unsubscribed from newsletter")
}

// @Tags Newsletter
// @Summary Newsletter statistics
// @Produce json
// @Success 200 {object} models.NewsletterStats
// @Failure 500 {object} map[string]interface{}
// @Router /newsletter/stats [get]
func (h *NewsletterHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	total, err := h.subscribers.CountActive(r.Context())
	if err != nil {
		log.Printf("Failed to count subscribers: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "stats_failed", "Failed to fetch newsletter stats")
		return
	}

	writeJSON(w, http.StatusOK, models.NewsletterStats{ActiveSubscribers: total})
}
