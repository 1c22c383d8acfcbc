package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"charity/internal/models"
	"charity/internal/repository"
)

type SponsorshipHandler struct {
	sponsorships repository.SponsorshipRepository
	children     repository.ChildRepository
	v            *validator.Validate
}

func NewSponsorshipHandler(sponsorships repository.SponsorshipRepository, children repository.ChildRepository) *SponsorshipHandler {
	return &SponsorshipHandler{
		sponsorships: sponsorships,
		children:     children,
		v:            validator.New(),
	}
}

// @Tags Sponsorships
// @Summary Create a child sponsorship
// @Accept json
// @Produce json
// @Param body body models.CreateSponsorshipRequest true "Sponsorship"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /sponsorships [post]
func (h *SponsorshipHandler) CreateSponsorship(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSponsorshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	// childId is optional; when given it must point at a real child
	var childID *string
	if req.ChildID != "" {
		if _, err := uuid.Parse(req.ChildID); err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "childId must be a valid id")
			return
		}
		if _, err := h.children.GetByID(r.Context(), req.ChildID); err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusBadRequest, "invalid_child_id", "Child not found")
				return
			}
			log.Printf("Failed to look up child %s: %v", req.ChildID, err)
			writeJSONError(w, http.StatusInternalServerError, "create_sponsorship_failed", "Failed to create sponsorship")
			return
		}
		childID = &req.ChildID
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	sponsorship := &models.Sponsorship{
		ID:            uuid.NewString(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		MonthlyAmount: req.MonthlyAmount,
		Currency:      currency,
		PaymentMethod: req.PaymentMethod,
		ChildID:       childID,
		IsCompleted:   true, // payment is simulated
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.sponsorships.Create(r.Context(), sponsorship); err != nil {
		log.Printf("Failed to create sponsorship: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "create_sponsorship_failed", "Failed to create sponsorship")
		return
	}

	if childID != nil {
		if err := h.children.MarkSponsored(r.Context(), *childID); err != nil {
			log.Printf("Failed to mark child %s sponsored: %v", *childID, err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":       "Sponsorship created successfully!",
		"sponsorshipId": sponsorship.ID,
		"monthlyAmount": sponsorship.MonthlyAmount,
		"sponsorEmail":  sponsorship.Email,
	})
}

// @Tags Sponsorships
// @Summary Sponsorship statistics
// @Produce json
// @Success 200 {object} models.SponsorshipStats
// @Failure 500 {object} map[string]interface{}
// @Router /sponsorship/stats [get]
func (h *SponsorshipHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sponsorships.Stats(r.Context())
	if err != nil {
		log.Printf("Failed to fetch sponsorship stats: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "stats_failed", "Failed to fetch sponsorship stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
