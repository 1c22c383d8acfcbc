package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"charity/internal/config"
	"charity/internal/models"
	"charity/internal/repository"
)

type ChildHandler struct {
	children repository.ChildRepository
	s3Config *config.S3Config
}

func NewChildHandler(children repository.ChildRepository, s3Config *config.S3Config) *ChildHandler {
	return &ChildHandler{
		children: children,
		s3Config: s3Config,
	}
}

// @Tags Children
// @Summary List children available for sponsorship
// @Produce json
// @Param limit query int false "Max records (default 12)"
// @Param region query string false "Filter by region"
// @Success 200 {array} models.Child
// @Failure 500 {object} map[string]interface{}
// @Router /children/available [get]
func (h *ChildHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	limit := 12
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "limit must be between 1 and 100")
			return
		}
		limit = n
	}
	region := r.URL.Query().Get("region")

	children, err := h.children.ListAvailable(r.Context(), limit, region)
	if err != nil {
		log.Printf("Failed to list children: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_children_failed", "Failed to list children")
		return
	}

	if children == nil {
		children = []models.Child{}
	}

	writeJSON(w, http.StatusOK, children)
}

// @Tags Children
// @Summary List featured children
// @Produce json
// @Success 200 {array} models.Child
// @Failure 500 {object} map[string]interface{}
// @Router /children/featured [get]
func (h *ChildHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	children, err := h.children.ListFeatured(r.Context())
	if err != nil {
		log.Printf("Failed to list featured children: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "list_children_failed", "Failed to list children")
		return
	}

	if children == nil {
		children = []models.Child{}
	}

	writeJSON(w, http.StatusOK, children)
}

// @Tags Children
// @Summary Get a child by id
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} models.Child
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /children/{id} [get]
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid child ID")
		return
	}

	child, err := h.children.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "child_not_found", "Child not found")
			return
		}
		log.Printf("Failed to fetch child %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "get_child_failed", "Failed to fetch child")
		return
	}

	writeJSON(w, http.StatusOK, child)
}

// UploadPhoto stores a child's photo in S3 and records its public URL.
// @Tags Children
// @Summary Upload a child's photo
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Child ID"
// @Param photo formData file true "Photo file"
// @Success 200 {object} models.Child
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /children/{id}/photo [post]
func (h *ChildHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid child ID")
		return
	}

	if h.s3Config == nil || h.s3Config.Bucket == "" {
		writeJSONError(w, http.StatusServiceUnavailable, "storage_unavailable", "Photo storage is not configured")
		return
	}

	if _, err := h.children.GetByID(r.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "child_not_found", "Child not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_child_failed", "Failed to fetch child")
		return
	}

	const maxMemory = 10 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "photo file is required")
		return
	}
	defer file.Close()

	switch header.Header.Get("Content-Type") {
	case "image/jpeg", "image/png", "image/webp":
	default:
		writeJSONError(w, http.StatusBadRequest, "validation_error", "photo must be a jpeg, png or webp image")
		return
	}

	key := filepath.Join("children", id+filepath.Ext(header.Filename))

	uploader := manager.NewUploader(h.s3Config.Client)
	if _, err := uploader.Upload(r.Context(), &s3.PutObjectInput{
		Bucket: aws.String(h.s3Config.Bucket),
		Key:    aws.String(key),
		Body:   file,
	}); err != nil {
		log.Printf("Failed to upload photo for child %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to upload photo")
		return
	}

	photoURL := strings.TrimRight(h.s3Config.PublicBaseURL, "/") + "/" + key
	if err := h.children.UpdatePhotoURL(r.Context(), id, photoURL); err != nil {
		log.Printf("Failed to store photo URL for child %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to store photo URL")
		return
	}

	child, err := h.children.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "get_child_failed", "Failed to fetch child")
		return
	}

	writeJSON(w, http.StatusOK, child)
}
