package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"charity/internal/repository"
)

func newTestSponsorshipHandler(t *testing.T) (*SponsorshipHandler, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	h := NewSponsorshipHandler(repository.NewSponsorshipRepository(db), repository.NewChildRepository(db))
	return h, mock, func() { db.Close() }
}

func TestCreateSponsorshipWithChild(t *testing.T) {
	h, mock, closeDB := newTestSponsorshipHandler(t)
	defer closeDB()

	childID := "8b6a1e60-54f2-4e53-9a6f-3b6cb1a2d001"
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM children WHERE id = \$1`).WithArgs(childID).WillReturnRows(
		sqlmock.NewRows([]string{
			"id", "name", "age", "country", "region", "photo_url", "story",
			"needs", "is_sponsored", "featured", "created_at",
		}).AddRow(childID, "Maria", 8, "Kenya", "Africa", "", "", "{}", false, true, now),
	)
	mock.ExpectQuery("INSERT INTO sponsorships").WillReturnRows(
		sqlmock.NewRows([]string{"created_at"}).AddRow(now),
	)
	mock.ExpectExec("UPDATE children SET is_sponsored = true").
		WithArgs(childID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	payload := map[string]any{
		"firstName":     "Ann",
		"lastName":      "Lee",
		"email":         "a@x.com",
		"monthlyAmount": 35,
		"paymentMethod": "card",
		"childId":       childID,
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/sponsorships", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.CreateSponsorship(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["sponsorshipId"] == nil || resp["sponsorEmail"] != "a@x.com" {
		t.Fatalf("unexpected response: %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateSponsorshipMissingAmount(t *testing.T) {
	h, mock, closeDB := newTestSponsorshipHandler(t)
	defer closeDB()

	payload := map[string]any{
		"firstName":     "Ann",
		"lastName":      "Lee",
		"email":         "a@x.com",
		"paymentMethod": "card",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/sponsorships", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.CreateSponsorship(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateSponsorshipUnknownChild(t *testing.T) {
	h, mock, closeDB := newTestSponsorshipHandler(t)
	defer closeDB()

	childID := "8b6a1e60-54f2-4e53-9a6f-3b6cb1a2dfff"
	mock.ExpectQuery(`FROM children WHERE id = \$1`).WithArgs(childID).WillReturnRows(
		sqlmock.NewRows([]string{
			"id", "name", "age", "country", "region", "photo_url", "story",
			"needs", "is_sponsored", "featured", "created_at",
		}),
	)

	payload := map[string]any{
		"firstName":     "Ann",
		"lastName":      "Lee",
		"email":         "a@x.com",
		"monthlyAmount": 35,
		"paymentMethod": "card",
		"childId":       childID,
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/sponsorships", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.CreateSponsorship(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
