package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"charity/internal/models"
	"charity/internal/repository"
)

func newTestNewsletterHandler(t *testing.T) (*NewsletterHandler, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	h := NewNewsletterHandler(repository.NewNewsletterRepository(db))
	return h, mock, func() { db.Close() }
}

func TestSubscribeSuccess(t *testing.T) {
	h, mock, closeDB := newTestNewsletterHandler(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO newsletter_subscribers").WillReturnRows(
		sqlmock.NewRows([]string{"id", "created_at"}).AddRow("s1", time.Now().UTC()),
	)

	payload := map[string]any{"email": "A@X.com", "firstName": "Ann", "preferences": []string{"monthly"}}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Subscribe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSubscribeInvalidEmail(t *testing.T) {
	h, mock, closeDB := newTestNewsletterHandler(t)
	defer closeDB()

	payload := map[string]any{"email": "not-an-email"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Subscribe(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUnsubscribeSuccess(t *testing.T) {
	h, mock, closeDB := newTestNewsletterHandler(t)
	defer closeDB()

	mock.ExpectExec("UPDATE newsletter_subscribers SET subscribed = false").
		WithArgs("a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	payload := map[string]any{"email": "a@x.com"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/newsletter/unsubscribe", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Unsubscribe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	h, mock, closeDB := newTestNewsletterHandler(t)
	defer closeDB()

	mock.ExpectExec("UPDATE newsletter_subscribers SET subscribed = false").
		WithArgs("ghost@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	payload := map[string]any{"email": "ghost@x.com"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/newsletter/unsubscribe", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Unsubscribe(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNewsletterStats(t *testing.T) {
	h, mock, closeDB := newTestNewsletterHandler(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM newsletter_subscribers WHERE subscribed = true`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	req := httptest.NewRequest(http.MethodGet, "/newsletter/stats", nil)
	w := httptest.NewRecorder()
	h.GetStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var stats models.NewsletterStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if stats.ActiveSubscribers != 42 {
		t.Fatalf("expected 42 subscribers, got %+v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
