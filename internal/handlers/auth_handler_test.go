package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"charity/internal/config"
	"charity/internal/services"
)

type noopMailer struct{}

func (n *noopMailer) Send(to string, subject string, body string) error { return nil }

const getByEmailQuery = `SELECT id, name, email, password_hash, created_at, updated_at\s+FROM users\s+WHERE LOWER\(email\) = LOWER\(\$1\)`

func newTestAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	tokens, err := services.NewTokenService("test-secret", 3600)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	cfg := &config.Config{AppBaseURL: "http://localhost:5173"}
	h := NewAuthHandler(db, cfg, tokens, &noopMailer{})
	return h, mock, func() { db.Close() }
}

func TestRegisterSuccess(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO users").WillReturnRows(
		sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()),
	)

	payload := map[string]any{"name": "Ann", "email": "a@x.com", "password": "secret1"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] == nil || resp["token"] == nil {
		t.Fatalf("expected _id and token, got %v", resp)
	}
	if resp["password"] != nil {
		t.Fatalf("password must not appear in the response: %v", resp)
	}
	if strings.Contains(w.Body.String(), "secret1") {
		t.Fatal("plaintext password leaked into the response")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	payload := map[string]any{"name": "Ann", "email": "a@x.com", "password": "secret1"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "User already exists" {
		t.Fatalf("expected duplicate message, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	hash, err := services.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	now := time.Now().UTC()
	mock.ExpectQuery(getByEmailQuery).WithArgs("a@x.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("u1", "Ann", "a@x.com", hash, now, now),
	)

	payload := map[string]any{"email": "a@x.com", "password": "secret1"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] == nil {
		t.Fatalf("expected token, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Wrong password and unknown email must be indistinguishable to the client.
func TestLoginFailuresAreUniform(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	hash, err := services.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	now := time.Now().UTC()
	mock.ExpectQuery(getByEmailQuery).WithArgs("a@x.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("u1", "Ann", "a@x.com", hash, now, now),
	)

	body, _ := json.Marshal(map[string]any{"email": "a@x.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(body))
	w1 := httptest.NewRecorder()
	h.Login(w1, req)

	mock.ExpectQuery(getByEmailQuery).WithArgs("ghost@x.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}),
	)

	body, _ = json.Marshal(map[string]any{"email": "ghost@x.com", "password": "secret1"})
	req = httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(body))
	w2 := httptest.NewRecorder()
	h.Login(w2, req)

	if w1.Code != http.StatusUnauthorized || w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Fatalf("responses must be identical: %q vs %q", w1.Body.String(), w2.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestForgotPasswordReturnsResetURL(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	now := time.Now().UTC()
	mock.ExpectQuery(getByEmailQuery).WithArgs("a@x.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("u1", "Ann", "a@x.com", "hash", now, now),
	)
	mock.ExpectQuery("INSERT INTO password_reset_tokens").WillReturnRows(
		sqlmock.NewRows([]string{"created_at"}).AddRow(now),
	)

	payload := map[string]any{"email": "a@x.com"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/users/forgot-password", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.ForgotPassword(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	resetURL, _ := resp["resetUrl"].(string)
	if !strings.HasPrefix(resetURL, "http://localhost:5173/reset-password/") {
		t.Fatalf("expected reset url, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery(getByEmailQuery).WithArgs("ghost@x.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}),
	)

	payload := map[string]any{"email": "ghost@x.com"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/users/forgot-password", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.ForgotPassword(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func resetRequest(t *testing.T, rawToken string, newPassword string) *http.Request {
	t.Helper()

	payload := map[string]any{"newPassword": newPassword}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/users/reset-password/"+rawToken, bytes.NewReader(b))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("token", rawToken)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestResetPasswordSuccess(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	rawToken := "abcd"
	tokenHash := services.HashResetToken(rawToken)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, user_id, token_hash, expires_at, used_at, created_at\s+FROM password_reset_tokens`).
		WithArgs(tokenHash).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "used_at", "created_at"}).
			AddRow("t1", "u1", tokenHash, now.Add(10*time.Minute), nil, now))

	mock.ExpectExec("UPDATE users SET password_hash").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE password_reset_tokens SET used_at").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE password_reset_tokens SET used_at").WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	h.ResetPassword(w, resetRequest(t, rawToken, "newpassword1"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	h, mock, closeDB := newTestAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT id, user_id, token_hash, expires_at, used_at, created_at\s+FROM password_reset_tokens`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "used_at", "created_at"}))

	w := httptest.NewRecorder()
	h.ResetPassword(w, resetRequest(t, "spent-or-bogus", "newpassword1"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
