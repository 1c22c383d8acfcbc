package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every session-token verification failure.
// Callers must not tell the client whether the token was malformed,
// expired or badly signed.
var ErrInvalidToken = errors.New("invalid token")

const ResetTokenTTL = time.Hour

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
}

func NewTokenService(secret string, expiresInSeconds int64) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	if expiresInSeconds <= 0 {
		expiresInSeconds = 3600
	}
	return &TokenService{
		secret:    []byte(secret),
		expiresIn: time.Duration(expiresInSeconds) * time.Second,
	}, nil
}

func (s *TokenService) IssueSessionToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifySessionToken returns the user id carried by a valid token.
func (s *TokenService) VerifySessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || token == nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// IssueResetToken generates a one-time password-reset token. The plaintext
// goes to the user, only the sha256 hash is persisted.
func IssueResetToken() (rawToken string, tokenHash string, expiresAt time.Time, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	rawToken = hex.EncodeToString(b)
	tokenHash = HashResetToken(rawToken)
	expiresAt = time.Now().UTC().Add(ResetTokenTTL)
	return rawToken, tokenHash, expiresAt, nil
}

func HashResetToken(rawToken string) string {
	h := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(h[:])
}

// VerifyResetToken checks a supplied plaintext against the stored hash and
// expiry.
func VerifyResetToken(rawToken string, storedHash string, expiresAt time.Time) bool {
	if time.Now().UTC().After(expiresAt) {
		return false
	}
	return HashResetToken(rawToken) == storedHash
}
