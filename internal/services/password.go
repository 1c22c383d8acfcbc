package services

import "golang.org/x/crypto/bcrypt"

// HashPassword and VerifyPassword are the only places credentials touch
// bcrypt. Hashing happens at the call sites that change a password, never
// implicitly on save.

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
