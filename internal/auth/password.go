package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = bcrypt.DefaultCost

// dummyHash is a valid bcrypt hash of a random string. It is compared
// against when no account matches a login email so that the request takes
// the same time as a real password check.
var dummyHash = func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("timing-levelling-placeholder"), defaultBcryptCost)
	if err != nil {
		panic(err)
	}
	return hash
}()

// HashPassword hashes a plaintext password.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), defaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a candidate against the stored hash. The underlying
// bcrypt comparison is constant time.
func VerifyPassword(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("stored password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
}

// BurnPasswordCheck performs a throwaway comparison for unknown accounts so
// that "no such user" and "wrong password" are not distinguishable by
// response time.
func BurnPasswordCheck(candidate string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(candidate))
}
