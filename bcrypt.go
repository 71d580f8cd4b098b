package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt work factor used when none is configured
const DefaultPasswordCost = 10

// BcryptHasher implements PasswordHasher with a fixed work factor
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or DefaultPasswordCost
// when cost is outside the range bcrypt accepts.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the configured work factor
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash generates a salted hash of plaintext
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	return hashPassword(plaintext, h.cost)
}

// Verify reports whether plaintext matches hashed. Malformed hashes
// never match.
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return ComparePasswordAndHash(plaintext, hashed) == nil
}

// HashPassword will generate a password hash with DefaultPasswordCost
func HashPassword(password string) (string, error) {
	return hashPassword(password, DefaultPasswordCost)
}

func hashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
