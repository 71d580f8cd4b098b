package auth

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUserInputValidation is returned when registration input is missing or blank
var ErrUserInputValidation = errors.New("UserInputValidationError")

// ErrInvalidUsername is returned when login is attempted with a blank username
var ErrInvalidUsername = errors.New("InvalidUsernameError")

// ErrInvalidUsernameOrPassword is the only error a failed login reports.
// Unknown usernames and wrong passwords are indistinguishable.
var ErrInvalidUsernameOrPassword = errors.New("InvalidUsernameOrPasswordError")

// ErrUserAlreadyExists is returned when username or email are taken
var ErrUserAlreadyExists = errors.New("UserAlreadyExistsError")

// ErrInvalidToken is the uniform token verification failure
var ErrInvalidToken = errors.New("InvalidTokenError")

// ErrTokenExpired the token exp claim is in the past
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed the token could not be parsed
var ErrTokenMalformed = errors.New("token is malformed")

// ErrTokenSignature the signature or algorithm did not match
var ErrTokenSignature = errors.New("token signature is invalid")

// ErrNoEmptyString empty strings can not be hashed
var ErrNoEmptyString = errors.New("empty string not allowed")

// ErrMismatchedHashAndPassword the password does not match the stored hash
var ErrMismatchedHashAndPassword = errors.New("password does not match")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// IsMalformedError will check for tokens we could not parse
func IsMalformedError(err error) bool {
	return errors.Is(err, ErrTokenMalformed)
}

// IsDuplicateKeyError reports whether err is a unique constraint violation
// from either postgres or sqlite.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
