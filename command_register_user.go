package auth

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MaxPasswordBytes is the longest password bcrypt will hash
const MaxPasswordBytes = 72

// RegisterUserMessage is the registration input
type RegisterUserMessage struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate requires every field to be present and not blank. The
// password is also capped at MaxPasswordBytes.
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Username, validation.Required, validation.By(notBlank)),
		validation.Field(&e.Email, validation.Required, validation.By(notBlank)),
		validation.Field(&e.Password, validation.Required, validation.By(notBlank), validation.By(maxBytes(MaxPasswordBytes))),
	)
}

// LoginMessage is the login input
type LoginMessage struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (e LoginMessage) Type() string { return "user.login" }

// Validate requires a non blank username, the password is checked by
// the credential comparison.
func (e LoginMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Username, validation.Required, validation.By(notBlank)),
	)
}

// maxBytes differs from validation.Length, which counts runes
func maxBytes(limit int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if len(s) > limit {
			return fmt.Errorf("must be at most %d bytes", limit)
		}
		return nil
	}
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}
