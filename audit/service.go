package audit

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// CreateMessage is the input of Service.Create
type CreateMessage struct {
	Message string `json:"message"`
}

func (m CreateMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Message, validation.Required, validation.Length(1, 1000)),
	)
}

// Service is the audit log API used by the rest of the application
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and stores message
func (s *Service) Create(ctx context.Context, message string) (*Entry, error) {
	msg := CreateMessage{Message: strings.TrimSpace(message)}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuditInputValidation, err)
	}
	return s.store.Create(ctx, &Entry{Message: msg.Message})
}

func (s *Service) FindAll(ctx context.Context) ([]*Entry, error) {
	return s.store.FindAll(ctx)
}

// FindByID returns (nil, nil) when the id is valid but unknown
func (s *Service) FindByID(ctx context.Context, id int64) (*Entry, error) {
	if id <= 0 {
		return nil, ErrInvalidAuditID
	}
	return s.store.FindByID(ctx, id)
}
