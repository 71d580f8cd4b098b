package auth

import (
	"context"
	"fmt"
	"strings"
)

// Auther implements registration and login
type Auther struct {
	store        CredentialStore
	hasher       PasswordHasher
	tokenService *TokenService
	provider     *UserProvider
	logger       Logger
	activity     *ActivityEmitter
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store CredentialStore, hasher PasswordHasher, tokens *TokenService) *Auther {
	logger := Logger(defLogger{})
	return &Auther{
		store:        store,
		hasher:       hasher,
		tokenService: tokens,
		provider:     NewUserProvider(store, hasher).WithLogger(logger),
		logger:       logger,
		activity:     NewActivityEmitter(nil, logger),
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger == nil {
		return s
	}
	s.logger = logger
	s.provider.WithLogger(logger)
	s.activity.logger = logger
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activity.sink = normalizeActivitySink(sink)
	return s
}

// WithActivityEmitter replaces the emitter, mostly useful in tests.
func (s *Auther) WithActivityEmitter(emitter *ActivityEmitter) *Auther {
	if emitter != nil {
		s.activity = emitter
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() *TokenService {
	return s.tokenService
}

// CreateUser validates msg, hashes the password and stores the user.
// The audit entry is written in the background.
func (s *Auther) CreateUser(ctx context.Context, msg RegisterUserMessage) (bool, error) {
	if err := msg.Validate(); err != nil {
		s.logger.Debug("CreateUser invalid input", "error", err)
		return false, fmt.Errorf("%w: %w", ErrUserInputValidation, err)
	}

	hash, err := s.hasher.Hash(msg.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.Create(ctx, &User{
		Username:     strings.TrimSpace(msg.Username),
		Email:        strings.TrimSpace(msg.Email),
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Error("CreateUser store error", "error", err)
		return false, err
	}

	userID := ""
	if created != nil {
		userID = created.Identity().ID
	}

	s.activity.Emit(ctx, ActivityEvent{
		EventType: ActivityEventUserCreated,
		Message:   "Created new User",
		UserID:    userID,
	})

	return created != nil, nil
}

// Authenticate verifies the credentials and returns a signed token
func (s *Auther) Authenticate(ctx context.Context, username, password string) (string, error) {
	if err := (LoginMessage{Username: username, Password: password}).Validate(); err != nil {
		return "", ErrInvalidUsername
	}

	identity, err := s.provider.VerifyIdentity(ctx, username, password)
	if err != nil {
		s.logger.Debug("Authenticate verify identity error", "error", err)
		return "", err
	}

	token, err := s.tokenService.Issue(identity)
	if err != nil {
		s.logger.Error("Authenticate failed to issue token", "error", err)
		return "", err
	}

	s.activity.Emit(ctx, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		Message:   fmt.Sprintf("User %s authenticated", identity.Username),
		UserID:    identity.ID,
	})

	return token, nil
}

// GetIdentity resolves the identity carried by token
func (s *Auther) GetIdentity(token string) (Identity, error) {
	return s.tokenService.GetIdentity(token)
}
