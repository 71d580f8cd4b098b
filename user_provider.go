package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UserProvider resolves credentials against the CredentialStore
type UserProvider struct {
	store  CredentialStore
	hasher PasswordHasher
	logger Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store CredentialStore, hasher PasswordHasher) *UserProvider {
	return &UserProvider{
		store:  store,
		hasher: hasher,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare to the password, and return
// identity. A missing user and a wrong password both yield
// ErrInvalidUsernameOrPassword.
func (u *UserProvider) VerifyIdentity(ctx context.Context, username, password string) (Identity, error) {
	user, err := u.store.FindByUsername(ctx, username)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to retrieve user during verification: %w", err)
	}

	if user == nil {
		// spend the same hashing effort as a real comparison
		u.hasher.Verify(password, u.randomPasswordHash())
		return Identity{}, ErrInvalidUsernameOrPassword
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return Identity{}, ErrInvalidUsernameOrPassword
	}

	return user.Identity(), nil
}

func (u *UserProvider) randomPasswordHash() string {
	u.dummyOnce.Do(func() {
		h, err := u.hasher.Hash(uuid.NewString())
		if err != nil {
			u.logger.Warn("user provider could not build placeholder hash", "error", err)
			return
		}
		u.dummyHash = h
	})
	return u.dummyHash
}
