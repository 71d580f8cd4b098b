package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-auth-api"
)

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &auth.User{ID: userID, Username: "alice", PasswordHash: "stored-hash"}

	tests := []struct {
		name      string
		setup     func(store *MockCredentialStore, hasher *MockHasher)
		want      auth.Identity
		wantErr   error
		errString string
	}{
		{
			name: "valid credentials",
			setup: func(store *MockCredentialStore, hasher *MockHasher) {
				store.On("FindByUsername", ctx, "alice").Return(user, nil)
				hasher.On("Verify", "p123", "stored-hash").Return(true)
			},
			want: auth.Identity{ID: userID.String(), Username: "alice"},
		},
		{
			name: "wrong password",
			setup: func(store *MockCredentialStore, hasher *MockHasher) {
				store.On("FindByUsername", ctx, "alice").Return(user, nil)
				hasher.On("Verify", "p123", "stored-hash").Return(false)
			},
			wantErr: auth.ErrInvalidUsernameOrPassword,
		},
		{
			name: "unknown user still runs a comparison",
			setup: func(store *MockCredentialStore, hasher *MockHasher) {
				store.On("FindByUsername", ctx, "alice").Return(nil, nil)
				hasher.On("Hash", mock.AnythingOfType("string")).Return("placeholder", nil).Once()
				hasher.On("Verify", "p123", "placeholder").Return(false).Once()
			},
			wantErr: auth.ErrInvalidUsernameOrPassword,
		},
		{
			name: "store failure",
			setup: func(store *MockCredentialStore, hasher *MockHasher) {
				store.On("FindByUsername", ctx, "alice").Return(nil, errors.New("db down"))
			},
			errString: "failed to retrieve user during verification: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockCredentialStore)
			hasher := new(MockHasher)
			tt.setup(store, hasher)

			provider := auth.NewUserProvider(store, hasher).WithLogger(&MockLogger{})
			identity, err := provider.VerifyIdentity(ctx, "alice", "p123")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, identity.IsZero())
			case tt.errString != "":
				assert.EqualError(t, err, tt.errString)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, identity)
			}

			store.AssertExpectations(t)
			hasher.AssertExpectations(t)
		})
	}
}

func TestUserProviderPlaceholderHashIsReused(t *testing.T) {
	ctx := context.Background()
	store := new(MockCredentialStore)
	hasher := new(MockHasher)

	store.On("FindByUsername", ctx, "ghost").Return(nil, nil)
	hasher.On("Hash", mock.AnythingOfType("string")).Return("placeholder", nil).Once()
	hasher.On("Verify", "p123", "placeholder").Return(false).Twice()

	provider := auth.NewUserProvider(store, hasher)
	for i := 0; i < 2; i++ {
		_, err := provider.VerifyIdentity(ctx, "ghost", "p123")
		assert.ErrorIs(t, err, auth.ErrInvalidUsernameOrPassword)
	}

	hasher.AssertNumberOfCalls(t, "Hash", 1)
}
