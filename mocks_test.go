package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	auth "github.com/goliatone/go-auth-api"
)

// MockCredentialStore implements auth.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*auth.User)
	return created, args.Error(1)
}

func (m *MockCredentialStore) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

// MockHasher implements auth.PasswordHasher
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Verify(plaintext, hashed string) bool {
	args := m.Called(plaintext, hashed)
	return args.Bool(0)
}

// MockLogger implements auth.Logger, accepting any call
type MockLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *MockLogger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, level+" "+msg)
}

func (m *MockLogger) Debug(msg string, _ ...any) { m.record("DBG", msg) }
func (m *MockLogger) Info(msg string, _ ...any)  { m.record("INF", msg) }
func (m *MockLogger) Warn(msg string, _ ...any)  { m.record("WRN", msg) }
func (m *MockLogger) Error(msg string, _ ...any) { m.record("ERR", msg) }

func (m *MockLogger) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}

// capturingSink forwards every event on a channel
type capturingSink struct {
	events chan auth.ActivityEvent
	err    error
}

func newCapturingSink() *capturingSink {
	return &capturingSink{events: make(chan auth.ActivityEvent, 16)}
}

func (c *capturingSink) Record(_ context.Context, evt auth.ActivityEvent) error {
	c.events <- evt
	return c.err
}

func (c *capturingSink) next(t *testing.T) auth.ActivityEvent {
	t.Helper()
	select {
	case evt := <-c.events:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity event")
		return auth.ActivityEvent{}
	}
}

func (c *capturingSink) none(t *testing.T) {
	t.Helper()
	select {
	case evt := <-c.events:
		t.Fatalf("unexpected activity event %q", evt.Message)
	case <-time.After(50 * time.Millisecond):
	}
}
