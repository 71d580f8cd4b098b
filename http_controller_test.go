package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	auth "github.com/goliatone/go-auth-api"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) CreateUser(ctx context.Context, msg auth.RegisterUserMessage) (bool, error) {
	args := m.Called(ctx, msg)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func newControllerApp(a auth.Authenticator, protected fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: auth.NewErrorHandler(&MockLogger{}, false)})
	auth.RegisterAuthRoutes(app, protected,
		auth.WithAuthenticator(a),
		auth.WithControllerLogger(&MockLogger{}),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "created",
			body:       `{"username":"alice","email":"alice@example.com","password":"p123"}`,
			wantStatus: fiber.StatusCreated,
			wantBody:   map[string]any{"message": "User registered successfully"},
		},
		{
			name:       "validation",
			body:       `{"username":"alice"}`,
			result:     auth.ErrUserInputValidation,
			wantStatus: fiber.StatusBadRequest,
			wantBody:   map[string]any{"error": "UserInputValidationError"},
		},
		{
			name:       "duplicate",
			body:       `{"username":"alice","email":"alice@example.com","password":"p123"}`,
			result:     auth.ErrUserAlreadyExists,
			wantStatus: fiber.StatusConflict,
			wantBody:   map[string]any{"error": "UserAlreadyExistsError"},
		},
		{
			name:       "store failure is not leaked",
			body:       `{"username":"alice","email":"alice@example.com","password":"p123"}`,
			result:     errors.New("pq: relation users does not exist"),
			wantStatus: fiber.StatusInternalServerError,
			wantBody:   map[string]any{"error": "InternalServerError"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := new(MockAuthenticator)
			a.On("CreateUser", mock.Anything, mock.AnythingOfType("auth.RegisterUserMessage")).
				Return(tt.result == nil, tt.result)

			status, body := doJSON(t, newControllerApp(a, nil), fiber.MethodPost, "/register", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestAuthController_RegisterPasswordLength(t *testing.T) {
	store := new(MockCredentialStore)
	store.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).
		Return(&auth.User{Username: "alice"}, nil)
	auther := newTestAuther(store, auth.NewBcryptHasher(bcrypt.MinCost), newCapturingSink())
	app := newControllerApp(auther, nil)

	register := func(password string) (int, map[string]any) {
		payload, err := json.Marshal(auth.RegisterUserMessage{
			Username: "alice",
			Email:    "alice@example.com",
			Password: password,
		})
		require.NoError(t, err)
		return doJSON(t, app, fiber.MethodPost, "/register", string(payload))
	}

	status, body := register(strings.Repeat("p", 73))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "UserInputValidationError", body["error"])
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	status, body = register(strings.Repeat("p", 72))
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "User registered successfully", body["message"])
	store.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuthController_RegisterMalformedBody(t *testing.T) {
	a := new(MockAuthenticator)

	status, body := doJSON(t, newControllerApp(a, nil), fiber.MethodPost, "/register", `{"username":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "UserInputValidationError", body["error"])
	a.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		result     error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "success",
			token:      "signed.jwt.token",
			wantStatus: fiber.StatusOK,
			wantBody:   map[string]any{"token": "signed.jwt.token"},
		},
		{
			name:       "blank username",
			result:     auth.ErrInvalidUsername,
			wantStatus: fiber.StatusBadRequest,
			wantBody:   map[string]any{"error": "InvalidUsernameError"},
		},
		{
			name:       "bad credentials",
			result:     auth.ErrInvalidUsernameOrPassword,
			wantStatus: fiber.StatusForbidden,
			wantBody:   map[string]any{"error": "InvalidUsernameOrPasswordError"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := new(MockAuthenticator)
			a.On("Authenticate", mock.Anything, "alice", "p123").Return(tt.token, tt.result)

			status, body := doJSON(t, newControllerApp(a, nil), fiber.MethodPost, "/login",
				`{"username":"alice","password":"p123"}`)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestAuthController_LoginDebugUsesLogger(t *testing.T) {
	a := new(MockAuthenticator)
	a.On("Authenticate", mock.Anything, "alice", "p123").Return("signed.jwt.token", nil)

	logger := &MockLogger{}
	app := fiber.New()
	auth.RegisterAuthRoutes(app, nil,
		auth.WithAuthenticator(a),
		auth.WithControllerLogger(logger),
		auth.WithControllerDebug(true),
	)

	status, _ := doJSON(t, app, fiber.MethodPost, "/login", `{"username":"alice","password":"p123"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, logger.Lines(), "DBG login attempt")
}

func TestAuthController_Me(t *testing.T) {
	identity := auth.Identity{ID: "7", Username: "alice"}
	protected := func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(auth.ErrorResponse{Error: "Invalid token"})
		}
		c.Locals(auth.DefaultContextKey, identity)
		return c.Next()
	}

	app := newControllerApp(new(MockAuthenticator), protected)

	status, _ := doJSON(t, app, fiber.MethodGet, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer x")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got auth.Identity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, identity, got)
}

func TestNewAuthControllerRequiresAuthenticator(t *testing.T) {
	assert.Panics(t, func() { auth.NewAuthController() })
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: auth.NewErrorHandler(&MockLogger{}, true)})
	app.Get("/teapot", func(*fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("secret internals") })

	status, body := doJSON(t, app, fiber.MethodGet, "/teapot", "")
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "short and stout", body["error"])

	status, body = doJSON(t, app, fiber.MethodGet, "/boom", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "InternalServerError", body["error"])

	status, _ = doJSON(t, app, fiber.MethodGet, "/missing", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
