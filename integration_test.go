package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-auth-api/config"
	"github.com/goliatone/go-auth-api/repository"
	"github.com/goliatone/go-auth-api/server"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := repository.Open(repository.DriverSQLite,
		fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = repository.Migrate(context.Background(), db)
	require.NoError(t, err)

	return db
}

func newTestConfig() config.Config {
	cfg := config.Defaults()
	cfg.Auth.SigningKey = string(testSigningKey)
	cfg.Auth.PasswordCost = 4
	return cfg
}

type testServer struct {
	*server.Server
	done chan struct{}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	done := make(chan struct{}, 64)
	srv := server.New(newTestConfig(), newTestDB(t),
		server.WithLogger(&MockLogger{}),
		server.WithActivityDone(func() { done <- struct{}{} }),
	)
	return &testServer{Server: srv, done: done}
}

func (s *testServer) waitActivity(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for activity %d of %d", i+1, n)
		}
	}
}

func (s *testServer) request(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = decodeBody(resp.Body, &out)
	return resp.StatusCode, out
}

func decodeBody(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func TestRegisterLoginAndProtectedFlow(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.request(t, fiber.MethodPost, "/api/register", "",
		`{"username":"u","email":"u@x.io","password":"p123"}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "User registered successfully", body["message"])
	srv.waitActivity(t, 1)

	status, body = srv.request(t, fiber.MethodPost, "/api/register", "",
		`{"username":"u","email":"u@x.io","password":"p123"}`)
	assert.Equal(t, fiber.StatusConflict, status, body)

	status, body = srv.request(t, fiber.MethodPost, "/api/login", "",
		`{"username":"u","password":"p123"}`)
	require.Equal(t, fiber.StatusOK, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	srv.waitActivity(t, 1)

	identity, err := srv.Auther.GetIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "u", identity.Username)
	assert.NotEmpty(t, identity.ID)

	status, body = srv.request(t, fiber.MethodGet, "/api/me", "Bearer "+token, "")
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "u", body["username"])
	assert.Equal(t, identity.ID, body["id"])

	status, body = srv.request(t, fiber.MethodGet, "/api/audits", "Bearer "+token, "")
	require.Equal(t, fiber.StatusOK, status, body)

	entries, err := srv.Audit.FindAll(context.Background())
	require.NoError(t, err)
	messages := make([]string, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "Created new User")
	assert.Contains(t, messages, "User u authenticated")
}

func TestLoginFailures(t *testing.T) {
	srv := newTestServer(t)

	status, _ := srv.request(t, fiber.MethodPost, "/api/register", "",
		`{"username":"u","email":"u@x.io","password":"p123"}`)
	require.Equal(t, fiber.StatusCreated, status)
	srv.waitActivity(t, 1)

	status, wrongPassword := srv.request(t, fiber.MethodPost, "/api/login", "",
		`{"username":"u","password":"nope"}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, unknownUser := srv.request(t, fiber.MethodPost, "/api/login", "",
		`{"username":"ghost","password":"p123"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, wrongPassword, unknownUser)

	status, body := srv.request(t, fiber.MethodPost, "/api/login", "", `{"username":"  ","password":"p123"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "InvalidUsernameError", body["error"])
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	for _, payload := range []string{
		`{}`,
		`{"username":"u","email":"u@x.io"}`,
		`{"username":"   ","email":"u@x.io","password":"p123"}`,
	} {
		status, body := srv.request(t, fiber.MethodPost, "/api/register", "", payload)
		assert.Equal(t, fiber.StatusBadRequest, status, payload)
		assert.Equal(t, "UserInputValidationError", body["error"])
	}

	entries, err := srv.Audit.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	srv := newTestServer(t)

	for _, header := range []string{"", "Bearer garbage", "Bearer ", "Token abc"} {
		for _, path := range []string{"/api/me", "/api/audits", "/api/companies", "/api/company-types"} {
			status, _ := srv.request(t, fiber.MethodGet, path, header, "")
			assert.Equal(t, fiber.StatusUnauthorized, status, "%s with %q", path, header)
		}
	}
}
