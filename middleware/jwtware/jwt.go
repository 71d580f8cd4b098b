package jwtware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	auth "github.com/goliatone/go-auth-api"
)

const (
	MsgBearerRequired = "Authorization header must contain a Bearer token"
	MsgTokenRequired  = "Token is required"
	MsgInvalidToken   = "Invalid token"
)

var (
	// ErrJWTMissingOrMalformed the header is absent or lacks the auth scheme
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")
	// ErrJWTEmpty the auth scheme is present but carries no token
	ErrJWTEmpty = errors.New("missing JWT")
)

// ValidationListener is invoked after a token has been resolved but
// before the request proceeds.
type ValidationListener func(ctx *fiber.Ctx, identity auth.Identity) error

type Config struct {
	Filter         func(*fiber.Ctx) bool
	SuccessHandler fiber.Handler
	ErrorHandler   fiber.ErrorHandler
	// IdentityResolver is required, it turns the raw token into an Identity
	IdentityResolver auth.IdentityResolver
	ContextKey       string
	Header           string
	AuthScheme       string
	Logger           auth.Logger

	ValidationListeners []ValidationListener
}

// New returns the bearer gate. Rejections are always 401 JSON responses.
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(ctx *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(ctx) {
			return ctx.Next()
		}

		raw, err := jwtFromHeader(cfg.Header, cfg.AuthScheme)(ctx)
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		identity, err := cfg.IdentityResolver.GetIdentity(raw)
		if err != nil {
			cfg.Logger.Debug("bearer token rejected",
				"path", ctx.Path(),
				"expired", auth.IsTokenExpiredError(err),
				"error", err,
			)
			return cfg.ErrorHandler(ctx, err)
		}

		for _, listener := range cfg.ValidationListeners {
			if listener == nil {
				continue
			}
			if err := listener(ctx, identity); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}
		}

		ctx.Locals(cfg.ContextKey, identity)
		ctx.SetUserContext(auth.WithIdentity(ctx.UserContext(), identity))

		return cfg.SuccessHandler(ctx)
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.IdentityResolver == nil {
		panic("AUTH: JWT middleware configuration: IdentityResolver is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = auth.DefaultContextKey
	}

	if cfg.Header == "" {
		cfg.Header = fiber.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.Logger == nil {
		cfg.Logger = auth.NewSlogLogger(nil)
	}

	return cfg
}

// DefaultErrorHandler writes the 401 body matching err
func DefaultErrorHandler(c *fiber.Ctx, err error) error {
	msg := MsgInvalidToken
	switch {
	case errors.Is(err, ErrJWTMissingOrMalformed):
		msg = MsgBearerRequired
	case errors.Is(err, ErrJWTEmpty):
		msg = MsgTokenRequired
	}
	return c.Status(fiber.StatusUnauthorized).JSON(auth.ErrorResponse{Error: msg})
}

type JWTExtractor func(c *fiber.Ctx) (string, error)

// jwtFromHeader returns a function that extracts token from the request
// header. Only "<scheme> <token>" values are accepted.
func jwtFromHeader(header string, authScheme string) JWTExtractor {
	authScheme = strings.TrimSpace(authScheme)
	prefix := authScheme + " "
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		if a == "" {
			return "", ErrJWTMissingOrMalformed
		}

		if !strings.EqualFold(a, authScheme) &&
			(len(a) < len(prefix) || !strings.EqualFold(a[:len(prefix)], prefix)) {
			return "", ErrJWTMissingOrMalformed
		}

		token := ""
		if len(a) > len(prefix) {
			token = strings.TrimSpace(a[len(prefix):])
		}
		if token == "" {
			return "", ErrJWTEmpty
		}
		return token, nil
	}
}
