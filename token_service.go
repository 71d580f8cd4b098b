package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiration is used when the configured expiration is not positive
const DefaultTokenExpiration = 72 * time.Hour

// TokenService issues and verifies HS256 session tokens
type TokenService struct {
	signingKey      []byte
	tokenExpiration time.Duration
	logger          Logger
	now             func() time.Time
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, tokenExpiration time.Duration, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if tokenExpiration <= 0 {
		tokenExpiration = DefaultTokenExpiration
	}
	return &TokenService{
		signingKey:      signingKey,
		tokenExpiration: tokenExpiration,
		logger:          logger,
		now:             time.Now,
	}
}

// NewTokenServiceFromConfig wires a TokenService from Config
func NewTokenServiceFromConfig(cfg Config, logger Logger) *TokenService {
	return NewTokenService([]byte(cfg.GetSigningKey()), cfg.GetTokenExpiration(), logger)
}

// WithClock overrides the time source, used to mint already expired tokens
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		ts.now = now
	}
	return ts
}

// Expiration returns the configured token lifetime
func (ts *TokenService) Expiration() time.Duration {
	return ts.tokenExpiration
}

// Issue signs a token carrying exactly the given identity
func (ts *TokenService) Issue(identity Identity) (string, error) {
	now := ts.now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiration)),
		},
		UID:      identity.ID,
		Username: identity.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}

	return signed, nil
}

// Verify parses tokenString, checking signature, algorithm and expiration.
// Every failure is reported as ErrInvalidToken with the cause kept in the
// chain.
func (ts *TokenService) Verify(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Debug("token service unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithTimeFunc(ts.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, invalidToken(classifyTokenError(err))
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, invalidToken(ErrTokenMalformed)
	}

	return claims, nil
}

// GetIdentity verifies tokenString and returns the {id, username}
// projection of its payload.
func (ts *TokenService) GetIdentity(tokenString string) (Identity, error) {
	claims, err := ts.Verify(tokenString)
	if err != nil {
		return Identity{}, err
	}

	identity := claims.Identity()
	if identity.IsZero() {
		return Identity{}, invalidToken(ErrTokenMalformed)
	}

	return identity, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}

func invalidToken(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidToken, cause)
}
