// Package auth issues and verifies admin session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the "iss" claim of every token.
const Issuer = "school-cms"

var (
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a missing, malformed, expired or forged token.
	ErrInvalidToken = errors.New("invalid token")
)

// Credentials is a login attempt.
type Credentials struct {
	Username string
	Password string
}

// AuthProvider checks credentials and maps a user to a role.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	IdentifyUser(ctx context.Context, email string) (string, error)
	Name() string
}

// TokenConfig configures HS256 signing.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

// Claims are the JWT claims of a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session is an issued token and what it grants.
type Session struct {
	Token     string
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// AuthService validates logins and manages tokens.
type AuthService struct {
	provider AuthProvider
	cfg      TokenConfig
	now      func() time.Time
}

// NewAuthService creates the service. TTL defaults to 12h.
func NewAuthService(provider AuthProvider, cfg TokenConfig) *AuthService {
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	return &AuthService{provider: provider, cfg: cfg, now: time.Now}
}

// WithClock replaces the time source.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// GetProvider returns the credential provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}

// Login validates creds and issues a token for the user's role.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (Session, error) {
	if err := s.provider.ValidateCredentials(ctx, creds); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	role, err := s.provider.IdentifyUser(ctx, creds.Username)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return s.Issue(creds.Username, role)
}

// Issue signs a token for subject with role.
func (s *AuthService) Issue(subject, role string) (Session, error) {
	now := s.now()
	exp := now.Add(s.cfg.TTL)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: signed, Subject: subject, Role: role, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify parses and checks a token string (without the "Bearer " prefix).
func (s *AuthService) Verify(token string) (Session, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.Role == "" {
		return Session{}, fmt.Errorf("%w: missing sub or role", ErrInvalidToken)
	}
	return Session{
		Token:     token,
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
