package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	authservice "school-cms/internal/service/auth"
)

// BcryptProvider authenticates the single site administrator against an
// email address and a bcrypt password hash.
type BcryptProvider struct {
	email string
	hash  []byte
}

// NewBcryptProvider creates a provider for email with the given bcrypt hash.
func NewBcryptProvider(email, passwordHash string) *BcryptProvider {
	return &BcryptProvider{
		email: strings.ToLower(strings.TrimSpace(email)),
		hash:  []byte(passwordHash),
	}
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *BcryptProvider) emailMatches(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	return subtle.ConstantTimeCompare([]byte(email), []byte(p.email)) == 1
}

// ValidateCredentials checks the email in constant time and the password with bcrypt.
func (p *BcryptProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return errors.New("credentials must not be empty")
	}

	emailOK := p.emailMatches(creds.Username)
	// パスワード照合はメール不一致でも実行して応答時間を揃える
	passErr := bcrypt.CompareHashAndPassword(p.hash, []byte(creds.Password))
	if !emailOK || passErr != nil {
		return errors.New("invalid credentials")
	}
	return nil
}

// IdentifyUser returns RoleAdmin for the configured email.
func (p *BcryptProvider) IdentifyUser(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New("email must not be empty")
	}
	if p.emailMatches(email) {
		return RoleAdmin, nil
	}
	return "", errors.New("user not found")
}

// Name returns the provider name.
func (p *BcryptProvider) Name() string {
	return "bcrypt"
}
