package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Service wraps registration and authentication business rules.
type Service struct {
	repo   Repository
	issuer *TokenIssuer
	now    func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, issuer *TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer, now: time.Now}
}

// Register hashes the password and creates the user. A duplicate email
// surfaces as ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.repo.CreateUser(ctx, name, email, string(hash))
}

// Login validates credentials and issues a bearer token. Any failure maps
// to ErrInvalidCredentials so callers cannot distinguish unknown emails
// from wrong passwords.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issuer.Issue(user, s.now())
}

// Verify parses and validates a bearer token.
func (s *Service) Verify(token string) (*Claims, error) {
	return s.issuer.Verify(token)
}
