package user

import (
	"context"
	"strings"

	"github.com/odontosys/odontosys/internal/platform/apperr"
	"github.com/odontosys/odontosys/internal/platform/auth"
)

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// AuthResult is returned by both Register and Login.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Register creates a credentialed user and signs them in.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if !auth.ValidRole(role) {
		return nil, apperr.Validation("invalid role %q", role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Name, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(u.ID, u.Name, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}
