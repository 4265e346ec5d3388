package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skill-match/internal/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAdminDisabled      = errors.New("admin access disabled")
	ErrInternal           = errors.New("internal error")
)

type TokenInput struct {
	Password string
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

type AuthUsecase interface {
	IssueAdminToken(ctx context.Context, in TokenInput) (Token, error)
}

// Service authenticates the single operator account configured through a
// bcrypt password hash.
type Service struct {
	passwordHash []byte
	tokens       jwt.Service
}

func NewService(passwordHash string, tokens jwt.Service) *Service {
	return &Service{passwordHash: []byte(strings.TrimSpace(passwordHash)), tokens: tokens}
}

func (s *Service) IssueAdminToken(ctx context.Context, in TokenInput) (Token, error) {
	if len(s.passwordHash) == 0 || s.tokens == nil {
		return Token{}, ErrAdminDisabled
	}
	if in.Password == "" {
		return Token{}, ErrInvalidInput
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, ErrInternal
	}

	tok, exp, err := s.tokens.GenerateAccessToken(jwt.RoleAdmin)
	if err != nil {
		return Token{}, ErrInternal
	}
	return Token{AccessToken: tok, ExpiresAt: exp}, nil
}
