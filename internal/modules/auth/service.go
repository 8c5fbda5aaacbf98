package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"hotelbooking/internal/repository"
)

type Service struct {
	accounts AccountRepository
	tokens   TokenIssuer
}

func NewService(accounts AccountRepository, tokens TokenIssuer) *Service {
	return &Service{accounts: accounts, tokens: tokens}
}

// HashPassword is used by seeding; account administration lives elsewhere.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	acc, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if acc.IsLocked {
		return nil, ErrAccountLocked
	}

	token, err := s.tokens.GenerateToken(acc.ID, acc.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token: token,
		Account: AccountPublic{
			ID:       acc.ID,
			Email:    acc.Email,
			FullName: acc.FullName,
			Role:     string(acc.Role),
		},
	}, nil
}
