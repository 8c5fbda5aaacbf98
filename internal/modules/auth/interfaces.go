package auth

import (
	"context"

	"hotelbooking/internal/domain"
)

// AccountRepository is the only account lookup login needs.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}
