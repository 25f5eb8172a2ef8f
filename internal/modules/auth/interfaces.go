package auth

import (
	"context"

	"stayhub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, email, role string) (string, error)
}
