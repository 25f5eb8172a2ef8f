package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/validator"
)

type Service struct {
	users UserRepository
	jwt   tokenIssuer
}

func NewService(users UserRepository, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Signup registers a guest account and logs it straight in. The password
// policy forbids the holder's own name inside the password.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrValidation
	}
	if issues := validator.ValidatePassword(req.Password, req.FirstName, req.LastName); len(issues) > 0 {
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleGuest,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token}, nil
}

// Login checks the credentials and issues a JWT. Unknown email and wrong
// password are deliberately the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token}, nil
}

// Exists reports whether the email already has an account; the signup form
// uses it to branch between login and registration.
func (s *Service) Exists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, ErrValidation
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
