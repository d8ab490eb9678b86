package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both an unknown username and a password
// mismatch, so a caller cannot learn whether the account exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository defines the database operations the auth service needs.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*data.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *data.User) (int64, error)
}

// AuthService verifies back-office credentials and seeds the default account.
type AuthService struct {
	users UserRepository
}

// NewAuthService creates a new AuthService with the given repository.
func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login looks up the user and verifies the password against the stored bcrypt
// hash. Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*data.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SeedDefaultUser creates the configured admin credential when the user table
// is empty. It is idempotent and safe to run on every start.
func (s *AuthService) SeedDefaultUser(ctx context.Context, username, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, &data.User{Username: username, Password: hash})
	return err
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
