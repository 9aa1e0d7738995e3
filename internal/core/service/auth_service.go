package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-management-api/internal/core/domain"
	"github.com/taskhive/task-management-api/internal/core/ports"
)

// AuthService implements registration, login and admin seeding.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates a non-admin account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a signed session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// EnsureAdminSeeded guarantees the distinguished admin account exists.
// Safe to call on every startup: an existing admin is never modified, and a
// same-email non-admin is promoted without a password change.
func (s *AuthService) EnsureAdminSeeded(ctx context.Context, seed ports.AdminSeed) error {
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if !domain.ValidEmail(email) {
		return domain.ErrInvalidInput
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}
		now := time.Now().UTC()
		admin := &domain.User{
			Name:         seed.Name,
			Email:        email,
			PasswordHash: string(hash),
			IsAdmin:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, createErr := s.repo.Create(ctx, admin); createErr != nil {
			return createErr
		}
		s.logger.Info().Str("email", email).Msg("admin account created")
		return nil

	case err != nil:
		return err

	case !existing.IsAdmin:
		if promoteErr := s.repo.PromoteToAdmin(ctx, email); promoteErr != nil {
			return promoteErr
		}
		s.logger.Info().Str("email", email).Msg("existing user promoted to admin")
		return nil

	default:
		return nil
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
