package app

import (
	"context"
	"fmt"

	"subscription_notifier/internal/domain/admin"

	"golang.org/x/crypto/bcrypt"
)

// Custom application-level errors for admin service
var ErrSetupDisabled = fmt.Errorf("setup is disabled: no setup token configured")
var ErrSetupUnauthorized = fmt.Errorf("setup token mismatch")
var ErrAdminAlreadyExists = fmt.Errorf("an admin user already exists")
var ErrInvalidCredentials = fmt.Errorf("invalid username or password")

type AdminService struct {
	adminRepo  admin.Repository
	setupToken string
}

func NewAdminService(ar admin.Repository, setupToken string) *AdminService {
	return &AdminService{
		adminRepo:  ar,
		setupToken: setupToken,
	}
}

// CreateInitialAdmin handles the one-time bootstrap of the first admin user.
// It requires the configured setup token and refuses once any admin exists,
// so the endpoint can be left mounted after deployment.
func (s *AdminService) CreateInitialAdmin(ctx context.Context, token, username, password string) (*admin.Admin, error) {
	if s.setupToken == "" {
		return nil, ErrSetupDisabled
	}
	if token == "" || token != s.setupToken {
		return nil, ErrSetupUnauthorized
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	n, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count existing admins: %w", err)
	}
	if n > 0 {
		return nil, ErrAdminAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newAdmin := &admin.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(ctx, newAdmin); err != nil {
		return nil, fmt.Errorf("failed to create admin in repository: %w", err)
	}
	return newAdmin, nil
}

// VerifyCredentials checks a username/password pair against the stored
// bcrypt hash. Unknown users and wrong passwords both return
// ErrInvalidCredentials so callers cannot probe for usernames.
func (s *AdminService) VerifyCredentials(ctx context.Context, username, password string) (*admin.Admin, error) {
	a, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if err == admin.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin %q: %w", username, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}
