package user

import (
	"context"
	"errors"
	"strings"

	"github.com/ndt123-fs/Code-Gym/internal/auth"
	"github.com/ndt123-fs/Code-Gym/internal/logger"
)

var (
	ErrEmailExists          = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrInvalidRole          = errors.New("unknown role")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
)

var validRoles = map[string]bool{
	auth.RoleAdmin:     true,
	auth.RoleReception: true,
	auth.RoleTrainer:   true,
	auth.RoleCashier:   true,
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	Update(ctx context.Context, userID int, req UpdateUserRequest) (*User, error)
	ToggleActive(ctx context.Context, actorID, userID int) (*User, error)
	List(ctx context.Context) ([]User, error)
	BootstrapAdmin(ctx context.Context, email, password string) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}
	if !u.Active {
		return nil, "", "", ErrAccountInactive
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		u.ID,
		u.Email,
		u.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return u, accessToken, refreshToken, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	claims, err := auth.ValidateRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrUserNotFound
	}
	if !u.Active {
		return "", nil, ErrAccountInactive
	}

	accessToken, err := auth.GenerateAccessToken(u.ID, u.Email, u.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return accessToken, u, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// BootstrapAdmin creates the initial admin account on a fresh database.
// A no-op once any admin exists, whatever its email.
func (s *service) BootstrapAdmin(ctx context.Context, email, password string) error {
	exists, err := s.repo.RoleExists(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	u, err := s.repo.Create(ctx, "Admin", email, passwordHash, auth.RoleAdmin)
	if err != nil {
		return err
	}

	logger.Infof("Created initial admin account %s (id %d)", u.Email, u.ID)
	return nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if !validRoles[req.Role] {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), email, passwordHash, req.Role)
	if err != nil {
		return nil, err
	}

	logger.Infof("Staff account %d created with role %s", u.ID, u.Role)
	return u, nil
}

func (s *service) Update(ctx context.Context, userID int, req UpdateUserRequest) (*User, error) {
	if !validRoles[req.Role] {
		return nil, ErrInvalidRole
	}
	return s.repo.Update(ctx, userID, strings.TrimSpace(req.Name), req.Role)
}

// ToggleActive flips an account's active flag. Deactivating the calling
// account is rejected.
func (s *service) ToggleActive(ctx context.Context, actorID, userID int) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Active && userID == actorID {
		return nil, ErrCannotDeactivateSelf
	}

	updated, err := s.repo.SetActive(ctx, userID, !u.Active)
	if err != nil {
		return nil, err
	}

	logger.Infof("Staff account %d active=%t", updated.ID, updated.Active)
	return updated, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
