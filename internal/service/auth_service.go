package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/config"
	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/repository"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// AuthService coordinates registration and login across the two
// principal stores.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdministratorRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdministratorRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new end-user account. The email must be unused in
// both principal stores: registration checks the union, not just the
// user table.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Profile, string, time.Time, error) {
	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if taken {
		return nil, "", time.Time{}, apperrors.NewConflict("el correo ya está registrado", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, domain.RoleEndUser, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	profile := &domain.Profile{ID: user.ID, Name: user.Name, Email: user.Email, Role: domain.RoleEndUser}
	return profile, token, exp, nil
}

// Login authenticates either principal kind with one email/password
// pair. The end-user store is consulted before the administrator store;
// this precedence is a deliberate rule, so an email present in both
// stores always authenticates as the end user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Profile, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("credenciales inválidas")
		}
		token, exp, err := s.tokenMgr.GenerateToken(user.ID, domain.RoleEndUser, user.Email)
		if err != nil {
			return nil, "", time.Time{}, apperrors.NewInternalError(err)
		}
		profile := &domain.Profile{ID: user.ID, Name: user.Name, Email: user.Email, Role: domain.RoleEndUser}
		return profile, token, exp, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("credenciales inválidas")
		}
		token, exp, err := s.tokenMgr.GenerateToken(admin.ID, domain.RoleAdmin, admin.Email)
		if err != nil {
			return nil, "", time.Time{}, apperrors.NewInternalError(err)
		}
		profile := &domain.Profile{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: domain.RoleAdmin}
		return profile, token, exp, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	return nil, "", time.Time{}, apperrors.NewDomainError("NOT_FOUND",
		"correo no registrado, regístrate para continuar", http.StatusNotFound, nil)
}

func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return false, apperrors.MapError(err)
	}
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return false, apperrors.MapError(err)
	}
	return false, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
