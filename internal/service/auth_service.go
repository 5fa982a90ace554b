package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"votepulse/internal/domain"
	"votepulse/internal/repository"
	apperrors "votepulse/pkg/errors"
	"votepulse/pkg/logger"
)

const (
	minLoginLength    = 3
	minPasswordLength = 6
	bcryptCost        = 10
	tokenValidity     = 7 * 24 * time.Hour
)

// invalidCredentials is returned for every login failure so callers cannot
// tell an unknown login from a wrong password.
const invalidCredentials = "Invalid login or password"

// authService implements AuthService on top of the account repository
type authService struct {
	accounts  repository.AccountRepository
	jwtSecret []byte
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(accounts repository.AccountRepository, jwtSecret string, logger *logger.Logger) AuthService {
	return &authService{
		accounts:  accounts,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Register validates the request, enforces login uniqueness and persists a
// new account with a bcrypt-hashed credential
func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Profile, error) {
	login := strings.TrimSpace(req.Login)

	if login == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Login and password are required")
	}
	if utf8.RuneCountInString(login) < minLoginLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Login must be at least %d characters", minLoginLength))
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check login uniqueness")
		return nil, apperrors.NewPersistenceError("Failed to create account", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Login is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}

	now := time.Now()
	account := &domain.Account{
		CreatedAt:    now,
		UpdatedAt:    now,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Login:        login,
		PasswordHash: string(hash),
	}

	id, err := s.accounts.Insert(ctx, account)
	if err != nil {
		s.logger.WithError(err).Error("Failed to insert account")
		return nil, apperrors.NewPersistenceError("Failed to create account", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": id,
		"login":      login,
	}).Info("Account created")

	return account.Profile(), nil
}

// Login verifies credentials and issues a signed 7-day bearer token
func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Login == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Login and password are required")
	}

	account, err := s.accounts.FindByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up account")
		return nil, apperrors.NewPersistenceError("Login failed", err)
	}
	if account == nil {
		return nil, apperrors.NewAuthenticationError(invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewAuthenticationError(invalidCredentials)
	}

	token, err := s.issueToken(account)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign token")
		return nil, apperrors.NewInternalError("Login failed", err)
	}

	s.logger.WithField("account_id", account.ID.Hex()).Debug("Login succeeded")

	return &domain.LoginResponse{
		Token: token,
		User:  account.Profile(),
	}, nil
}

// VerifyToken validates a bearer token and resolves the account it identifies
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*domain.Profile, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, apperrors.NewAuthenticationError("Invalid token: no subject")
	}

	account, err := s.accounts.FindByID(ctx, claims.Subject)
	if err != nil {
		s.logger.WithError(err).Error("Failed to resolve token subject")
		return nil, apperrors.NewPersistenceError("Token verification failed", err)
	}
	if account == nil {
		return nil, apperrors.NewAuthenticationError("Invalid token: unknown account")
	}

	return account.Profile(), nil
}

// issueToken signs a token whose only claim is the account identifier
func (s *authService) issueToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   account.ID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
