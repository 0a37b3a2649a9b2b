package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"bookkeeper/internal/auth"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/repository"
)

// LoginInput is the credential payload exchanged for a token.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (token string, err error)
	Authenticate(token string) (auth.Identity, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	// dummyHash is compared against when the email is unknown, so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, bcryptCost int) (AuthService, error) {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		dummyHash:  dummyHash,
	}, nil
}

// Login verifies the credentials and issues an access token.
func (s *authService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := validateInput(in, msgCredentialsRequired); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}

// Authenticate verifies a bearer token. Every failure reads as access denied.
func (s *authService) Authenticate(token string) (auth.Identity, error) {
	identity, err := s.jwtService.Verify(token)
	if err != nil {
		return auth.Identity{}, apperrors.ErrAccessDenied
	}
	return identity, nil
}
