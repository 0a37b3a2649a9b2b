package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookkeeper/internal/auth"
	"bookkeeper/internal/cache"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
)

const userCacheTTL = 5 * time.Minute

const msgCredentialsRequired = "Email and password are required"

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserPatch holds the optional fields of a user update.
type UserPatch struct {
	Email    model.Optional[string] `json:"email" swaggertype:"string"`
	Password model.Optional[string] `json:"password" swaggertype:"string"`
}

// UserService is the credential store. Reads and writes of a user record are
// restricted to the user themself.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	ListUsers(ctx context.Context, caller auth.Identity) ([]model.User, error)
	GetUser(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, caller auth.Identity, id uuid.UUID, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

type userService struct {
	repo       repository.UserRepository
	cache      *cache.Client
	bcryptCost int
}

// NewUserService builds a UserService with repository and cache. cache may be nil.
func NewUserService(repo repository.UserRepository, cache *cache.Client, bcryptCost int) UserService {
	return &userService{repo: repo, cache: cache, bcryptCost: bcryptCost}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// CreateUser registers a new user with a hashed password.
func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if err := validateInput(in, msgCredentialsRequired); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// ListUsers returns the caller's own record only.
func (s *userService) ListUsers(ctx context.Context, caller auth.Identity) ([]model.User, error) {
	user, err := s.repo.FindByID(ctx, caller.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return []model.User{*user}, nil
}

// GetUser returns the caller's record, read through the cache.
func (s *userService) GetUser(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.User, error) {
	if caller.UserID != id {
		return nil, apperrors.ErrAccessDenied
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrUserNotFound, "find user")
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateUser applies the supplied fields, keeping emails unique across users.
func (s *userService) UpdateUser(ctx context.Context, caller auth.Identity, id uuid.UUID, patch UserPatch) (*model.User, error) {
	if caller.UserID != id {
		return nil, apperrors.ErrAccessDenied
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrUserNotFound, "find user")
	}
	if !patch.Email.Set && !patch.Password.Set {
		return user, nil
	}

	updated := *user
	if err := patchString("email", patch.Email, &updated.Email); err != nil {
		return nil, err
	}
	if updated.Email != user.Email {
		other, err := s.repo.FindByEmail(ctx, updated.Email)
		if err == nil && other.ID != id {
			return nil, apperrors.ErrEmailExists
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	var password string
	if err := patchString("password", patch.Password, &password); err != nil {
		return nil, err
	}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, lookupError(err, apperrors.ErrUserNotFound, "update user")
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return &updated, nil
}

// DeleteUser removes the caller's record. Owned resources are left in place.
func (s *userService) DeleteUser(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if caller.UserID != id {
		return apperrors.ErrAccessDenied
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrUserNotFound, "delete user")
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
