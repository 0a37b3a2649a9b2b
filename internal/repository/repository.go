package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bookkeeper/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a write would break email uniqueness.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines credential persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// OwnedRepository persists records that belong to a single user.
// Every read and delete is filtered by the owner before anything else.
type OwnedRepository[T model.Owned] interface {
	Create(ctx context.Context, record *T) error
	// Update replaces the stored record with the same id and owner.
	Update(ctx context.Context, record *T) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*T, error)
	// ListByUser returns the owner's records in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// DeleteMany removes the given records in order as one operation and reports how many existed.
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

type (
	AccountRepository     = OwnedRepository[model.Account]
	CategoryRepository    = OwnedRepository[model.Category]
	TransactionRepository = OwnedRepository[model.Transaction]
)
