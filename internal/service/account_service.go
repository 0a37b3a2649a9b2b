package service

import (
	"context"

	"github.com/google/uuid"

	"bookkeeper/internal/auth"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
)

const msgAccountRequired = "Name, type, and balance are required"

// AccountInput is the payload for creating an account.
type AccountInput struct {
	Name    string        `json:"name" validate:"required"`
	Type    string        `json:"type" validate:"required"`
	Balance *model.Number `json:"balance" validate:"required"`
}

// AccountPatch holds the optional fields of an account update.
type AccountPatch struct {
	Name    model.Optional[string]       `json:"name" swaggertype:"string"`
	Type    model.Optional[string]       `json:"type" swaggertype:"string"`
	Balance model.Optional[model.Number] `json:"balance" swaggertype:"number"`
}

// AccountService handles account operations, always scoped to the caller.
type AccountService interface {
	CreateAccount(ctx context.Context, caller auth.Identity, in AccountInput) (*model.Account, error)
	ListAccounts(ctx context.Context, caller auth.Identity) ([]model.Account, error)
	GetAccount(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Account, error)
	UpdateAccount(ctx context.Context, caller auth.Identity, id uuid.UUID, patch AccountPatch) (*model.Account, error)
	DeleteAccount(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

type accountService struct {
	repo  repository.AccountRepository
	users repository.UserRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.AccountRepository, users repository.UserRepository) AccountService {
	return &accountService{repo: repo, users: users}
}

// CreateAccount creates an account owned by the caller.
func (s *accountService) CreateAccount(ctx context.Context, caller auth.Identity, in AccountInput) (*model.Account, error) {
	if err := validateInput(in, msgAccountRequired); err != nil {
		return nil, err
	}
	if err := ensureOwner(ctx, s.users, caller); err != nil {
		return nil, err
	}

	account := &model.Account{
		ID:      uuid.New(),
		UserID:  caller.UserID,
		Name:    in.Name,
		Type:    in.Type,
		Balance: in.Balance.Float64(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, lookupError(err, apperrors.ErrAccountNotFound, "create account")
	}
	return account, nil
}

// ListAccounts lists the caller's accounts in creation order.
func (s *accountService) ListAccounts(ctx context.Context, caller auth.Identity) ([]model.Account, error) {
	accounts, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrAccountNotFound, "list accounts")
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return accounts, nil
}

// GetAccount retrieves one of the caller's accounts.
func (s *accountService) GetAccount(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Account, error) {
	account, err := s.repo.FindByID(ctx, caller.UserID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrAccountNotFound, "find account")
	}
	return account, nil
}

// UpdateAccount merges the supplied fields into the stored account.
func (s *accountService) UpdateAccount(ctx context.Context, caller auth.Identity, id uuid.UUID, patch AccountPatch) (*model.Account, error) {
	account, err := s.GetAccount(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !patch.Name.Set && !patch.Type.Set && !patch.Balance.Set {
		return account, nil
	}

	updated := *account
	if err := patchString("name", patch.Name, &updated.Name); err != nil {
		return nil, err
	}
	if err := patchString("type", patch.Type, &updated.Type); err != nil {
		return nil, err
	}
	if err := patchNumber("balance", patch.Balance, &updated.Balance); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, lookupError(err, apperrors.ErrAccountNotFound, "update account")
	}
	return &updated, nil
}

// DeleteAccount removes one of the caller's accounts. Transactions referencing it are kept.
func (s *accountService) DeleteAccount(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, caller.UserID, id); err != nil {
		return lookupError(err, apperrors.ErrAccountNotFound, "delete account")
	}
	return nil
}
