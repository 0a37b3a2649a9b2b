package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookkeeper/internal/auth"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
)

const msgTransactionRequired = "Account ID, amount, and type are required"

// TransactionInput is the payload for recording a transaction.
type TransactionInput struct {
	AccountID   uuid.UUID     `json:"accountId" validate:"required"`
	CategoryID  *uuid.UUID    `json:"categoryId"`
	Amount      *model.Number `json:"amount" validate:"required"`
	Type        string        `json:"type" validate:"required"`
	Date        *time.Time    `json:"date"`
	Description string        `json:"description"`
}

// TransactionPatch holds the optional fields of a transaction update.
// A null categoryId detaches the transaction from its category.
type TransactionPatch struct {
	AccountID   model.Optional[uuid.UUID]    `json:"accountId" swaggertype:"string"`
	CategoryID  model.Optional[uuid.UUID]    `json:"categoryId" swaggertype:"string"`
	Amount      model.Optional[model.Number] `json:"amount" swaggertype:"number"`
	Type        model.Optional[string]       `json:"type" swaggertype:"string"`
	Date        model.Optional[time.Time]    `json:"date" swaggertype:"string"`
	Description model.Optional[string]       `json:"description" swaggertype:"string"`
}

func (p TransactionPatch) empty() bool {
	return !p.AccountID.Set && !p.CategoryID.Set && !p.Amount.Set &&
		!p.Type.Set && !p.Date.Set && !p.Description.Set
}

// TransactionService records transactions against the caller's accounts and categories.
type TransactionService interface {
	CreateTransaction(ctx context.Context, caller auth.Identity, in TransactionInput) (*model.Transaction, error)
	ListTransactions(ctx context.Context, caller auth.Identity) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, caller auth.Identity, id uuid.UUID, patch TransactionPatch) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

type transactionService struct {
	repo       repository.TransactionRepository
	accounts   repository.AccountRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	now        func() time.Time
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	repo repository.TransactionRepository,
	accounts repository.AccountRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
) TransactionService {
	return &transactionService{
		repo:       repo,
		accounts:   accounts,
		categories: categories,
		users:      users,
		now:        time.Now,
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, caller auth.Identity, in TransactionInput) (*model.Transaction, error) {
	if err := validateInput(in, msgTransactionRequired); err != nil {
		return nil, err
	}
	if err := ensureOwner(ctx, s.users, caller); err != nil {
		return nil, err
	}
	if err := s.ensureAccount(ctx, caller, in.AccountID); err != nil {
		return nil, err
	}

	tx := &model.Transaction{
		ID:          uuid.New(),
		UserID:      caller.UserID,
		AccountID:   in.AccountID,
		Amount:      in.Amount.Float64(),
		Type:        in.Type,
		Date:        s.now().UTC(),
		Description: in.Description,
	}
	if in.CategoryID != nil {
		if err := s.ensureCategory(ctx, caller, *in.CategoryID); err != nil {
			return nil, err
		}
		categoryID := *in.CategoryID
		tx.CategoryID = &categoryID
	}
	if in.Date != nil {
		tx.Date = in.Date.UTC()
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, lookupError(err, apperrors.ErrTransactionNotFound, "create transaction")
	}
	return tx, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, caller auth.Identity) ([]model.Transaction, error) {
	txs, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrTransactionNotFound, "list transactions")
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	return txs, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, caller.UserID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrTransactionNotFound, "find transaction")
	}
	return tx, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, caller auth.Identity, id uuid.UUID, patch TransactionPatch) (*model.Transaction, error) {
	tx, err := s.GetTransaction(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return tx, nil
	}

	updated := *tx
	if patch.AccountID.Set {
		if patch.AccountID.Null {
			return nil, apperrors.NewValidationError("accountId cannot be null")
		}
		if err := s.ensureAccount(ctx, caller, patch.AccountID.Value); err != nil {
			return nil, err
		}
		updated.AccountID = patch.AccountID.Value
	}
	if patch.CategoryID.Set {
		if patch.CategoryID.Null {
			updated.CategoryID = nil
		} else {
			if err := s.ensureCategory(ctx, caller, patch.CategoryID.Value); err != nil {
				return nil, err
			}
			categoryID := patch.CategoryID.Value
			updated.CategoryID = &categoryID
		}
	}
	if err := patchNumber("amount", patch.Amount, &updated.Amount); err != nil {
		return nil, err
	}
	if err := patchString("type", patch.Type, &updated.Type); err != nil {
		return nil, err
	}
	if patch.Date.Set {
		if patch.Date.Null {
			return nil, apperrors.NewValidationError("date cannot be null")
		}
		updated.Date = patch.Date.Value.UTC()
	}
	if patch.Description.Set {
		updated.Description = patch.Description.Value
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, lookupError(err, apperrors.ErrTransactionNotFound, "update transaction")
	}
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, caller.UserID, id); err != nil {
		return lookupError(err, apperrors.ErrTransactionNotFound, "delete transaction")
	}
	return nil
}

func (s *transactionService) ensureAccount(ctx context.Context, caller auth.Identity, accountID uuid.UUID) error {
	if _, err := s.accounts.FindByID(ctx, caller.UserID, accountID); err != nil {
		return lookupError(err, apperrors.ErrAccountNotFound, "find account")
	}
	return nil
}

func (s *transactionService) ensureCategory(ctx context.Context, caller auth.Identity, categoryID uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, caller.UserID, categoryID); err != nil {
		return lookupError(err, apperrors.ErrCategoryNotFound, "find category")
	}
	return nil
}
