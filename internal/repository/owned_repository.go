package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookkeeper/internal/model"
)

type ownedRepository[T model.Owned] struct {
	db *gorm.DB
}

// NewAccountRepository creates a GORM-backed account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &ownedRepository[model.Account]{db: db}
}

// NewCategoryRepository creates a GORM-backed category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &ownedRepository[model.Category]{db: db}
}

// NewTransactionRepository creates a GORM-backed transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &ownedRepository[model.Transaction]{db: db}
}

// Create inserts a new record.
func (r *ownedRepository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update saves the record if a row with the same id and owner exists.
func (r *ownedRepository[T]) Update(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing T
		if err := tx.Where("id = ? AND user_id = ?", (*record).GetID(), (*record).GetUserID()).
			First(&existing).Error; err != nil {
			return translateError(err)
		}
		return tx.Save(record).Error
	})
}

// FindByID finds a record by ID within the owner's records.
func (r *ownedRepository[T]) FindByID(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

// ListByUser lists the owner's records, oldest first.
func (r *ownedRepository[T]) ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error) {
	records := make([]T, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes a single record owned by userID.
func (r *ownedRepository[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes the records one by one, in order, inside a database transaction.
func (r *ownedRepository[T]) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	removed := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
			if res.Error != nil {
				return res.Error
			}
			removed += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return err
	}
}
