package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction records money moving in or out of an account.
// Type is free-form ("deposit", "withdrawal", ...).
type Transaction struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:char(36);not null;index"`
	AccountID   uuid.UUID  `json:"accountId" gorm:"type:char(36);not null;index"`
	CategoryID  *uuid.UUID `json:"categoryId" gorm:"type:char(36);index"`
	Amount      float64    `json:"amount" gorm:"not null"`
	Type        string     `json:"type" gorm:"size:64;not null;index"`
	Date        time.Time  `json:"date" gorm:"not null;index"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"-" gorm:"index"`
	UpdatedAt   time.Time  `json:"-"`
}

func (t Transaction) GetID() uuid.UUID     { return t.ID }
func (t Transaction) GetUserID() uuid.UUID { return t.UserID }

// BeforeCreate sets UUID before creating the record.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
