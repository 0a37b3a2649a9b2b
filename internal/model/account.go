package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents a user's bank, cash or savings account.
type Account struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Type      string    `json:"type" gorm:"size:64;not null"`
	Balance   float64   `json:"balance" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"-" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

func (a Account) GetID() uuid.UUID     { return a.ID }
func (a Account) GetUserID() uuid.UUID { return a.UserID }

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
