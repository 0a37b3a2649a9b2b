package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a node in a user's category forest. Roots have a nil ParentID.
type Category struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID  `json:"userId" gorm:"type:char(36);not null;index"`
	Name      string     `json:"name" gorm:"size:255;not null"`
	ParentID  *uuid.UUID `json:"parentId" gorm:"type:char(36);index"`
	CreatedAt time.Time  `json:"-" gorm:"index"`
	UpdatedAt time.Time  `json:"-"`
}

func (c Category) GetID() uuid.UUID     { return c.ID }
func (c Category) GetUserID() uuid.UUID { return c.UserID }

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
