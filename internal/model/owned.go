package model

import "github.com/google/uuid"

// Owned is implemented by every record that belongs to exactly one user.
type Owned interface {
	GetID() uuid.UUID
	GetUserID() uuid.UUID
}
