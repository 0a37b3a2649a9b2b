package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"bookkeeper/internal/model"
)

// memoryStore keeps owned records in a map keyed by id, with a per-owner
// index preserving insertion order. Each method holds the lock for its whole
// duration, so single calls are atomic; sequences of calls are not.
type memoryStore[T model.Owned] struct {
	mu      sync.RWMutex
	records map[uuid.UUID]T
	byOwner map[uuid.UUID][]uuid.UUID
}

func newMemoryStore[T model.Owned]() *memoryStore[T] {
	return &memoryStore[T]{
		records: make(map[uuid.UUID]T),
		byOwner: make(map[uuid.UUID][]uuid.UUID),
	}
}

// NewMemoryAccountRepository creates a volatile account repository.
func NewMemoryAccountRepository() AccountRepository {
	return newMemoryStore[model.Account]()
}

// NewMemoryCategoryRepository creates a volatile category repository.
func NewMemoryCategoryRepository() CategoryRepository {
	return newMemoryStore[model.Category]()
}

// NewMemoryTransactionRepository creates a volatile transaction repository.
func NewMemoryTransactionRepository() TransactionRepository {
	return newMemoryStore[model.Transaction]()
}

func (s *memoryStore[T]) Create(ctx context.Context, record *T) error {
	id := (*record).GetID()
	if id == uuid.Nil {
		return errors.New("record id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; exists {
		return errors.New("record already exists")
	}
	owner := (*record).GetUserID()
	s.records[id] = *record
	s.byOwner[owner] = append(s.byOwner[owner], id)
	return nil
}

func (s *memoryStore[T]) Update(ctx context.Context, record *T) error {
	id := (*record).GetID()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok || existing.GetUserID() != (*record).GetUserID() {
		return ErrNotFound
	}
	s.records[id] = *record
	return nil
}

func (s *memoryStore[T]) FindByID(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok || record.GetUserID() != userID {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (s *memoryStore[T]) ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byOwner[userID]
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *memoryStore[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeLocked(userID, id) {
		return ErrNotFound
	}
	return nil
}

func (s *memoryStore[T]) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if s.removeLocked(userID, id) {
			removed++
		}
	}
	return removed, nil
}

func (s *memoryStore[T]) removeLocked(userID, id uuid.UUID) bool {
	record, ok := s.records[id]
	if !ok || record.GetUserID() != userID {
		return false
	}
	delete(s.records, id)

	ids := s.byOwner[userID]
	for i, candidate := range ids {
		if candidate == id {
			s.byOwner[userID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(s.byOwner[userID]) == 0 {
		delete(s.byOwner, userID)
	}
	return true
}

type memoryUserRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
}

// NewMemoryUserRepository creates a volatile credential store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:   make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}
	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
		return ErrDuplicateEmail
	}
	delete(r.byEmail, existing.Email)
	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	delete(r.byEmail, existing.Email)
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}
