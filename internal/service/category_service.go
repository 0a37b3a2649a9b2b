package service

import (
	"context"

	"github.com/google/uuid"

	"bookkeeper/internal/auth"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
)

const msgCategoryRequired = "Name is required"

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name     string     `json:"name" validate:"required"`
	ParentID *uuid.UUID `json:"parentId"`
}

// CategoryPatch holds the optional fields of a category update.
// A null parentId moves the category to the root.
type CategoryPatch struct {
	Name     model.Optional[string]    `json:"name" swaggertype:"string"`
	ParentID model.Optional[uuid.UUID] `json:"parentId" swaggertype:"string"`
}

// CategoryService manages a caller's category forest.
type CategoryService interface {
	CreateCategory(ctx context.Context, caller auth.Identity, in CategoryInput) (*model.Category, error)
	ListCategories(ctx context.Context, caller auth.Identity) ([]model.Category, error)
	GetCategory(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Category, error)
	UpdateCategory(ctx context.Context, caller auth.Identity, id uuid.UUID, patch CategoryPatch) (*model.Category, error)
	// CascadeDelete removes the category and all of its descendants and reports how many were removed.
	CascadeDelete(ctx context.Context, caller auth.Identity, id uuid.UUID) (int, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	users repository.UserRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, users repository.UserRepository) CategoryService {
	return &categoryService{repo: repo, users: users}
}

func (s *categoryService) CreateCategory(ctx context.Context, caller auth.Identity, in CategoryInput) (*model.Category, error) {
	if err := validateInput(in, msgCategoryRequired); err != nil {
		return nil, err
	}
	if err := ensureOwner(ctx, s.users, caller); err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:     uuid.New(),
		UserID: caller.UserID,
		Name:   in.Name,
	}
	if in.ParentID != nil {
		if err := s.ensureParent(ctx, caller, *in.ParentID); err != nil {
			return nil, err
		}
		parentID := *in.ParentID
		category.ParentID = &parentID
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, lookupError(err, apperrors.ErrCategoryNotFound, "create category")
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, caller auth.Identity) ([]model.Category, error) {
	categories, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrCategoryNotFound, "list categories")
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, caller.UserID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrCategoryNotFound, "find category")
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, caller auth.Identity, id uuid.UUID, patch CategoryPatch) (*model.Category, error) {
	category, err := s.GetCategory(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !patch.Name.Set && !patch.ParentID.Set {
		return category, nil
	}

	updated := *category
	if err := patchString("name", patch.Name, &updated.Name); err != nil {
		return nil, err
	}

	switch {
	case !patch.ParentID.Set:
	case patch.ParentID.Null:
		updated.ParentID = nil
	case patch.ParentID.Value == id:
		return nil, apperrors.NewValidationError("Category cannot be its own parent")
	default:
		if err := s.ensureParent(ctx, caller, patch.ParentID.Value); err != nil {
			return nil, err
		}
		parentID := patch.ParentID.Value
		updated.ParentID = &parentID
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, lookupError(err, apperrors.ErrCategoryNotFound, "update category")
	}
	return &updated, nil
}

func (s *categoryService) CascadeDelete(ctx context.Context, caller auth.Identity, id uuid.UUID) (int, error) {
	categories, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return 0, lookupError(err, apperrors.ErrCategoryNotFound, "list categories")
	}

	found := false
	for _, c := range categories {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return 0, apperrors.ErrCategoryNotFound
	}

	order := subtreeChildrenFirst(id, childIndex(categories))
	removed, err := s.repo.DeleteMany(ctx, caller.UserID, order)
	if err != nil {
		return 0, lookupError(err, apperrors.ErrCategoryNotFound, "delete categories")
	}
	return removed, nil
}

func (s *categoryService) ensureParent(ctx context.Context, caller auth.Identity, parentID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, caller.UserID, parentID); err != nil {
		return lookupError(err, apperrors.ErrParentCategoryNotFound, "find parent category")
	}
	return nil
}
