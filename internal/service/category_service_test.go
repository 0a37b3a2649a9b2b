package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice@x.com")
	bob := env.register(t, "bob@x.com")

	root := env.category(t, alice, "Food", nil)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, alice.UserID, root.UserID)

	child := env.category(t, alice, "Groceries", root)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	_, err := env.categories.CreateCategory(ctx, alice, CategoryInput{})
	assert.Equal(t, apperrors.NewValidationError(msgCategoryRequired), err)

	missing := uuid.New()
	_, err = env.categories.CreateCategory(ctx, alice, CategoryInput{Name: "Orphan", ParentID: &missing})
	assert.Equal(t, apperrors.ErrParentCategoryNotFound, err)

	// A parent owned by someone else does not resolve.
	_, err = env.categories.CreateCategory(ctx, bob, CategoryInput{Name: "Sneaky", ParentID: &root.ID})
	assert.Equal(t, apperrors.ErrParentCategoryNotFound, err)

	list, err := env.categories.ListCategories(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice@x.com")
	bob := env.register(t, "bob@x.com")

	food := env.category(t, alice, "Food", nil)
	travel := env.category(t, alice, "Travel", nil)
	snacks := env.category(t, alice, "Snacks", food)
	bobs := env.category(t, bob, "Bob's", nil)

	t.Run("rename keeps parent", func(t *testing.T) {
		updated, err := env.categories.UpdateCategory(ctx, alice, snacks.ID, CategoryPatch{Name: model.Some("Treats")})
		require.NoError(t, err)
		assert.Equal(t, "Treats", updated.Name)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, food.ID, *updated.ParentID)
	})

	t.Run("reparent", func(t *testing.T) {
		updated, err := env.categories.UpdateCategory(ctx, alice, snacks.ID, CategoryPatch{ParentID: model.Some(travel.ID)})
		require.NoError(t, err)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, travel.ID, *updated.ParentID)
		assert.Equal(t, "Treats", updated.Name)
	})

	t.Run("null parent detaches", func(t *testing.T) {
		updated, err := env.categories.UpdateCategory(ctx, alice, snacks.ID, CategoryPatch{ParentID: model.Optional[uuid.UUID]{Set: true, Null: true}})
		require.NoError(t, err)
		assert.Nil(t, updated.ParentID)
	})

	t.Run("self parent rejected", func(t *testing.T) {
		_, err := env.categories.UpdateCategory(ctx, alice, food.ID, CategoryPatch{Name: model.Some("X"), ParentID: model.Some(food.ID)})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

		stored, err := env.categories.GetCategory(ctx, alice, food.ID)
		require.NoError(t, err)
		assert.Equal(t, "Food", stored.Name)
	})

	t.Run("foreign parent rejected without mutation", func(t *testing.T) {
		_, err := env.categories.UpdateCategory(ctx, alice, food.ID, CategoryPatch{Name: model.Some("X"), ParentID: model.Some(bobs.ID)})
		assert.Equal(t, apperrors.ErrParentCategoryNotFound, err)

		stored, err := env.categories.GetCategory(ctx, alice, food.ID)
		require.NoError(t, err)
		assert.Equal(t, "Food", stored.Name)
		assert.Nil(t, stored.ParentID)
	})

	t.Run("other owner cannot update", func(t *testing.T) {
		_, err := env.categories.UpdateCategory(ctx, bob, food.ID, CategoryPatch{Name: model.Some("Mine")})
		assert.Equal(t, apperrors.ErrCategoryNotFound, err)
	})
}

func TestCategoryService_CascadeDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice@x.com")
	bob := env.register(t, "bob@x.com")

	// food
	// ├── groceries
	// │   ├── fruit
	// │   └── dairy
	// └── dining
	// travel
	food := env.category(t, alice, "Food", nil)
	groceries := env.category(t, alice, "Groceries", food)
	env.category(t, alice, "Fruit", groceries)
	env.category(t, alice, "Dairy", groceries)
	env.category(t, alice, "Dining", food)
	travel := env.category(t, alice, "Travel", nil)
	bobs := env.category(t, bob, "Bob food", nil)

	removed, err := env.categories.CascadeDelete(ctx, bob, food.ID)
	assert.Equal(t, apperrors.ErrCategoryNotFound, err)
	assert.Zero(t, removed)

	removed, err = env.categories.CascadeDelete(ctx, alice, groceries.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	removed, err = env.categories.CascadeDelete(ctx, alice, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = env.categories.CascadeDelete(ctx, alice, travel.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	list, err := env.categories.ListCategories(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.categories.GetCategory(ctx, bob, bobs.ID)
	assert.NoError(t, err)

	_, err = env.categories.CascadeDelete(ctx, alice, food.ID)
	assert.Equal(t, apperrors.ErrCategoryNotFound, err)
}

func TestCategoryService_CascadeDeleteTerminatesOnCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice@x.com")

	a := env.category(t, alice, "A", nil)
	b := env.category(t, alice, "B", a)
	c := env.category(t, alice, "C", b)
	unrelated := env.category(t, alice, "Unrelated", nil)

	// Close the loop a -> c -> b -> a. Only direct self-parenting is rejected on write.
	_, err := env.categories.UpdateCategory(ctx, alice, a.ID, CategoryPatch{ParentID: model.Some(c.ID)})
	require.NoError(t, err)

	removed, err := env.categories.CascadeDelete(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	list, err := env.categories.ListCategories(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, unrelated.ID, list[0].ID)
}

func TestCategoryService_CascadeDeleteKeepsTransactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice@x.com")
	acc := env.account(t, alice, "Main")
	food := env.category(t, alice, "Food", nil)

	tx, err := env.transactions.CreateTransaction(ctx, alice, TransactionInput{
		AccountID: acc.ID, CategoryID: &food.ID, Amount: num(12), Type: "withdrawal",
	})
	require.NoError(t, err)

	_, err = env.categories.CascadeDelete(ctx, alice, food.ID)
	require.NoError(t, err)

	stored, err := env.transactions.GetTransaction(ctx, alice, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CategoryID)
	assert.Equal(t, food.ID, *stored.CategoryID)
}

func TestSubtreeChildrenFirst(t *testing.T) {
	root, left, right, leaf := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	categories := []model.Category{
		{ID: root},
		{ID: left, ParentID: &root},
		{ID: right, ParentID: &root},
		{ID: leaf, ParentID: &left},
	}

	order := subtreeChildrenFirst(root, childIndex(categories))
	assert.Equal(t, []uuid.UUID{leaf, left, right, root}, order)

	assert.Equal(t, []uuid.UUID{leaf}, subtreeChildrenFirst(leaf, childIndex(categories)))

	// root <-> left cycle
	categories[0].ParentID = &left
	order = subtreeChildrenFirst(root, childIndex(categories))
	assert.Equal(t, []uuid.UUID{leaf, left, right, root}, order)
}
