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

func TestAccountService_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   AccountInput
		wantErr error
	}{
		{"success", AccountInput{Name: "Main", Type: "savings", Balance: num(1000)}, nil},
		{"zero balance allowed", AccountInput{Name: "Empty", Type: "cash", Balance: num(0)}, nil},
		{"missing name", AccountInput{Type: "savings", Balance: num(1)}, apperrors.NewValidationError(msgAccountRequired)},
		{"missing type", AccountInput{Name: "Main", Balance: num(1)}, apperrors.NewValidationError(msgAccountRequired)},
		{"missing balance", AccountInput{Name: "Main", Type: "savings"}, apperrors.NewValidationError(msgAccountRequired)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			caller := env.register(t, "a@x.com")

			acc, err := env.accounts.CreateAccount(context.Background(), caller, tt.input)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				list, _ := env.accounts.ListAccounts(context.Background(), caller)
				assert.Empty(t, list)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, caller.UserID, acc.UserID)
			assert.Equal(t, tt.input.Name, acc.Name)
			assert.Equal(t, tt.input.Balance.Float64(), acc.Balance)

			got, err := env.accounts.GetAccount(context.Background(), caller, acc.ID)
			require.NoError(t, err)
			assert.Equal(t, acc, got)
		})
	}
}

func TestAccountService_CrossOwnerIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice@x.com")
	bob := env.register(t, "bob@x.com")
	acc := env.account(t, alice, "Alice main")

	_, err := env.accounts.GetAccount(ctx, bob, acc.ID)
	assert.Equal(t, apperrors.ErrAccountNotFound, err)

	_, err = env.accounts.UpdateAccount(ctx, bob, acc.ID, AccountPatch{Name: model.Some("Bob's now")})
	assert.Equal(t, apperrors.ErrAccountNotFound, err)

	err = env.accounts.DeleteAccount(ctx, bob, acc.ID)
	assert.Equal(t, apperrors.ErrAccountNotFound, err)

	list, err := env.accounts.ListAccounts(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := env.accounts.GetAccount(ctx, alice, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice main", got.Name)
}

func TestAccountService_PartialUpdatePreservesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := env.register(t, "a@x.com")
	acc := env.account(t, caller, "Main")

	updated, err := env.accounts.UpdateAccount(ctx, caller, acc.ID, AccountPatch{Name: model.Some("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, acc.Type, updated.Type)
	assert.Equal(t, acc.Balance, updated.Balance)

	updated, err = env.accounts.UpdateAccount(ctx, caller, acc.ID, AccountPatch{Balance: model.Some(model.Number(-42.5))})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, -42.5, updated.Balance)

	noop, err := env.accounts.UpdateAccount(ctx, caller, acc.ID, AccountPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated, noop)

	// Empty strings are treated like absent keys.
	blank, err := env.accounts.UpdateAccount(ctx, caller, acc.ID, AccountPatch{Name: model.Some(""), Type: model.Some("")})
	require.NoError(t, err)
	assert.Equal(t, updated, blank)

	_, err = env.accounts.UpdateAccount(ctx, caller, acc.ID, AccountPatch{
		Name:    model.Some("Ignored"),
		Balance: model.Optional[model.Number]{Set: true, Null: true},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	stored, err := env.accounts.GetAccount(ctx, caller, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
}

func TestAccountService_DeleteThenGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := env.register(t, "a@x.com")
	acc := env.account(t, caller, "Main")

	require.NoError(t, env.accounts.DeleteAccount(ctx, caller, acc.ID))

	_, err := env.accounts.GetAccount(ctx, caller, acc.ID)
	assert.Equal(t, apperrors.ErrAccountNotFound, err)
	assert.Equal(t, apperrors.ErrAccountNotFound, env.accounts.DeleteAccount(ctx, caller, acc.ID))
	assert.Equal(t, apperrors.ErrAccountNotFound, env.accounts.DeleteAccount(ctx, caller, uuid.New()))
}

func TestAccountService_ListInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	caller := env.register(t, "a@x.com")
	first := env.account(t, caller, "first")
	second := env.account(t, caller, "second")
	third := env.account(t, caller, "third")

	list, err := env.accounts.ListAccounts(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
}
