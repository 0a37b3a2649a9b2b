package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookkeeper/internal/auth"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
)

type testEnv struct {
	users        repository.UserRepository
	userSvc      UserService
	accounts     AccountService
	categories   CategoryService
	transactions TransactionService
	categoryRepo repository.CategoryRepository
	txRepo       repository.TransactionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	accountRepo := repository.NewMemoryAccountRepository()
	categoryRepo := repository.NewMemoryCategoryRepository()
	txRepo := repository.NewMemoryTransactionRepository()

	return &testEnv{
		users:        users,
		userSvc:      NewUserService(users, nil, bcrypt.MinCost),
		accounts:     NewAccountService(accountRepo, users),
		categories:   NewCategoryService(categoryRepo, users),
		transactions: NewTransactionService(txRepo, accountRepo, categoryRepo, users),
		categoryRepo: categoryRepo,
		txRepo:       txRepo,
	}
}

func (e *testEnv) register(t *testing.T, email string) auth.Identity {
	t.Helper()
	user, err := e.userSvc.CreateUser(context.Background(), CreateUserInput{Email: email, Password: "password123"})
	require.NoError(t, err)
	return auth.Identity{UserID: user.ID, Email: user.Email}
}

func (e *testEnv) account(t *testing.T, caller auth.Identity, name string) *model.Account {
	t.Helper()
	balance := model.Number(100)
	acc, err := e.accounts.CreateAccount(context.Background(), caller, AccountInput{Name: name, Type: "checking", Balance: &balance})
	require.NoError(t, err)
	return acc
}

func (e *testEnv) category(t *testing.T, caller auth.Identity, name string, parent *model.Category) *model.Category {
	t.Helper()
	in := CategoryInput{Name: name}
	if parent != nil {
		in.ParentID = &parent.ID
	}
	c, err := e.categories.CreateCategory(context.Background(), caller, in)
	require.NoError(t, err)
	return c
}

func num(f float64) *model.Number {
	n := model.Number(f)
	return &n
}
