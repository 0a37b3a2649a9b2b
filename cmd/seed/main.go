package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookkeeper/internal/auth"
	"bookkeeper/internal/config"
	"bookkeeper/internal/db"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
	"bookkeeper/internal/service"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password"
)

type seedAccount struct {
	Name    string
	Type    string
	Balance string
}

type seedCategory struct {
	Name     string
	Children []seedCategory
}

type seedTransaction struct {
	Account  string
	Category string
	Amount   string
	Type     string
	DaysAgo  int
	Note     string
}

var (
	accounts = []seedAccount{
		{Name: "Checking", Type: "checking", Balance: "2450.00"},
		{Name: "Savings", Type: "savings", Balance: "10000.00"},
		{Name: "Credit Card", Type: "credit", Balance: "-320.45"},
	}

	categories = []seedCategory{
		{Name: "Income", Children: []seedCategory{{Name: "Salary"}, {Name: "Interest"}}},
		{Name: "Food", Children: []seedCategory{
			{Name: "Groceries"},
			{Name: "Dining Out", Children: []seedCategory{{Name: "Coffee"}}},
		}},
		{Name: "Housing", Children: []seedCategory{{Name: "Rent"}, {Name: "Utilities"}}},
	}

	transactions = []seedTransaction{
		{Account: "Checking", Category: "Salary", Amount: "3200.00", Type: "deposit", DaysAgo: 14, Note: "Monthly salary"},
		{Account: "Checking", Category: "Rent", Amount: "1200.00", Type: "withdrawal", DaysAgo: 13, Note: "Rent"},
		{Account: "Credit Card", Category: "Groceries", Amount: "84.12", Type: "withdrawal", DaysAgo: 6},
		{Account: "Credit Card", Category: "Coffee", Amount: "4.50", Type: "withdrawal", DaysAgo: 2},
		{Account: "Savings", Category: "Interest", Amount: "12.33", Type: "deposit", DaysAgo: 1},
		{Account: "Checking", Category: "", Amount: "40.00", Type: "withdrawal", DaysAgo: 0, Note: "Cash"},
	}
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	txRepo := repository.NewTransactionRepository(gormDB)

	users := service.NewUserService(userRepo, nil, cfg.BcryptCost)
	accountService := service.NewAccountService(accountRepo, userRepo)
	categoryService := service.NewCategoryService(categoryRepo, userRepo)
	transactionService := service.NewTransactionService(txRepo, accountRepo, categoryRepo, userRepo)

	ctx := context.Background()
	user, err := users.CreateUser(ctx, service.CreateUserInput{Email: demoEmail, Password: demoPassword})
	if errors.Is(err, apperrors.ErrEmailExists) {
		log.Printf("User %s already exists, nothing to seed (run with RESET_DB=true to start over)", demoEmail)
		return
	}
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	owner := auth.Identity{UserID: user.ID, Email: user.Email}

	accountIDs, err := seedAccounts(ctx, accountService, owner)
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}

	categoryIDs := make(map[string]uuid.UUID)
	if err := seedCategories(ctx, categoryService, owner, categories, nil, categoryIDs); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	created, err := seedTransactions(ctx, transactionService, owner, accountIDs, categoryIDs)
	if err != nil {
		log.Fatalf("Failed to seed transactions: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Login: %s / %s", demoEmail, demoPassword)
	log.Printf("  - Accounts created: %d", len(accountIDs))
	log.Printf("  - Categories created: %d", len(categoryIDs))
	log.Printf("  - Transactions created: %d", created)
}

func parseAmount(s string) (*model.Number, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	n := model.Number(d.InexactFloat64())
	return &n, nil
}

func seedAccounts(ctx context.Context, svc service.AccountService, owner auth.Identity) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(accounts))
	for _, a := range accounts {
		balance, err := parseAmount(a.Balance)
		if err != nil {
			return ids, err
		}
		acc, err := svc.CreateAccount(ctx, owner, service.AccountInput{Name: a.Name, Type: a.Type, Balance: balance})
		if err != nil {
			return ids, fmt.Errorf("error creating account %s: %w", a.Name, err)
		}
		ids[a.Name] = acc.ID
	}
	return ids, nil
}

// seedCategories creates the forest parents first, recording every id by name.
func seedCategories(ctx context.Context, svc service.CategoryService, owner auth.Identity, nodes []seedCategory, parent *uuid.UUID, ids map[string]uuid.UUID) error {
	for _, node := range nodes {
		c, err := svc.CreateCategory(ctx, owner, service.CategoryInput{Name: node.Name, ParentID: parent})
		if err != nil {
			return fmt.Errorf("error creating category %s: %w", node.Name, err)
		}
		ids[node.Name] = c.ID
		if err := seedCategories(ctx, svc, owner, node.Children, &c.ID, ids); err != nil {
			return err
		}
	}
	return nil
}

func seedTransactions(ctx context.Context, svc service.TransactionService, owner auth.Identity, accountIDs, categoryIDs map[string]uuid.UUID) (int, error) {
	now := time.Now().UTC()
	created := 0
	for _, t := range transactions {
		amount, err := parseAmount(t.Amount)
		if err != nil {
			return created, err
		}
		date := now.AddDate(0, 0, -t.DaysAgo)
		in := service.TransactionInput{
			AccountID:   accountIDs[t.Account],
			Amount:      amount,
			Type:        t.Type,
			Date:        &date,
			Description: t.Note,
		}
		if id, ok := categoryIDs[t.Category]; ok {
			in.CategoryID = &id
		}
		if _, err := svc.CreateTransaction(ctx, owner, in); err != nil {
			return created, fmt.Errorf("error creating transaction %q: %w", t.Note, err)
		}
		created++
	}
	return created, nil
}
