package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"bookkeeper/docs"
	"bookkeeper/internal/auth"
	"bookkeeper/internal/cache"
	"bookkeeper/internal/config"
	"bookkeeper/internal/db"
	"bookkeeper/internal/handler"
	"bookkeeper/internal/repository"
	"bookkeeper/internal/router"
	"bookkeeper/internal/service"
)

type repositories struct {
	users        repository.UserRepository
	accounts     repository.AccountRepository
	categories   repository.CategoryRepository
	transactions repository.TransactionRepository
}

// @title Bookkeeper API
// @version 1.0
// @description Personal bookkeeping API with accounts, nested categories, transactions and JWT authentication.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	repos, err := openRepositories(cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient != nil {
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Printf("Warning: redis unreachable, continuing without cache hits: %v", err)
		}
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	userService := service.NewUserService(repos.users, cacheClient, cfg.BcryptCost)
	authService, err := service.NewAuthService(repos.users, jwtService, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("auth init: %v", err)
	}
	accountService := service.NewAccountService(repos.accounts, repos.users)
	categoryService := service.NewCategoryService(repos.categories, repos.users)
	transactionService := service.NewTransactionService(repos.transactions, repos.accounts, repos.categories, repos.users)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		User:        handler.NewUserHandler(userService),
		Auth:        handler.NewAuthHandler(authService),
		Account:     handler.NewAccountHandler(accountService),
		Category:    handler.NewCategoryHandler(categoryService),
		Transaction: handler.NewTransactionHandler(transactionService),
	}, authService)

	docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include a scheme
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Printf("Server listening on %s (storage=%s)", addr, cfg.StorageDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func openRepositories(cfg *config.Config) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return repositories{}, err
		}
		if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
			return repositories{}, err
		}
		return repositories{
			users:        repository.NewUserRepository(gormDB),
			accounts:     repository.NewAccountRepository(gormDB),
			categories:   repository.NewCategoryRepository(gormDB),
			transactions: repository.NewTransactionRepository(gormDB),
		}, nil
	case config.StorageMemory:
		return repositories{
			users:        repository.NewMemoryUserRepository(),
			accounts:     repository.NewMemoryAccountRepository(),
			categories:   repository.NewMemoryCategoryRepository(),
			transactions: repository.NewMemoryTransactionRepository(),
		}, nil
	default:
		return repositories{}, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}
