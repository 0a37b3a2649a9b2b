package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookkeeper/internal/auth"
	"bookkeeper/internal/errors"
	"bookkeeper/internal/handler"
	"bookkeeper/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	User        *handler.UserHandler
	Auth        *handler.AuthHandler
	Account     *handler.AccountHandler
	Category    *handler.CategoryHandler
	Transaction *handler.TransactionHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, h Handlers, authService service.AuthService) {
	e.HTTPErrorHandler = httpErrorHandler
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, World!")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/users", h.User.CreateUser)
	e.POST("/auth", h.Auth.Login)

	// Everything else needs a bearer token; the verified identity is the only source of the owner.
	requireIdentity := RequireIdentity(authService)

	e.GET("/users", h.User.ListUsers, requireIdentity)
	e.GET("/users/:id", h.User.GetUser, requireIdentity)
	e.PUT("/users/:id", h.User.UpdateUser, requireIdentity)
	e.DELETE("/users/:id", h.User.DeleteUser, requireIdentity)

	accounts := e.Group("/accounts", requireIdentity)
	accounts.POST("", h.Account.CreateAccount)
	accounts.GET("", h.Account.ListAccounts)
	accounts.GET("/:id", h.Account.GetAccount)
	accounts.PUT("/:id", h.Account.UpdateAccount)
	accounts.DELETE("/:id", h.Account.DeleteAccount)

	categories := e.Group("/categories", requireIdentity)
	categories.POST("", h.Category.CreateCategory)
	categories.GET("", h.Category.ListCategories)
	categories.GET("/:id", h.Category.GetCategory)
	categories.PUT("/:id", h.Category.UpdateCategory)
	categories.DELETE("/:id", h.Category.DeleteCategory)

	transactions := e.Group("/transactions", requireIdentity)
	transactions.POST("", h.Transaction.CreateTransaction)
	transactions.GET("", h.Transaction.ListTransactions)
	transactions.GET("/:id", h.Transaction.GetTransaction)
	transactions.PUT("/:id", h.Transaction.UpdateTransaction)
	transactions.DELETE("/:id", h.Transaction.DeleteTransaction)
}

// RequireIdentity verifies the bearer token and stores the auth.Identity under
// auth.ContextKey. A missing, malformed, forged or expired token yields 403.
func RequireIdentity(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: errors.ErrAccessDenied.Message,
				Code:  "ACCESS_DENIED",
			})
		},
	})
}

// httpErrorHandler renders framework errors (unknown routes, recovered panics,
// encoding failures) in the same {"error","code"} shape as domain errors.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	var body errors.ErrorResponse
	if he, ok := err.(*echo.HTTPError); ok {
		if inner, ok := he.Internal.(*echo.HTTPError); ok {
			he = inner
		}
		status = he.Code
		switch m := he.Message.(type) {
		case errors.ErrorResponse:
			body = m
		case string:
			body = errors.ErrorResponse{Error: m}
		default:
			body = errors.ErrorResponse{Error: http.StatusText(he.Code)}
		}
	} else {
		httpErr := errors.MapErrorToHTTP(err)
		status, body = httpErr.StatusCode, httpErr.ToErrorResponse()
	}

	if status >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}
