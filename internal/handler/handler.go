package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookkeeper/internal/auth"
	"bookkeeper/internal/errors"
)

// errorResponse converts a domain error into the echo error carrying the JSON body.
func errorResponse(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_BODY",
	})
}

// caller returns the identity the JWT middleware stored on the context.
func caller(c echo.Context) (auth.Identity, error) {
	identity, ok := c.Get(auth.ContextKey).(auth.Identity)
	if !ok {
		return auth.Identity{}, errorResponse(errors.ErrAccessDenied)
	}
	return identity, nil
}

// pathID parses the :id parameter; a malformed id is reported as notFound.
func pathID(c echo.Context, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errorResponse(notFound)
	}
	return id, nil
}
