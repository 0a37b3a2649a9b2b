package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookkeeper/internal/errors"
	"bookkeeper/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// CreateUser godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.CreateUserInput true "Credentials"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req service.CreateUserInput
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}
	user, err := h.svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, UserResponse{ID: user.ID, Email: user.Email})
}

// ListUsers godoc
// @Summary List users visible to the caller
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	users, err := h.svc.ListUsers(c.Request().Context(), identity)
	if err != nil {
		return errorResponse(err)
	}
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{ID: u.ID, Email: u.Email})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrAccessDenied)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), identity, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UserResponse{ID: user.ID, Email: user.Email})
}

// UpdateUser godoc
// @Summary Update the caller's email or password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body service.UserPatch true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrAccessDenied)
	if err != nil {
		return err
	}
	var patch service.UserPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest()
	}
	user, err := h.svc.UpdateUser(c.Request().Context(), identity, id, patch)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UserResponse{ID: user.ID, Email: user.Email})
}

// DeleteUser godoc
// @Summary Delete the caller's user record
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrAccessDenied)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), identity, id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
