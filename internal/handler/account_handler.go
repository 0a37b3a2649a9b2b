package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookkeeper/internal/errors"
	"bookkeeper/internal/service"
)

// AccountHandler handles account endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount godoc
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.AccountInput true "Account"
// @Success 201 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req service.AccountInput
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}
	account, err := h.accountService.CreateAccount(c.Request().Context(), identity, req)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, account)
}

// ListAccounts godoc
// @Summary List the caller's accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	accounts, err := h.accountService.ListAccounts(c.Request().Context(), identity)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrAccountNotFound)
	if err != nil {
		return err
	}
	account, err := h.accountService.GetAccount(c.Request().Context(), identity, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateAccount godoc
// @Summary Update an account
// @Description Only the supplied fields change.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body service.AccountPatch true "Fields to change"
// @Success 200 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrAccountNotFound)
	if err != nil {
		return err
	}
	var patch service.AccountPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest()
	}
	account, err := h.accountService.UpdateAccount(c.Request().Context(), identity, id, patch)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteAccount godoc
// @Summary Delete an account
// @Tags accounts
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrAccountNotFound)
	if err != nil {
		return err
	}
	if err := h.accountService.DeleteAccount(c.Request().Context(), identity, id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
