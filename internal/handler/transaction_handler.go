package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookkeeper/internal/errors"
	"bookkeeper/internal/service"
)

// TransactionHandler handles transaction endpoints.
type TransactionHandler struct {
	transactionService service.TransactionService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Description date defaults to the time of the request.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.TransactionInput true "Transaction"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req service.TransactionInput
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}
	tx, err := h.transactionService.CreateTransaction(c.Request().Context(), identity, req)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, tx)
}

// ListTransactions godoc
// @Summary List the caller's transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transaction
// @Failure 403 {object} errors.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	txs, err := h.transactionService.ListTransactions(c.Request().Context(), identity)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, txs)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} model.Transaction
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrTransactionNotFound)
	if err != nil {
		return err
	}
	tx, err := h.transactionService.GetTransaction(c.Request().Context(), identity, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, tx)
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Only the supplied fields change. A null categoryId clears the category.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body service.TransactionPatch true "Fields to change"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrTransactionNotFound)
	if err != nil {
		return err
	}
	var patch service.TransactionPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest()
	}
	tx, err := h.transactionService.UpdateTransaction(c.Request().Context(), identity, id, patch)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, tx)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrTransactionNotFound)
	if err != nil {
		return err
	}
	if err := h.transactionService.DeleteTransaction(c.Request().Context(), identity, id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
