package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookkeeper/internal/errors"
	"bookkeeper/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CategoryInput true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req service.CategoryInput
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}
	category, err := h.categoryService.CreateCategory(c.Request().Context(), identity, req)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// ListCategories godoc
// @Summary List the caller's categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	categories, err := h.categoryService.ListCategories(c.Request().Context(), identity)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrCategoryNotFound)
	if err != nil {
		return err
	}
	category, err := h.categoryService.GetCategory(c.Request().Context(), identity, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary Rename or move a category
// @Description A null parentId moves the category to the root.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body service.CategoryPatch true "Fields to change"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrCategoryNotFound)
	if err != nil {
		return err
	}
	var patch service.CategoryPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest()
	}
	category, err := h.categoryService.UpdateCategory(c.Request().Context(), identity, id, patch)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category and all of its descendants
// @Tags categories
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrCategoryNotFound)
	if err != nil {
		return err
	}
	removed, err := h.categoryService.CascadeDelete(c.Request().Context(), identity, id)
	if err != nil {
		return errorResponse(err)
	}
	c.Logger().Infof("category %s deleted with %d descendants", id, removed-1)
	return c.NoContent(http.StatusNoContent)
}
