package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/dto"
	apierrors "github.com/yukikurage/supertask-api/internal/errors"
	"github.com/yukikurage/supertask-api/internal/middleware"
	"github.com/yukikurage/supertask-api/internal/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns the current user's categories ordered by name
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateCategoryRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	input := services.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
	}
	if req.Color != nil {
		input.Color = *req.Color
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// GetCategory returns a category loaded by RequireCategoryOwnership
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	category, ok := middleware.GetCategory(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	result, err := h.categoryService.GetCategory(c.Request.Context(), userID, category.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*result))
}

// ReplaceCategory handles PUT: name is required
func (h *CategoryHandler) ReplaceCategory(c *gin.Context) {
	h.updateCategory(c, true)
}

// UpdateCategory handles PATCH
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	h.updateCategory(c, false)
}

func (h *CategoryHandler) updateCategory(c *gin.Context, requireName bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	category, ok := middleware.GetCategory(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var req dto.UpdateCategoryRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	if (requireName || hasJSONField(raw, "name")) && req.Name == nil {
		apierrors.BadRequest(c, apierrors.MsgCategoryNameRequired)
		return
	}

	result, err := h.categoryService.UpdateCategory(c.Request.Context(), userID, category.ID, services.UpdateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*result))
}

// DeleteCategory deletes a category; its tasks are kept without a category
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	category, ok := middleware.GetCategory(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), userID, category.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
