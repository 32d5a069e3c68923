package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/constants"
	apierrors "github.com/yukikurage/supertask-api/internal/errors"
	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequireTaskOwnership loads the task in :id for the current user. A task of
// another user is reported as not found.
func RequireTaskOwnership(taskRepo repository.TaskRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := parseIDParam(c, apierrors.MsgInvalidTaskID)
		if !ok {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := taskRepo.FindOwned(c.Request.Context(), userID, taskID)
		if err != nil {
			abortLookup(c, err, apierrors.MsgTaskNotFound, "task")
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}

// RequireCategoryOwnership loads the category in :id for the current user. A
// category of another user is reported as not found.
func RequireCategoryOwnership(categoryRepo repository.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := parseIDParam(c, apierrors.MsgInvalidCategoryID)
		if !ok {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		category, err := categoryRepo.FindOwned(c.Request.Context(), userID, categoryID)
		if err != nil {
			abortLookup(c, err, apierrors.MsgCategoryNotFound, "category")
			return
		}

		c.Set(constants.ContextKeyCategory, *category)
		c.Next()
	}
}

// GetTask returns the task loaded by RequireTaskOwnership
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}

// GetCategory returns the category loaded by RequireCategoryOwnership
func GetCategory(c *gin.Context) (models.Category, bool) {
	value, exists := c.Get(constants.ContextKeyCategory)
	if !exists {
		return models.Category{}, false
	}
	category, ok := value.(models.Category)
	return category, ok
}

func parseIDParam(c *gin.Context, invalidMsgID string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, invalidMsgID)
		c.Abort()
		return 0, false
	}
	return id, true
}

func abortLookup(c *gin.Context, err error, notFoundMsgID, resource string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		apierrors.NotFound(c, notFoundMsgID)
		c.Abort()
		return
	}

	zap.L().Error("failed to load resource", zap.String("resource", resource), zap.Error(err))
	apierrors.InternalError(c, "")
	c.Abort()
}
