package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/constants"
	"github.com/yukikurage/supertask-api/internal/translator"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Message IDs, resolved through the translator
const (
	MsgUnauthorized       = "unauthorized"
	MsgForbidden          = "forbidden"
	MsgNotFound           = "notFound"
	MsgInvalidInput       = "invalidInput"
	MsgInvalidRequestBody = "invalidRequestBody"
	MsgInternalError      = "internalError"
	MsgServiceUnavailable = "serviceUnavailable"

	MsgInvalidCredentials  = "invalidCredentials"
	MsgCredentialsRequired = "credentialsRequired"
	MsgUsernameTaken       = "usernameTaken"
	MsgPasswordMismatch    = "passwordMismatch"
	MsgPasswordTooShort    = "passwordTooShort"
	MsgWrongPassword       = "wrongPassword"
	MsgUserNotFound        = "userNotFound"
	MsgBioTooLong          = "bioTooLong"

	MsgCategoryNotFound     = "categoryNotFound"
	MsgInvalidCategoryID    = "invalidCategoryID"
	MsgCategoryNameRequired = "categoryNameRequired"
	MsgCategoryNameTaken    = "categoryNameTaken"

	MsgTaskNotFound          = "taskNotFound"
	MsgInvalidTaskID         = "invalidTaskID"
	MsgTitleRequired         = "titleRequired"
	MsgInvalidDueDate        = "invalidDueDate"
	MsgInvalidPriority       = "invalidPriority"
	MsgInvalidStatus         = "invalidStatus"
	MsgCategoryNotOwned      = "categoryNotOwned"
	MsgCategoryNameNotFound  = "categoryNameNotFound"
	MsgInvalidCategoryFilter = "invalidCategoryFilter"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// localize resolves msgID for the request language, or fallbackID when msgID
// is empty.
func localize(c *gin.Context, msgID, fallbackID string) string {
	if msgID == "" {
		msgID = fallbackID
	}
	lang := c.GetString(constants.ContextKeyLanguage)
	if lang == "" {
		lang = translator.LanguageEn
	}
	return translator.Localize(lang, msgID)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, msgID string) {
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, localize(c, msgID, MsgUnauthorized)))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, msgID string) {
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, localize(c, msgID, MsgForbidden)))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, msgID string) {
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, localize(c, msgID, MsgNotFound)))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, msgID string) {
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, localize(c, msgID, MsgInvalidInput)))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, msgID string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, localize(c, msgID, MsgInvalidInput), details))
}

// InternalError sends a 500 response. Callers log the cause; it is never sent.
func InternalError(c *gin.Context, msgID string) {
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, localize(c, msgID, MsgInternalError)))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, msgID string) {
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, localize(c, msgID, MsgServiceUnavailable)))
}
