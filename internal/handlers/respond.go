package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/supertask-api/internal/errors"
	"github.com/yukikurage/supertask-api/internal/services"
	"go.uber.org/zap"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation errors under the JSON key of a field
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// bindJSON decodes the request body into req, validates it and also returns
// the raw top-level keys so callers can tell absent fields from null ones.
func bindJSON(c *gin.Context, req interface{}) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidRequestBody)
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidRequestBody)
		return nil, false
	}
	if err := json.Unmarshal(body, req); err != nil {
		apierrors.BadRequestWithDetails(c, apierrors.MsgInvalidRequestBody, decodeErrorDetails(err))
		return nil, false
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		respondValidationError(c, err)
		return nil, false
	}

	return raw, true
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(raw map[string]json.RawMessage, field string) bool {
	return bytes.Equal(bytes.TrimSpace(raw[field]), []byte("null"))
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		apierrors.BadRequest(c, apierrors.MsgInvalidRequestBody)
		return
	}

	details := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		details[fe.Field()] = fe.Tag()
	}
	apierrors.BadRequestWithDetails(c, apierrors.MsgInvalidRequestBody, details)
}

func decodeErrorDetails(err error) map[string]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{typeErr.Field: "type"}
	}
	return nil
}

// respondServiceError maps service errors to API errors
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, apierrors.MsgTaskNotFound)
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, apierrors.MsgCategoryNotFound)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, apierrors.MsgUserNotFound)

	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, apierrors.MsgTitleRequired)
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, apierrors.MsgInvalidPriority)
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, apierrors.MsgInvalidStatus)
	case errors.Is(err, services.ErrCategoryNotOwned):
		apierrors.BadRequestWithDetails(c, apierrors.MsgCategoryNotOwned, map[string]string{"category": "not_owned"})
	case errors.Is(err, services.ErrCategoryNameNotFound):
		apierrors.BadRequestWithDetails(c, apierrors.MsgCategoryNameNotFound, map[string]string{"category_name": "not_found"})
	case errors.Is(err, services.ErrInvalidCategoryFilter):
		apierrors.BadRequest(c, apierrors.MsgInvalidCategoryFilter)
	case errors.Is(err, services.ErrCategoryNameRequired):
		apierrors.BadRequest(c, apierrors.MsgCategoryNameRequired)
	case errors.Is(err, services.ErrCategoryNameTaken):
		apierrors.BadRequestWithDetails(c, apierrors.MsgCategoryNameTaken, map[string]string{"name": "unique"})

	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.BadRequest(c, apierrors.MsgCredentialsRequired)
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.BadRequestWithDetails(c, apierrors.MsgUsernameTaken, map[string]string{"username": "unique"})
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, apierrors.MsgPasswordTooShort)
	case errors.Is(err, services.ErrPasswordMismatch):
		apierrors.BadRequest(c, apierrors.MsgPasswordMismatch)
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.BadRequest(c, apierrors.MsgWrongPassword)
	case errors.Is(err, services.ErrBioTooLong):
		apierrors.BadRequest(c, apierrors.MsgBioTooLong)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, apierrors.MsgInvalidCredentials)

	default:
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		apierrors.InternalError(c, "")
	}
}
