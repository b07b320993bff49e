package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/mathplan/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct runs the "validate" tags of obj and returns the first failures as an error detail.
func ValidateStruct(obj interface{}) *dto.ErrorDetail {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	return HandleValidationError(err)
}

// HandleValidationError converts a validator error into an error detail listing every field.
func HandleValidationError(err error) *dto.ErrorDetail {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request").WithDetails(err.Error())
	}

	list := dto.NewValidationErrors()
	for _, fe := range fieldErrors {
		list.AddError(fe.Namespace(), formatValidationError(fe))
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, list.Errors[0].Message).WithDetails(list.Errors)
	if len(list.Errors) == 1 {
		detail = detail.WithField(list.Errors[0].Field)
	}
	return detail
}

// BindAndValidate decodes the JSON body into obj and validates it, writing a 400
// response and returning false on failure.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if errorDetail := ValidateStruct(obj); errorDetail != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
