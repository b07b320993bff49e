package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
	"github.com/yigit/mathplan/internal/pkg/logger"
)

func errorJSON(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.APIResponse{Error: detail, Timestamp: time.Now()})
}

// HandleAPIError maps service errors to HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		errorJSON(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeStudentNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrMajorNotFound):
		errorJSON(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeMajorNotFound, err.Error()).WithField("majors"))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		errorJSON(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeCourseNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		errorJSON(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		errorJSON(c, http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		errorJSON(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		errorJSON(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidStudentID):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			if custom.Code != "" {
				detail.Code = dto.ErrorCode(custom.Code)
			}
			if field, ok := custom.Details["field"].(string); ok {
				detail.Field = field
			}
			if custom.Details != nil {
				detail = detail.WithDetails(custom.Details)
			}
		}
		errorJSON(c, http.StatusBadRequest, detail)
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrResourceAlreadyExists):
		errorJSON(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()))
	case errors.Is(err, apperrors.ErrCatalogUnavailable):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Catalog unavailable")
		errorJSON(c, http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Reference catalog unavailable"))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		errorJSON(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}
