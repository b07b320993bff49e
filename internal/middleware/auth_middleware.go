package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
	"github.com/yigit/mathplan/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextAdvisorID = "advisorID"
	ContextRole      = "role"
	ContextTokenID   = "tokenID"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Browser downloads of a plan cannot set headers
		if authHeader == "" {
			authHeader = c.Query("token")
		}

		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		// Some clients wrap the header value in quotes
		authHeader = strings.Trim(authHeader, "\"'")

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil || strings.Count(tokenString, ".") != 2 {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			abortUnauthorized(c, errorCode, errorDetails)
			return
		}

		c.Set(ContextAdvisorID, claims.AdvisorID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)

		c.Next()
	}
}

// RoleRequired middleware to check if the caller has one of the allowed roles
func (m *AuthMiddleware) RoleRequired(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Role not found")
			return
		}

		roleStr, _ := role.(string)
		for _, r := range allowed {
			if roleStr == r {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}
