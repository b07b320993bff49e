package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
	"github.com/yigit/mathplan/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: exp, TokenIssuer: "test"})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var body struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	if body.Error == nil {
		t.Fatalf("no error in body %q", w.Body.String())
	}
	return body.Error
}

// ---- AuthMiddleware ----

func TestJWTAuth(t *testing.T) {
	jwtSvc := newTestJWT(time.Hour)
	m := NewAuthMiddleware(jwtSvc)

	advisor, _, _ := jwtSvc.GenerateAccessToken("adv-1", auth.RoleAdvisor)
	expired, _, _ := newTestJWT(-time.Minute).GenerateAccessToken("adv-1", auth.RoleAdvisor)

	router := gin.New()
	router.GET("/plan", m.JWTAuth(), m.RoleRequired(auth.RoleAdvisor, auth.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextAdvisorID))
	})
	router.GET("/admin", m.JWTAuth(), m.RoleRequired(auth.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantErr  dto.ErrorCode
	}{
		{"missing header", "/plan", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"malformed", "/plan", "Bearer nonsense", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"expired", "/plan", "Bearer " + expired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"bearer token", "/plan", "Bearer " + advisor, http.StatusOK, ""},
		{"raw token", "/plan", advisor, http.StatusOK, ""},
		{"quoted token", "/plan", "\"Bearer " + advisor + "\"", http.StatusOK, ""},
		{"query token", "/plan?token=" + advisor, "", http.StatusOK, ""},
		{"wrong role", "/admin", "Bearer " + advisor, http.StatusForbidden, dto.ErrorCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantErr != "" {
				if got := decodeError(t, w).Code; got != tt.wantErr {
					t.Errorf("error code = %s, want %s", got, tt.wantErr)
				}
			} else if w.Body.String() != "adv-1" {
				t.Errorf("advisor = %q, want adv-1", w.Body.String())
			}
		})
	}
}

func TestRoleRequired_WithoutJWTAuth(t *testing.T) {
	m := NewAuthMiddleware(newTestJWT(time.Hour))
	router := gin.New()
	router.GET("/x", m.RoleRequired(auth.RoleAdvisor), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// ---- HandleAPIError ----

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantErr  dto.ErrorCode
	}{
		{fmt.Errorf("lookup: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeStudentNotFound},
		{fmt.Errorf("%w: XYZ", apperrors.ErrMajorNotFound), http.StatusNotFound, dto.ErrorCodeMajorNotFound},
		{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeCourseNotFound},
		{fmt.Errorf("gone: %w", apperrors.ErrResourceNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("no: %w", apperrors.ErrPermissionDenied), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.NewValidationError("majors", "majors must be unique"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewBadRequestError("odd request"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewBadRequestError("unknown variant").WithCode(string(dto.ErrorCodeUnknownVariant)), http.StatusBadRequest, dto.ErrorCodeUnknownVariant},
		{fmt.Errorf("dup: %w", apperrors.ErrConflict), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{errors.Join(apperrors.ErrCatalogUnavailable, errors.New("db down")), http.StatusServiceUnavailable, dto.ErrorCodeDatabaseError},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleAPIError(c, tt.err)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := decodeError(t, w).Code; got != tt.wantErr {
				t.Errorf("error code = %s, want %s", got, tt.wantErr)
			}
		})
	}
}

func TestHandleAPIError_CustomFieldAndDetails(t *testing.T) {
	err := apperrors.NewBadRequestError("unknown variant").
		WithCode(string(dto.ErrorCodeUnknownVariant)).
		WithDetails(map[string]interface{}{"field": "variant", "allowed": []string{"critical", "typical"}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, fmt.Errorf("plan: %w", err))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	detail := decodeError(t, w)
	if detail.Code != dto.ErrorCodeUnknownVariant {
		t.Errorf("error code = %s, want %s", detail.Code, dto.ErrorCodeUnknownVariant)
	}
	if detail.Field != "variant" {
		t.Errorf("field = %q, want variant", detail.Field)
	}
	if detail.Details == nil {
		t.Error("details dropped")
	}
}

// ---- validation ----

type sampleRequest struct {
	Majors  []string `json:"majors" validate:"required,min=1"`
	Variant string   `json:"variant" validate:"omitempty,oneof=critical typical"`
}

func TestHandleValidationError(t *testing.T) {
	detail := ValidateStruct(sampleRequest{Variant: "bogus"})
	if detail == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	list, ok := detail.Details.([]dto.ErrorDetail)
	if !ok || len(list) != 2 {
		t.Fatalf("details = %#v, want two field errors", detail.Details)
	}
	if list[0].Message != "Majors is required" {
		t.Errorf("message = %q", list[0].Message)
	}

	if ValidateStruct(sampleRequest{Majors: []string{"BIO"}, Variant: "critical"}) != nil {
		t.Error("valid request rejected")
	}
}

func TestBindAndValidate(t *testing.T) {
	router := gin.New()
	router.POST("/x", func(c *gin.Context) {
		var req sampleRequest
		if !BindAndValidate(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		body string
		want int
	}{
		{`{"majors":["BIO"]}`, http.StatusNoContent},
		{`{"majors":[]}`, http.StatusBadRequest},
		{`{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("body %s: status = %d, want %d", tt.body, w.Code, tt.want)
		}
	}
}

// ---- request id and logging ----

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(zerolog.Nop()))
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" || generated != w.Body.String() {
		t.Errorf("generated id = %q, body = %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("propagated id = %q, want abc-123", got)
	}
}
