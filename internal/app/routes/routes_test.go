package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/mathplan/internal/app/controllers"
	"github.com/yigit/mathplan/internal/middleware"
	"github.com/yigit/mathplan/internal/pkg/auth"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})

	router := gin.New()
	SetupRouter(router,
		controllers.NewCatalogController(nil),
		controllers.NewPlanController(nil),
		controllers.NewStudentController(nil),
		middleware.NewAuthMiddleware(jwtSvc),
	)

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/health",
		"GET /api/v1/courses",
		"GET /api/v1/courses/:id",
		"GET /api/v1/course-groups",
		"GET /api/v1/majors",
		"GET /api/v1/majors/:code",
		"GET /api/v1/students/:id/plan",
		"GET /api/v1/students/:id/record",
		"PUT /api/v1/students/:id/record",
		"POST /api/v1/plans/preview",
		"POST /api/v1/catalog/reload",
	} {
		if !registered[want] {
			t.Errorf("route %s not registered", want)
		}
	}

	advisor, _, _ := jwtSvc.GenerateAccessToken("adv-1", auth.RoleAdvisor)

	tests := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{http.MethodGet, "/api/v1/students/s1/plan", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/plans/preview", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/catalog/reload", advisor, http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		if tt.token != "" {
			req.Header.Set("Authorization", "Bearer "+tt.token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}
