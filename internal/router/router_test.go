package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.SetLogger(zap.NewNop())
	return NewRouter(Handlers{}, middleware.NewJWTMiddleware(nil), nil, &config.Config{}).SetupRoutes()
}

func TestRoutesRegistered(t *testing.T) {
	engine := newTestEngine()

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/account",
		"GET /api/v1/users",
		"PATCH /api/v1/users/:id",
		"DELETE /api/v1/users/me/cvs/:index",
		"GET /api/v1/roles/:id",
		"POST /api/v1/roles",
		"PATCH /api/v1/roles/:id",
		"DELETE /api/v1/roles/:id",
		"GET /api/v1/companies",
		"GET /api/v1/companies/:id",
		"GET /api/v1/skills",
		"POST /api/v1/categories",
		"GET /api/v1/jobs/search",
		"GET /api/v1/jobs/by-company/:companyId",
		"GET /api/v1/jobs/by-category/:categoryId",
		"POST /api/v1/jobs/by-skills",
		"GET /api/v1/jobs/:id/similar",
		"DELETE /api/v1/jobs/:id",
		"POST /api/v1/applications",
		"GET /api/v1/applications/by-job/:jobId",
		"GET /api/v1/applications/by-user",
		"PATCH /api/v1/applications/:id/status",
		"GET /api/v1/blogs",
		"GET /api/v1/blogs/tags/:tags",
		"GET /api/v1/blogs/tag/:tag",
		"GET /api/v1/blogs/:id",
		"POST /api/v1/blogs",
		"DELETE /api/v1/blogs/:id",
	}
	for _, route := range expected {
		if !registered[route] {
			t.Errorf("Expected route %s to be registered", route)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestEngine()

	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/jobs"},
		{http.MethodGet, "/api/v1/companies"},
		{http.MethodPost, "/api/v1/skills"},
		{http.MethodGet, "/api/v1/users/me/cvs"},
		{http.MethodGet, "/api/v1/applications"},
		{http.MethodPost, "/api/v1/blogs"},
		{http.MethodPost, "/api/v1/roles"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tt.method, tt.path, w.Code)
		}
	}
}
