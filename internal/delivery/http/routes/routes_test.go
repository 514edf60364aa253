package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"career-match/internal/delivery/http/handler"
	"career-match/internal/delivery/http/middleware"
	v1 "career-match/internal/delivery/http/routes/v1"
	"career-match/internal/pkg/jwt"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubJWT struct {
	userID uuid.UUID
}

func (s stubJWT) ValidateToken(token string) (jwt.Claims, error) {
	if token != "good" {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	return jwt.Claims{UserID: s.userID, TokenType: jwt.TokenTypeAccess}, nil
}

type stubCatalog struct{}

func (stubCatalog) Refresh(context.Context) (usecase.CatalogInfo, error) {
	return usecase.CatalogInfo{}, usecase.ErrRefreshInProgress
}

func (stubCatalog) Current() usecase.CatalogInfo {
	return usecase.CatalogInfo{Version: "v1", Space: "s", Size: 2, Dimension: 3}
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewRegistry(
		handler.NewHealthHandler(okPinger{}, okPinger{}),
		middleware.NewAuthMiddleware(stubJWT{userID: uuid.New()}),
		v1.Handlers{Catalog: handler.NewCatalogHandler(stubCatalog{})},
	).Register(app)
	return app
}

func TestRegistry(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", want: fiber.StatusOK},
		{name: "missing token", method: http.MethodGet, path: "/api/v1/catalog", want: fiber.StatusUnauthorized},
		{name: "bad token", method: http.MethodGet, path: "/api/v1/catalog", auth: "Bearer bad", want: fiber.StatusUnauthorized},
		{name: "authorized", method: http.MethodGet, path: "/api/v1/catalog", auth: "Bearer good", want: fiber.StatusOK},
		{name: "query token", method: http.MethodGet, path: "/api/v1/catalog?access_token=good", want: fiber.StatusOK},
		{name: "refresh conflict", method: http.MethodPost, path: "/api/v1/catalog/refresh", auth: "Bearer good", want: fiber.StatusConflict},
	}

	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}
