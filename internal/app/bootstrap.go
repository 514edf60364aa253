package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-match/internal/config"
	"career-match/internal/delivery/http/handler"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/delivery/http/routes"
	v1 "career-match/internal/delivery/http/routes/v1"
	"career-match/internal/pkg/jwt"
	"career-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// stops the websocket hub and releases the container.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	c.LoadCatalog(ctx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	registerGlobalMiddleware(f, c.Log)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	auth := middleware.NewAuthMiddleware(jwt.NewHMACService(c.Config.JWT.AccessSecret))

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		auth,
		v1.Handlers{
			Catalog:  handler.NewCatalogHandler(c.CatalogUC),
			Profile:  handler.NewProfileHandler(c.ProfileUC),
			Match:    handler.NewMatchHandler(c.MatchingUC),
			Gap:      handler.NewGapHandler(c.GapUC, c.RoadmapUC),
			Attempt:  handler.NewAttemptHandler(c.AttemptUC),
			Report:   handler.NewReportHandler(c.ReportUC),
			Realtime: ws.NewHandler(c.Hub, c.Log),
		},
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
