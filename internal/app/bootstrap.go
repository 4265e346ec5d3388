package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/routes"
	v1 "skill-match/internal/delivery/http/routes/v1"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application around an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: 4 << 20,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, loads the job catalog and starts the
// websocket hub. A catalog that cannot be loaded is fatal.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if _, err := c.Catalog.Load(ctx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("load job catalog: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	deps := map[string]handler.Pinger{}
	if c.Cache != nil {
		deps["redis"] = c.Cache
	}
	if c.DB != nil {
		deps["postgres"] = c.DB
	}

	var counter handler.JobCounter
	if jc, ok := c.Source.(handler.JobCounter); ok {
		counter = jc
	}

	h := v1.Handlers{
		Recommendations: handler.NewRecommendationHandler(c.Recommender),
		Jobs:            handler.NewJobsHandler(c.JobCatalog),
		Auth:            handler.NewAuthHandler(c.Auth),
		Admin:           handler.NewAdminHandler(c.CatalogAdmin),
		AdminAuth:       middleware.NewAuthMiddleware(c.JWT, jwt.RoleAdmin),
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.CatalogAdmin, deps, counter),
		h,
		ws.NewHandler(c.Hub, c.Logger),
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
