package handler

import (
	"context"
	"time"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JobCounter reports how many jobs the dataset source currently holds.
type JobCounter interface {
	Count(ctx context.Context) (int, error)
}

type HealthHandler struct {
	catalog usecase.CatalogAdminUsecase
	deps    map[string]Pinger
	source  JobCounter
}

// NewHealthHandler builds the health check. source may be nil when the
// dataset cannot be counted without loading it.
func NewHealthHandler(catalog usecase.CatalogAdminUsecase, deps map[string]Pinger, source JobCounter) *HealthHandler {
	return &HealthHandler{catalog: catalog, deps: deps, source: source}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

// Health reports 200 once the catalog is loaded. Optional dependencies that
// fail are listed but do not fail the check.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	out := dto.HealthResponse{Dependencies: map[string]string{}}
	if h.catalog != nil {
		out.Catalog = dto.FromCatalogStatus(h.catalog.Status(c.Context()))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	for name, p := range h.deps {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			out.Dependencies[name] = "unavailable"
			continue
		}
		out.Dependencies[name] = "ok"
	}
	if h.source != nil {
		if n, err := h.source.Count(ctx); err != nil {
			out.Dependencies["source"] = "unavailable"
		} else {
			out.SourceJobs = &n
		}
	}

	if !out.Catalog.Loaded {
		return response.Error(c, fiber.StatusServiceUnavailable, "catalog not loaded", out)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
