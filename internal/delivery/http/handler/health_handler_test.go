package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type stubCatalogAdmin struct {
	status usecase.CatalogStatus
}

func (s stubCatalogAdmin) Status(context.Context) usecase.CatalogStatus { return s.status }

func (s stubCatalogAdmin) Reload(context.Context) (usecase.CatalogStatus, error) {
	return s.status, nil
}

type stubCounter struct {
	n   int
	err error
}

func (s stubCounter) Count(context.Context) (int, error) { return s.n, s.err }

func getHealth(t *testing.T, h *HealthHandler) (int, dto.HealthResponse) {
	t.Helper()

	app := fiber.New()
	h.RegisterRoutes(app)
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Data dto.HealthResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, body.Data
}

func TestHealth_ReportsSourceJobCount(t *testing.T) {
	admin := stubCatalogAdmin{status: usecase.CatalogStatus{Loaded: true, Source: "postgres", Jobs: 5}}

	status, out := getHealth(t, NewHealthHandler(admin, nil, stubCounter{n: 7}))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if out.SourceJobs == nil || *out.SourceJobs != 7 {
		t.Fatalf("source_jobs = %v, want 7", out.SourceJobs)
	}
	if out.Catalog.Jobs != 5 {
		t.Fatalf("catalog jobs = %d", out.Catalog.Jobs)
	}
}

func TestHealth_SourceCountFailureIsNotFatal(t *testing.T) {
	admin := stubCatalogAdmin{status: usecase.CatalogStatus{Loaded: true, Jobs: 5}}

	status, out := getHealth(t, NewHealthHandler(admin, nil, stubCounter{err: errors.New("down")}))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if out.SourceJobs != nil || out.Dependencies["source"] != "unavailable" {
		t.Fatalf("unexpected health %+v", out)
	}
}

func TestHealth_WithoutCounter(t *testing.T) {
	status, out := getHealth(t, NewHealthHandler(stubCatalogAdmin{}, nil, nil))
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before load, got %d", status)
	}
	if out.SourceJobs != nil {
		t.Fatalf("source_jobs should be absent without a counter")
	}
}
