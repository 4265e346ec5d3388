package v1

import (
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Recommendations *handler.RecommendationHandler
	Jobs            *handler.JobsHandler
	Auth            *handler.AuthHandler
	Admin           *handler.AdminHandler
	AdminAuth       *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Recommendations != nil {
		h.Recommendations.RegisterRoutes(r)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r)
	}
	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Admin != nil && h.AdminAuth != nil {
		admin := r.Group("/admin", h.AdminAuth.Middleware())
		h.Admin.RegisterRoutes(admin)
	}
}
