package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.CatalogAdminUsecase
}

func NewAdminHandler(uc usecase.CatalogAdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/catalog")
	grp.Get("", h.HandleStatus)
	grp.Post("/reload", h.HandleReload)
}

func (h *AdminHandler) HandleStatus(c fiber.Ctx) error {
	st := h.uc.Status(c.Context())
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCatalogStatus(st))
}

func (h *AdminHandler) HandleReload(c fiber.Ctx) error {
	st, err := h.uc.Reload(c.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInternal) {
			return middleware.NewAppError(fiber.StatusInternalServerError, "Catalog reload failed", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, "catalog reloaded", dto.FromCatalogStatus(st))
}
