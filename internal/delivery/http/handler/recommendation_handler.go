package handler

import (
	"errors"
	"io"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/resume"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const maxResumeBytes = 2 << 20

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/recommendations")
	grp.Get("", h.Recommend)
	grp.Post("", h.RecommendJSON)
	grp.Post("/resume", h.RecommendFromResume)
}

// Recommend handles GET /recommendations?skills=python,sql.
func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	minPercent, err := parseQueryFloatStrict(c, "min_percent", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	all, err := parseQueryBoolOpt(c, "all")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	sim, err := parseQueryBoolOpt(c, "similarity")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.uc.Recommend(c.Context(), usecase.RecommendParams{
		Raw:        c.Query("skills"),
		Limit:      limit,
		All:        all != nil && *all,
		MinPercent: minPercent,
		Similarity: sim,
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRecommendation(rec))
}

func (h *RecommendationHandler) RecommendJSON(c fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.uc.Recommend(c.Context(), usecase.RecommendParams{
		Skills:     req.SkillList,
		Raw:        req.Skills,
		Limit:      req.Limit,
		All:        req.All,
		MinPercent: req.MinPercent,
		Similarity: req.Similarity,
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRecommendation(rec))
}

// RecommendFromResume handles a multipart upload with the file in "resume".
func (h *RecommendationHandler) RecommendFromResume(c fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file is required", nil, err)
	}
	if fh.Size > maxResumeBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume file too large", nil, nil)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	all, err := parseQueryBoolOpt(c, "all")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file unreadable", nil, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxResumeBytes))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file unreadable", nil, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = resume.ContentTypeForName(fh.Filename)
	}

	rec, err := h.uc.RecommendFromResume(c.Context(), usecase.ResumeParams{
		ContentType: contentType,
		Data:        data,
		Limit:       limit,
		All:         all != nil && *all,
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	out := dto.ResumeRecommendationResponse{
		ExtractedSkills:        rec.ExtractedSkills,
		RecommendationResponse: dto.FromRecommendation(rec.Recommendation),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrNoSkillsProvided):
		return middleware.NewAppError(fiber.StatusBadRequest, "No input provided", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, resume.ErrUnsupportedDocument):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported resume format, upload a .txt, .md or .html file", nil, err)
	case errors.Is(err, usecase.ErrDocumentUnreadable):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume could not be read", nil, err)
	case errors.Is(err, usecase.ErrNoJobsFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No jobs found", nil, err)
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Job catalog not loaded", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
