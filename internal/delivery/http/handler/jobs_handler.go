package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobCatalogUsecase
}

func NewJobsHandler(uc usecase.JobCatalogUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("", h.HandleListJobs)
	grp.Get("/:job_id/match", h.HandleMatchJob)
	grp.Get("/:job_id/similar", h.HandleSimilarJobs)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	page, err := h.uc.ListJobs(c.Context(), limit, offset)
	if err != nil {
		return mapJobCatalogUsecaseError(err)
	}

	out := dto.JobListResponse{
		Jobs:   make([]dto.JobResponse, 0, len(page.Jobs)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, it := range page.Jobs {
		out.Jobs = append(out.Jobs, dto.FromJobItem(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) HandleMatchJob(c fiber.Ctx) error {
	jobID, err := parseParamInt(c, "job_id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	res, err := h.uc.MatchJob(c.Context(), jobID, nil, c.Query("skills"))
	if err != nil {
		return mapJobCatalogUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRecommendedJob(res))
}

func (h *JobsHandler) HandleSimilarJobs(c fiber.Ctx) error {
	jobID, err := parseParamInt(c, "job_id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.SimilarJobs(c.Context(), jobID, limit)
	if err != nil {
		return mapJobCatalogUsecaseError(err)
	}

	out := make([]dto.SimilarJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SimilarJobResponse{JobResponse: dto.FromJobItem(it.JobItem), Similarity: it.Similarity})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapJobCatalogUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNoSkillsProvided):
		return middleware.NewAppError(fiber.StatusBadRequest, "No input provided", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Job catalog not loaded", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
