package usecase

import "errors"

var (
	ErrNoSkillsProvided   = errors.New("no input provided")
	ErrNoJobsFound        = errors.New("No jobs found")
	ErrJobNotFound        = errors.New("Job not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDocumentUnreadable = errors.New("document could not be read")
	ErrCatalogUnavailable = errors.New("job catalog unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternal           = errors.New("internal error")
)
