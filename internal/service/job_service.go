package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gradhunt/gradboard-backend/internal/model"
	"github.com/gradhunt/gradboard-backend/internal/repository"
)

// Job errors surfaced to handlers.
var (
	ErrJobNotFound = errors.New("job not found")
)

// Listing page size bounds.
const (
	defaultPageSize = 20
	maxPageSize     = 500
)

// JobStore is the persistence surface the service needs. Satisfied by
// repository.JobRepository; tests substitute a fake.
type JobStore interface {
	ListPaginated(ctx context.Context, f repository.JobFilter, limit, offset int) ([]model.Job, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	Create(ctx context.Context, j *model.Job) error
	Update(ctx context.Context, id uuid.UUID, p model.JobPatch) (*model.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssetSigner mints short-lived retrieval URLs for stored logo paths.
type AssetSigner interface {
	SignedURL(path string, ttl time.Duration) (string, error)
}

// JobService orchestrates listing CRUD, moderation visibility and field
// normalization.
type JobService struct {
	jobs     JobStore
	signer   AssetSigner
	assetTTL time.Duration
	log      zerolog.Logger
}

// NewJobService creates a new JobService.
func NewJobService(jobs JobStore, signer AssetSigner, assetTTL time.Duration, log zerolog.Logger) *JobService {
	return &JobService{
		jobs:     jobs,
		signer:   signer,
		assetTTL: assetTTL,
		log:      log.With().Str("component", "job_service").Logger(),
	}
}

// PageWindow resolves the pagination parameters of a list query: the page
// size is clamped to [1, 500] with a default of 20, and an explicit offset
// wins over the 1-based page number.
func PageWindow(q model.JobListQuery) (limit, offset int) {
	limit = q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if q.Offset != nil {
		offset = *q.Offset
		if offset < 0 {
			offset = 0
		}
		return limit, offset
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// List returns listings matching the query, newest first. Public callers
// only ever see published listings; privileged callers may filter by any
// status. Stored logo paths are resolved to signed URLs on the way out.
func (s *JobService) List(ctx context.Context, q model.JobListQuery, privileged bool) ([]model.Job, int, error) {
	filter := repository.JobFilter{
		Query:      q.Q,
		Role:       q.Role,
		Location:   q.Location,
		Kind:       q.Kind,
		Passout:    q.Passout,
		Status:     q.Status,
		Privileged: privileged,
	}

	limit, offset := PageWindow(q)

	jobs, total, err := s.jobs.ListPaginated(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error().Err(err).Msg("list jobs failed")
		return nil, 0, err
	}

	for i := range jobs {
		s.resolveLogo(&jobs[i])
	}
	return jobs, total, nil
}

// GetByID returns one listing, applying the same visibility rule as List:
// non-privileged callers cannot observe pending or rejected listings.
func (s *JobService) GetByID(ctx context.Context, id uuid.UUID, privileged bool) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		s.log.Error().Err(err).Str("job_id", id.String()).Msg("get job failed")
		return nil, err
	}
	if !privileged && job.Status != model.JobStatusPublished {
		return nil, ErrJobNotFound
	}
	s.resolveLogo(job)
	return job, nil
}

// Create stores a new listing. Anonymous submissions are always forced to
// pending; privileged submissions default to published unless an explicit
// status is given. The creation timestamp comes from the store, never the
// payload.
func (s *JobService) Create(ctx context.Context, req model.CreateJobRequest, privileged bool) (*model.Job, error) {
	status := model.JobStatusPending
	if privileged {
		status = model.JobStatusPublished
		if req.Status != "" {
			status = model.JobStatus(req.Status)
		}
	}

	kind := req.Kind
	if kind == "" {
		kind = string(model.JobKindJob)
	}
	normalizedKind, _ := model.NormalizeKind(kind)

	job := &model.Job{
		Title:       req.Title,
		Company:     req.Company,
		LogoURL:     req.LogoURL,
		Country:     req.Country,
		Location:    req.Location,
		Description: req.Description,
		ApplyLink:   req.ApplyLink,
		Status:      status,
		Passout:     req.Passout.Ptr(),
		Kind:        normalizedKind,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.Error().Err(err).Msg("create job failed")
		return nil, err
	}
	s.resolveLogo(job)
	return job, nil
}

// Update applies a privileged partial edit. Field coercions mirror Create
// but only touch supplied fields; a supplied-but-invalid kind is dropped
// (the stored value is left unchanged, not overwritten with the raw string).
func (s *JobService) Update(ctx context.Context, id uuid.UUID, req model.UpdateJobRequest) (*model.Job, error) {
	patch := model.JobPatch{
		Title:       req.Title,
		Company:     req.Company,
		LogoURL:     req.LogoURL,
		Country:     req.Country,
		Location:    req.Location,
		Description: req.Description,
		ApplyLink:   req.ApplyLink,
		Passout:     req.Passout.Ptr(),
	}
	if req.Status != nil {
		st := model.JobStatus(*req.Status)
		patch.Status = &st
	}
	if req.Kind != nil && *req.Kind != "" {
		if k, ok := model.NormalizeKind(*req.Kind); ok {
			patch.Kind = k
		}
	}

	job, err := s.jobs.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		s.log.Error().Err(err).Str("job_id", id.String()).Msg("update job failed")
		return nil, err
	}
	s.resolveLogo(job)
	return job, nil
}

// Delete removes a listing. No cascading cleanup of the logo object.
func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("job_id", id.String()).Msg("delete job failed")
		return err
	}
	return nil
}

// resolveLogo swaps an internal storage path for a short-lived signed URL.
// Absolute URLs pass through untouched, and signing failures are swallowed
// so one bad asset reference never fails a whole listing response.
func (s *JobService) resolveLogo(job *model.Job) {
	if job.LogoURL == nil || *job.LogoURL == "" || isAbsoluteURL(*job.LogoURL) {
		return
	}
	signed, err := s.signer.SignedURL(*job.LogoURL, s.assetTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("path", *job.LogoURL).Msg("signed URL generation failed")
		return
	}
	job.LogoURL = &signed
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
