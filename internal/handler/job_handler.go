package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradhunt/gradboard-backend/internal/middleware"
	"github.com/gradhunt/gradboard-backend/internal/model"
	"github.com/gradhunt/gradboard-backend/internal/response"
	"github.com/gradhunt/gradboard-backend/internal/service"
	"github.com/gradhunt/gradboard-backend/internal/validator"
)

// JobHandler handles listing endpoints.
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// ListJobs godoc
// GET /api/v1/jobs
// Public callers see published listings only; a valid bearer token unlocks
// the moderation view and explicit status filtering.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q model.JobListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	jobs, total, err := h.jobService.List(c.Request.Context(), q, middleware.IsAdmin(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	limit, offset := service.PageWindow(q)
	pagination := &response.Pagination{
		Page:       offset/limit + 1,
		PerPage:    limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}

	if jobs == nil {
		jobs = []model.Job{}
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"jobs": jobs}, pagination)
}

// GetJob godoc
// GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), id, middleware.IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"job": job})
}

// CreateJob godoc
// POST /api/v1/jobs
// Open to anonymous submitters; their listings always start out pending.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req model.CreateJobRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), req, middleware.IsAdmin(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"job": job})
}

// UpdateJob godoc
// PUT /api/v1/jobs/:id
// Admin only (route-gated). Covers field edits and approve/reject.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateJobRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"job": job})
}

// DeleteJob godoc
// DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
