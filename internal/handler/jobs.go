package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

func (h *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	flow := domain.Flow(r.URL.Query().Get("flow"))
	if !flow.Valid() {
		h.errorResponse(w, r, "invalid flow, expected lunch or ampm")
		return
	}

	jobs, err := h.repository.GetJobsByFlow(flow)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched job catalog", jobs)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code" validate:"required"`
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		Type        string `json:"type" validate:"required,oneof=lunch ampm"`
		MinStaff    *int32 `json:"minStaff" validate:"omitempty,min=0"`
		NormalStaff *int32 `json:"normalStaff" validate:"omitempty,min=1"`
		MaxStaff    *int32 `json:"maxStaff" validate:"omitempty,min=1"`
		Priority    int32  `json:"priority"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.NormalStaff != nil && req.MaxStaff != nil && *req.MaxStaff < *req.NormalStaff {
		h.badRequest(w, r, errors.New("maxStaff must not be below normalStaff"))
		return
	}

	job := &domain.Job{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.Flow(req.Type),
		MinStaff:    req.MinStaff,
		NormalStaff: req.NormalStaff,
		MaxStaff:    req.MaxStaff,
		Priority:    req.Priority,
	}

	if err := h.repository.CreateJob(job); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "jobs_code_job_type_key":
			h.badRequest(w, r, errors.New("a job with this code already exists for this flow"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job created", job)
}
