package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

func (h *Handler) GetAllSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.repository.GetAllSessions()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched session list", sessions)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number int32  `json:"number" validate:"required,min=1"`
		Name   string `json:"name" validate:"required"`
		Weeks  int32  `json:"weeks" validate:"required,min=1,max=12"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	session := &domain.Session{
		Number: req.Number,
		Name:   req.Name,
		Weeks:  req.Weeks,
	}

	if err := h.repository.CreateSession(session); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "sessions_number_key":
			h.badRequest(w, r, errors.New("a session with this number already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "session created", session)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	h.successResponse(w, r, "fetched session", session)
}

func (h *Handler) GetSessionStaff(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)

	staff, err := h.repository.GetEligibleStaffBySession(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched eligible staff", staff)
}

func (h *Handler) GetSessionGroups(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)

	groups, err := h.repository.GetGroupsBySession(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched groups", groups)
}
