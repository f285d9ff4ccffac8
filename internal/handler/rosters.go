package handler

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/engine"
)

func (h *Handler) loadRoster(w http.ResponseWriter, r *http.Request) (*domain.Roster, bool) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	flow := r.Context().Value(FlowCtx).(domain.Flow)

	roster, err := h.repository.GetRosterBySessionAndFlow(session.ID, flow)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no roster has been generated for this session and flow")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	return roster, true
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	h.successResponse(w, r, "fetched roster", roster)
}

func (h *Handler) GetRosterAnalysis(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	flow := r.Context().Value(FlowCtx).(domain.Flow)

	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	jobs, err := h.repository.GetJobsByFlow(flow)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	groups, err := h.repository.GetGroupMembersBySession(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// the staff-game days captured at generation time keep the coverage
	// exemption intact even after the workspace snapshot expired
	analysis := engine.Analyze(roster.Results, jobs, groups, roster.StaffGameDays, flow.WorkDays())

	h.successResponse(w, r, "fetched roster analysis", analysis)
}

func (h *Handler) ExportRosterCSV(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	flow := r.Context().Value(FlowCtx).(domain.Flow)

	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("roster_session%d_%s.csv", session.ID, flow)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(w)

	var err error
	if flow == domain.FlowLunch {
		err = writeLunchCSV(writer, roster)
	} else {
		jobs, jobsErr := h.repository.GetJobsByFlow(flow)
		if jobsErr != nil {
			h.logInternalServerError(r, jobsErr)
			return
		}
		err = writeAMPMCSV(writer, roster, jobs)
	}
	if err != nil {
		// headers are gone already, logging is all that is left
		h.logInternalServerError(r, err)
		return
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logInternalServerError(r, err)
	}
}

// writeLunchCSV emits one row per assignment instance: lunchtime duty
// rotates by day, so week and day matter.
func writeLunchCSV(writer *csv.Writer, roster *domain.Roster) error {
	if err := writer.Write([]string{"week", "day", "job_name", "job_code", "staff_name", "staff_id"}); err != nil {
		return err
	}

	for _, result := range roster.Results {
		row := []string{
			strconv.Itoa(result.Week),
			result.Day,
			result.JobName,
			result.JobCode,
			result.StaffName,
			strconv.FormatInt(result.StaffID, 10),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// writeAMPMCSV emits one row per (job, staff) pair. AM/PM duty is the
// same all week, so repeating per-day rows would only add noise; the job
// description column tells staff what the duty involves.
func writeAMPMCSV(writer *csv.Writer, roster *domain.Roster, jobs []*domain.Job) error {
	if err := writer.Write([]string{"job_name", "job_code", "staff_name", "staff_id", "job_description"}); err != nil {
		return err
	}

	descriptions := make(map[int64]string, len(jobs))
	for _, job := range jobs {
		descriptions[job.ID] = job.Description
	}

	type pair struct {
		jobID   int64
		staffID int64
	}
	seen := make(map[pair]bool)

	for _, result := range roster.Results {
		key := pair{jobID: result.JobID, staffID: result.StaffID}
		if seen[key] {
			continue
		}
		seen[key] = true

		row := []string{
			result.JobName,
			result.JobCode,
			result.StaffName,
			strconv.FormatInt(result.StaffID, 10),
			descriptions[result.JobID],
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
