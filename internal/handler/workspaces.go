package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/engine"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/workspace"
)

func (h *Handler) saveWorkspace(r *http.Request, ws domain.Workspace) error {
	sub := r.Context().Value(SubCtxKey).(string)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	return h.workspaces.Save(ctx, sub, ws)
}

// editError reports a workspace edit failure. Edit failures are always
// caller mistakes, not server faults, so the message goes to the client.
func (h *Handler) editError(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, err.Error())
}

func (h *Handler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	flow := r.Context().Value(FlowCtx).(domain.Flow)

	ws := workspace.New(session.ID, flow, int(session.Weeks))

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "workspace created", ws)
}

func (h *Handler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)
	h.successResponse(w, r, "fetched workspace", ws)
}

func (h *Handler) DiscardWorkspace(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	flow := r.Context().Value(FlowCtx).(domain.Flow)
	sub := r.Context().Value(SubCtxKey).(string)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.workspaces.Delete(ctx, sub, session.ID, flow); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "workspace discarded", nil)
}

// poolJob resolves the catalog job a pool feeds, for the capacity check
// on pool adds. A catalog without the job simply skips the check.
func (h *Handler) poolJob(flow domain.Flow, pool domain.PoolType) (*domain.Job, error) {
	code, ok := engine.PoolJobCode(pool)
	if !ok {
		return nil, fmt.Errorf("unknown pool type %q", pool)
	}

	jobs, err := h.repository.GetJobsByFlow(flow)
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if job.Code == code {
			return job, nil
		}
	}
	return nil, nil
}

func (h *Handler) AddPoolMember(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week    int    `json:"week" validate:"min=0"`
		Pool    string `json:"pool" validate:"required,oneof=artsAndCrafts cardTrading"`
		StaffID int64  `json:"staffId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job, err := h.poolJob(ws.Flow, domain.PoolType(req.Pool))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ws, err = workspace.AddPoolMember(ws, req.Week, domain.PoolType(req.Pool), req.StaffID, job)
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pool member added", ws)
}

func (h *Handler) RemovePoolMember(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week    int    `json:"week" validate:"min=0"`
		Pool    string `json:"pool" validate:"required,oneof=artsAndCrafts cardTrading"`
		StaffID int64  `json:"staffId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws, err := workspace.RemovePoolMember(ws, req.Week, domain.PoolType(req.Pool), req.StaffID)
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pool member removed", ws)
}

func (h *Handler) AddAssignment(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week    int    `json:"week" validate:"min=0"`
		StaffID int64  `json:"staffId" validate:"required"`
		JobID   int64  `json:"jobId" validate:"required"`
		Day     string `json:"day" validate:"omitempty,oneof=monday tuesday wednesday thursday friday"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws, err := workspace.AddAssignment(ws, req.Week, domain.CategoryAssignment{
		StaffID: req.StaffID,
		JobID:   req.JobID,
		Day:     req.Day,
	})
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment added", ws)
}

func (h *Handler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week    int    `json:"week" validate:"min=0"`
		StaffID int64  `json:"staffId" validate:"required"`
		JobID   int64  `json:"jobId" validate:"required"`
		Day     string `json:"day"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws, err := workspace.RemoveAssignment(ws, req.Week, domain.CategoryAssignment{
		StaffID: req.StaffID,
		JobID:   req.JobID,
		Day:     req.Day,
	})
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment removed", ws)
}

func (h *Handler) AddExclusion(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week    int   `json:"week" validate:"min=0"`
		StaffID int64 `json:"staffId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws, err := workspace.AddExclusion(ws, req.Week, req.StaffID)
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "exclusion added", ws)
}

func (h *Handler) RemoveExclusion(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week    int   `json:"week" validate:"min=0"`
		StaffID int64 `json:"staffId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws, err := workspace.RemoveExclusion(ws, req.Week, req.StaffID)
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "exclusion removed", ws)
}

func (h *Handler) AddAdhocStaff(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week          int    `json:"week" validate:"min=0"`
		Name          string `json:"name" validate:"required"`
		GroupID       int64  `json:"groupId"`
		JobType       string `json:"jobType" validate:"omitempty,oneof=counselor jc"`
		Gender        string `json:"gender" validate:"omitempty,oneof=male female"`
		ForcedJobCode string `json:"forcedJobCode"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws, staff, err := workspace.AddAdhocStaff(ws, req.Week, domain.StaffRef{
		Name:          req.Name,
		GroupID:       req.GroupID,
		JobType:       domain.JobType(req.JobType),
		Gender:        req.Gender,
		ForcedJobCode: req.ForcedJobCode,
	})
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ad-hoc staff added", map[string]any{
		"workspace": ws,
		"staff":     staff,
	})
}

func (h *Handler) RemoveAdhocStaff(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		Week    int   `json:"week" validate:"min=0"`
		StaffID int64 `json:"staffId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws, err := workspace.RemoveAdhocStaff(ws, req.Week, req.StaffID)
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ad-hoc staff removed", ws)
}

func (h *Handler) AddWeek(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	ws = workspace.AddWeek(ws)

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "week added", ws)
}

func (h *Handler) RemoveWeek(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		h.errorResponse(w, r, "invalid week number")
		return
	}

	ws, err = workspace.RemoveWeek(ws, week)
	if err != nil {
		h.editError(w, r, err)
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "week removed", ws)
}

func (h *Handler) UpdateWeek(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		h.errorResponse(w, r, "invalid week number")
		return
	}

	var req struct {
		UseSessionDefaults *bool     `json:"useSessionDefaults"`
		StaffGameDays      *[]string `json:"staffGameDays" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday"`
		TieDyeDays         *[]string `json:"tieDyeDays" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday"`
		TieDyeStaff        *[]int64  `json:"tieDyeStaff"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.UseSessionDefaults != nil {
		ws, err = workspace.SetUseSessionDefaults(ws, week, *req.UseSessionDefaults)
		if err != nil {
			h.editError(w, r, err)
			return
		}
	}

	if req.StaffGameDays != nil || req.TieDyeDays != nil || req.TieDyeStaff != nil {
		if week < 1 || week > len(ws.WeekConfigs) {
			h.editError(w, r, workspace.ErrWeekOutOfRange)
			return
		}
		current := ws.WeekConfigs[week-1]
		staffGameDays := current.StaffGameDays
		tieDyeDays := current.TieDyeDays
		tieDyeStaff := current.TieDyeStaff
		if req.StaffGameDays != nil {
			staffGameDays = *req.StaffGameDays
		}
		if req.TieDyeDays != nil {
			tieDyeDays = *req.TieDyeDays
		}
		if req.TieDyeStaff != nil {
			tieDyeStaff = *req.TieDyeStaff
		}

		ws, err = workspace.SetWeekDays(ws, week, staffGameDays, tieDyeDays, tieDyeStaff)
		if err != nil {
			h.editError(w, r, err)
			return
		}
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "week updated", ws)
}

func (h *Handler) SetCapacityOverride(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	var req struct {
		JobID   int64 `json:"jobId" validate:"required"`
		Enabled *bool `json:"enabled" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws = workspace.SetCapacityOverride(ws, req.JobID, *req.Enabled)

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "capacity override updated", ws)
}

type weekConflicts struct {
	Week      int               `json:"week"`
	Conflicts []engine.Conflict `json:"conflicts"`
}

func collectWeekConflicts(ws domain.Workspace) ([]weekConflicts, error) {
	report := make([]weekConflicts, 0, len(ws.WeekConfigs))
	for week := 1; week <= len(ws.WeekConfigs); week++ {
		eff, err := workspace.EffectiveWeek(ws, week)
		if err != nil {
			return nil, err
		}
		report = append(report, weekConflicts{
			Week:      week,
			Conflicts: engine.DetectConflicts(eff, ws.Flow),
		})
	}

	return report, nil
}

func (h *Handler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	report, err := collectWeekConflicts(ws)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched conflict report", report)
}

func (h *Handler) ExportWorkspace(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)

	data, err := workspace.Export(ws)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	filename := fmt.Sprintf("workspace_session%d_%s.json", ws.SessionID, ws.Flow)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

const maxImportSize = 1 << 20 // 1 MiB, far above any real workspace file

func (h *Handler) ImportWorkspace(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	flow := r.Context().Value(FlowCtx).(domain.Flow)

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ws, err := workspace.Import(data)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if ws.SessionID != session.ID {
		h.errorResponse(w, r, fmt.Sprintf("this file belongs to session %d", ws.SessionID))
		return
	}
	if ws.Flow != flow {
		h.errorResponse(w, r, fmt.Sprintf("this file belongs to the %s flow", ws.Flow))
		return
	}

	if err := h.saveWorkspace(r, ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "workspace imported", ws)
}
