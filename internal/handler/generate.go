package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/engine"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/workspace"
)

// Generate compiles the workspace, runs the external execution service,
// analyzes the results and persists them as the session's roster. The
// whole round trip runs under a redis lock so the generate button cannot
// be double-submitted.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.Session)
	flow := r.Context().Value(FlowCtx).(domain.Flow)
	ws := r.Context().Value(WorkspaceCtx).(domain.Workspace)
	sub := r.Context().Value(SubCtxKey).(string)

	lockCtx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.workspaces.AcquireGenerateLock(lockCtx, sub, session.ID, flow); err != nil {
		switch {
		case errors.Is(err, workspace.ErrGenerateInFlight):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
		defer cancel()
		if err := h.workspaces.ReleaseGenerateLock(releaseCtx, sub, session.ID, flow); err != nil {
			slog.Error("failed to release generate lock", "session", session.ID, "flow", flow, "error", err)
		}
	}()

	// conflicts are advisory, the user may generate with them present;
	// they ride along in the response so the frontend can warn
	conflicts, err := collectWeekConflicts(ws)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	jobs, err := h.repository.GetJobsByFlow(flow)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	batch, err := engine.CompileBatch(ws, jobs, engine.CompileOptions{
		Debug:   h.config.Engine.Debug,
		Verbose: h.config.Engine.Verbose,
	})
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	resp, err := h.executor.Generate(r.Context(), batch)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	groups, err := h.repository.GetGroupMembersBySession(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staffGameDays := workspace.StaffGameDays(ws)
	analysis := engine.Analyze(resp.Results, jobs, groups, staffGameDays, flow.WorkDays())

	roster := &domain.Roster{
		SessionID:     session.ID,
		Flow:          flow,
		Results:       resp.Results,
		StaffGameDays: staffGameDays,
	}
	if err := h.repository.InsertRoster(roster); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.notifyRosterPublished(r, session, roster)

	h.successResponse(w, r, "roster generated", map[string]any{
		"roster":            roster,
		"analysis":          analysis,
		"conflicts":         conflicts,
		"serviceValidation": resp.GroupCoverage(),
	})
}

// notifyRosterPublished emails the requesting user a summary. Mail is
// best effort, a queue hiccup must not fail an otherwise complete
// generation.
func (h *Handler) notifyRosterPublished(r *http.Request, session *domain.Session, roster *domain.Roster) {
	sub := r.Context().Value(SubCtxKey).(string)

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		slog.Error("failed to parse user id for roster notification", "sub", sub, "error", err)
		return
	}

	user, err := h.repository.GetUserByID(userID)
	if err != nil {
		slog.Error("failed to load user for roster notification", "userID", userID, "error", err)
		return
	}

	weeks := 0
	for _, result := range roster.Results {
		if result.Week > weeks {
			weeks = result.Week
		}
	}

	mailMessage := domain.MailMessage{
		Type: "roster_published",
		To:   user.Email,
		Data: domain.RosterPublishedMailData{
			FullName:    user.FullName,
			SessionName: session.Name,
			Flow:        string(roster.Flow),
			Weeks:       weeks,
			Assignments: len(roster.Results),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("failed to serialize roster notification", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("failed to publish roster notification", "error", err)
	}
}
