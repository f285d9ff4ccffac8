package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

// InsertRoster replaces the stored roster for a (session, flow) with the
// latest generation output. Previous results are dropped in the same
// transaction so a failed insert never leaves the session rosterless.
func (r *Repository) InsertRoster(roster *domain.Roster) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM rosters WHERE session_id = $1 AND flow = $2`
	if _, err := tx.ExecContext(ctx, query, roster.SessionID, roster.Flow); err != nil {
		return err
	}

	staffGameDays, err := json.Marshal(roster.StaffGameDays)
	if err != nil {
		return err
	}

	query = `
		INSERT INTO rosters (session_id, flow, staff_game_days)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, roster.SessionID, roster.Flow, staffGameDays).Scan(&roster.ID, &roster.CreatedAt, &roster.Version); err != nil {
		return err
	}

	query = `
		INSERT INTO roster_assignments (roster_id, week, day, job_id, job_code, job_name, staff_id, staff_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, result := range roster.Results {
		args := []any{roster.ID, result.Week, result.Day, result.JobID, result.JobCode, result.JobName, result.StaffID, result.StaffName}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRosterBySessionAndFlow(sessionID int64, flow domain.Flow) (*domain.Roster, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			r.id,
			ra.week,
			ra.day,
			ra.job_id,
			ra.job_code,
			ra.job_name,
			ra.staff_id,
			ra.staff_name,
			r.staff_game_days,
			r.created_at,
			r.version
		FROM rosters r
		LEFT JOIN roster_assignments ra ON r.id = ra.roster_id
		WHERE r.session_id = $1 AND r.flow = $2
		ORDER BY ra.week ASC, ra.job_id ASC, ra.staff_id ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, sessionID, flow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := &domain.Roster{
		SessionID: sessionID,
		Flow:      flow,
		Results:   make([]domain.AssignmentResult, 0),
	}

	for rows.Next() {
		var row struct {
			rosterID      int64
			week          sql.NullInt32
			day           sql.NullString
			jobID         sql.NullInt64
			jobCode       sql.NullString
			jobName       sql.NullString
			staffID       sql.NullInt64
			staffName     sql.NullString
			staffGameDays []byte
			createdAt     time.Time
			version       int32
		}

		dst := []any{
			&row.rosterID,
			&row.week,
			&row.day,
			&row.jobID,
			&row.jobCode,
			&row.jobName,
			&row.staffID,
			&row.staffName,
			&row.staffGameDays,
			&row.createdAt,
			&row.version,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		roster.ID = row.rosterID
		roster.CreatedAt = row.createdAt
		roster.Version = row.version

		if roster.StaffGameDays == nil && len(row.staffGameDays) > 0 {
			if err := json.Unmarshal(row.staffGameDays, &roster.StaffGameDays); err != nil {
				return nil, err
			}
		}

		if !row.week.Valid {
			// roster row with no assignments, keep the empty result set
			continue
		}

		roster.Results = append(roster.Results, domain.AssignmentResult{
			Week:      int(row.week.Int32),
			Day:       row.day.String,
			JobID:     row.jobID.Int64,
			JobCode:   row.jobCode.String,
			JobName:   row.jobName.String,
			StaffID:   row.staffID.Int64,
			StaffName: row.staffName.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if roster.ID == 0 {
		return nil, sql.ErrNoRows
	}

	return roster, nil
}
