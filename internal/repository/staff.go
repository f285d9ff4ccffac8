package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

// GetEligibleStaffBySession returns the directory staff a workspace can
// draw on: counselors and JCs whose group belongs to the session. Other
// roles never pull camp duties.
func (r *Repository) GetEligibleStaffBySession(sessionID int64) ([]*domain.StaffRef, error) {
	query := `
		SELECT s.id, s.full_name, s.group_id
		FROM staff s
		JOIN groups g ON s.group_id = g.id
		WHERE g.session_id = $1 AND s.role IN ('counselor', 'jc')
		ORDER BY s.full_name ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]*domain.StaffRef, 0)
	for rows.Next() {
		s := &domain.StaffRef{}
		var groupID sql.NullInt64
		if err := rows.Scan(&s.StaffID, &s.Name, &groupID); err != nil {
			return nil, err
		}
		if groupID.Valid {
			s.GroupID = groupID.Int64
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return staff, nil
}

func (r *Repository) GetGroupsBySession(sessionID int64) ([]*domain.Group, error) {
	query := `
		SELECT id, name
		FROM groups
		WHERE session_id = $1
		ORDER BY name ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*domain.Group, 0)
	for rows.Next() {
		group := &domain.Group{}
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// GetGroupMembersBySession returns group membership keyed by group id,
// in the shape the result analyzer consumes.
func (r *Repository) GetGroupMembersBySession(sessionID int64) (map[int64][]int64, error) {
	query := `
		SELECT s.group_id, s.id
		FROM staff s
		JOIN groups g ON s.group_id = g.id
		WHERE g.session_id = $1 AND s.role IN ('counselor', 'jc')
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[int64][]int64)
	for rows.Next() {
		var groupID, staffID int64
		if err := rows.Scan(&groupID, &staffID); err != nil {
			return nil, err
		}
		members[groupID] = append(members[groupID], staffID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) CreateGroup(sessionID int64, group *domain.Group) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO groups (session_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.dbpool.QueryRowContext(ctx, query, sessionID, group.Name).Scan(&group.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateStaff(staff *domain.StaffRef, role domain.JobType, gender string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO staff (full_name, role, gender, group_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var groupID any
	if staff.GroupID != 0 {
		groupID = staff.GroupID
	}

	args := []any{staff.Name, role, gender, groupID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&staff.StaffID); err != nil {
		return err
	}

	return nil
}
