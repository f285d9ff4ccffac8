package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

// job_type in the catalog predates the flow naming and still uses the
// historical 'am/pm' spelling.
func flowToJobType(flow domain.Flow) (string, error) {
	switch flow {
	case domain.FlowLunch:
		return "lunch", nil
	case domain.FlowAMPM:
		return "am/pm", nil
	default:
		return "", fmt.Errorf("unknown flow %q", flow)
	}
}

func (r *Repository) GetJobsByFlow(flow domain.Flow) ([]*domain.Job, error) {
	jobType, err := flowToJobType(flow)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, code, name, description, min_staff, normal_staff, max_staff, priority
		FROM jobs
		WHERE job_type = $1
		ORDER BY priority DESC, name ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, jobType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{Type: flow}
		dst := []any{&job.ID, &job.Code, &job.Name, &job.Description, &job.MinStaff, &job.NormalStaff, &job.MaxStaff, &job.Priority}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	query := `
		SELECT code, name, description, job_type, min_staff, normal_staff, max_staff, priority
		FROM jobs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	job := &domain.Job{
		ID: id,
	}

	var jobType string
	dst := []any{&job.Code, &job.Name, &job.Description, &jobType, &job.MinStaff, &job.NormalStaff, &job.MaxStaff, &job.Priority}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if jobType == "am/pm" {
		job.Type = domain.FlowAMPM
	} else {
		job.Type = domain.FlowLunch
	}

	return job, nil
}

func (r *Repository) CreateJob(job *domain.Job) error {
	jobType, err := flowToJobType(job.Type)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO jobs (code, name, description, job_type, min_staff, normal_staff, max_staff, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	args := []any{job.Code, job.Name, job.Description, jobType, job.MinStaff, job.NormalStaff, job.MaxStaff, job.Priority}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID); err != nil {
		return err
	}

	return nil
}
