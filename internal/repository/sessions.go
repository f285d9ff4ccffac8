package repository

import (
	"context"
	"time"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

func (r *Repository) GetAllSessions() ([]*domain.Session, error) {
	query := `
		SELECT id, number, name, weeks, created_at, version
		FROM sessions
		ORDER BY number ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		session := &domain.Session{}
		dst := []any{&session.ID, &session.Number, &session.Name, &session.Weeks, &session.CreatedAt, &session.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *Repository) GetSessionByID(id int64) (*domain.Session, error) {
	query := `
		SELECT number, name, weeks, created_at, version
		FROM sessions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	session := &domain.Session{
		ID: id,
	}

	dst := []any{&session.Number, &session.Name, &session.Weeks, &session.CreatedAt, &session.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *Repository) CreateSession(session *domain.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO sessions (number, name, weeks)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{session.Number, session.Name, session.Weeks}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&session.ID, &session.CreatedAt, &session.Version); err != nil {
		return err
	}

	return nil
}
