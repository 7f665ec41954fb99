package postgres

import (
	"context"
	"errors"
	"time"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/session"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SessionRepository struct {
	db database.DB
}

func NewSessionRepository(db database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, request_id, meeting_link, scheduled_time, status, created_at, updated_at`

// CreateForAcceptedRequest inserts through a guard subquery so the
// accepted-request precondition is checked in the same statement as the
// write. Zero rows means the request was missing or not accepted at commit
// time; the unique index on request_id rejects a second session.
func (r *SessionRepository) CreateForAcceptedRequest(ctx context.Context, s session.Session) error {
	n, err := r.db.Exec(ctx,
		`INSERT INTO sessions (id, request_id, meeting_link, scheduled_time, status)
		 SELECT $1, $2, $3, $4, $5
		 WHERE EXISTS (
			SELECT 1 FROM mentorship_requests WHERE id = $2 AND status = 'accepted'
		 )`,
		s.ID, s.RequestID, s.MeetingLink, s.ScheduledTime, s.Status,
	)
	if err != nil {
		if isUniqueViolation(err, "sessions_request_id_key") {
			return session.ErrAlreadyExists
		}
		return err
	}
	if n == 0 {
		return session.ErrRequestNotAccepted
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (session.Session, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)

	var s session.Session
	err := row.Scan(&s.ID, &s.RequestID, &s.MeetingLink, &s.ScheduledTime,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}
	return s, nil
}

func (r *SessionRepository) ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]session.Session, error) {
	return r.list(ctx,
		`SELECT s.id, s.request_id, s.meeting_link, s.scheduled_time, s.status, s.created_at, s.updated_at
		 FROM sessions s
		 JOIN mentorship_requests r ON r.id = s.request_id
		 WHERE r.mentee_id = $1
		 ORDER BY s.scheduled_time DESC`, menteeID)
}

func (r *SessionRepository) ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]session.Session, error) {
	return r.list(ctx,
		`SELECT s.id, s.request_id, s.meeting_link, s.scheduled_time, s.status, s.created_at, s.updated_at
		 FROM sessions s
		 JOIN mentorship_requests r ON r.id = s.request_id
		 WHERE r.mentor_id = $1
		 ORDER BY s.scheduled_time DESC`, mentorID)
}

func (r *SessionRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, meetingLink string, scheduledTime time.Time) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE sessions
		 SET meeting_link = $2, scheduled_time = $3, updated_at = now()
		 WHERE id = $1`,
		id, meetingLink, scheduledTime,
	)
	return n > 0, err
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status session.Status) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	return n > 0, err
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return n > 0, err
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]session.Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []session.Session
	for rows.Next() {
		var s session.Session
		if err := rows.Scan(&s.ID, &s.RequestID, &s.MeetingLink, &s.ScheduledTime,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
