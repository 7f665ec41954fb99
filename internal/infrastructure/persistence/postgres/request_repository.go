package postgres

import (
	"context"
	"errors"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/mentorship"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RequestRepository struct {
	db database.DB
}

func NewRequestRepository(db database.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `id, mentee_id, mentor_id, proposal, preferred_time, status, created_at, updated_at`

func (r *RequestRepository) Create(ctx context.Context, req mentorship.Request) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO mentorship_requests (id, mentee_id, mentor_id, proposal, preferred_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ID, req.MenteeID, req.MentorID, req.Proposal, req.PreferredTime, req.Status,
	)
	if err != nil {
		if isUniqueViolation(err, "uniq_mentorship_requests_pair") {
			return mentorship.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (mentorship.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM mentorship_requests WHERE id = $1`, id)
	return scanRequest(row)
}

func (r *RequestRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]mentorship.Request, error) {
	out := make(map[uuid.UUID]mentorship.Request, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	reqs, err := r.list(ctx,
		`SELECT `+requestColumns+` FROM mentorship_requests WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, req := range reqs {
		out[req.ID] = req
	}
	return out, nil
}

func (r *RequestRepository) ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]mentorship.Request, error) {
	return r.list(ctx,
		`SELECT `+requestColumns+` FROM mentorship_requests
		 WHERE mentee_id = $1 ORDER BY created_at DESC`, menteeID)
}

func (r *RequestRepository) ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]mentorship.Request, error) {
	return r.list(ctx,
		`SELECT `+requestColumns+` FROM mentorship_requests
		 WHERE mentor_id = $1 ORDER BY created_at DESC`, mentorID)
}

// SetStatusIfPending is the conditional write guarding the state machine:
// only a still-pending row is moved, so two concurrent accepts cannot both
// succeed.
func (r *RequestRepository) SetStatusIfPending(ctx context.Context, id uuid.UUID, to mentorship.Status) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE mentorship_requests
		 SET status = $2, updated_at = now()
		 WHERE id = $1 AND status = 'pending'`,
		id, to,
	)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	exists, err := r.existsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, mentorship.ErrNotFound
	}
	return false, nil
}

func (r *RequestRepository) DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`DELETE FROM mentorship_requests WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	exists, err := r.existsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, mentorship.ErrNotFound
	}
	return false, nil
}

func (r *RequestRepository) HasActiveForProfile(ctx context.Context, profileID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM mentorship_requests
			WHERE (mentee_id = $1 OR mentor_id = $1) AND status <> 'declined'
		)`, profileID).Scan(&exists)
	return exists, err
}

func (r *RequestRepository) existsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM mentorship_requests WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...any) ([]mentorship.Request, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []mentorship.Request
	for rows.Next() {
		var req mentorship.Request
		if err := rows.Scan(&req.ID, &req.MenteeID, &req.MentorID, &req.Proposal,
			&req.PreferredTime, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanRequest(row database.Row) (mentorship.Request, error) {
	var req mentorship.Request
	err := row.Scan(&req.ID, &req.MenteeID, &req.MentorID, &req.Proposal,
		&req.PreferredTime, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mentorship.Request{}, mentorship.ErrNotFound
		}
		return mentorship.Request{}, err
	}
	return req, nil
}
