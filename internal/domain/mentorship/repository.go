package mentorship

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("mentorship request not found")
	ErrDuplicate  = errors.New("mentorship request already exists for this mentor")
	ErrNotPending = errors.New("mentorship request is not pending")
)

type Repository interface {
	// Create persists a new pending request. Returns ErrDuplicate when a
	// request for the same (mentee, mentor) pair already exists, whatever
	// its status.
	Create(ctx context.Context, r Request) error

	GetByID(ctx context.Context, id uuid.UUID) (Request, error)

	// GetByIDs returns the found requests keyed by id; missing ids are
	// absent from the map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Request, error)

	ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]Request, error)
	ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]Request, error)

	// SetStatusIfPending conditionally moves the request out of pending.
	// It reports false when the request exists but is no longer pending,
	// so a losing concurrent writer observes a conflict instead of
	// overwriting a terminal state. Returns ErrNotFound when absent.
	SetStatusIfPending(ctx context.Context, id uuid.UUID, to Status) (bool, error)

	// DeleteIfPending removes the request only while it is still pending,
	// with the same race semantics as SetStatusIfPending.
	DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error)

	// HasActiveForProfile reports whether the profile appears on either
	// side of any non-declined request.
	HasActiveForProfile(ctx context.Context, profileID uuid.UUID) (bool, error)
}
