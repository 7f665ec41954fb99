package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("session not found")
	ErrAlreadyExists      = errors.New("session already exists for this request")
	ErrRequestNotAccepted = errors.New("mentorship request is not accepted")
)

type Repository interface {
	// CreateForAcceptedRequest inserts the session only while the parent
	// request is accepted, so the precondition holds even against a
	// concurrent decline. Returns ErrRequestNotAccepted when the guard
	// fails and ErrAlreadyExists when the request already has a session.
	CreateForAcceptedRequest(ctx context.Context, s Session) error

	GetByID(ctx context.Context, id uuid.UUID) (Session, error)

	// ListByMentee and ListByMentor join through the parent request on its
	// raw foreign keys; sessions whose parent does not match are excluded.
	ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]Session, error)
	ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]Session, error)

	UpdateSchedule(ctx context.Context, id uuid.UUID, meetingLink string, scheduledTime time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
