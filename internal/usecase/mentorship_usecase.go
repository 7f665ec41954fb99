package usecase

import (
	"context"
	"errors"
	"time"

	"mentorlink/internal/domain/mentorship"
	"mentorlink/internal/domain/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMentorNotFound distinguishes "no such mentor" on request creation from
// a missing request record.
var ErrMentorNotFound = errors.New("mentor not found")

// ParticipantRef is the expanded form of a foreign profile reference.
// Industries is populated only when the referenced profile is a mentor and
// the view calls for it.
type ParticipantRef struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Industries []string  `json:"industries,omitempty"`
}

// RequestView is a request with its profile references expanded for the
// response. Expansion happens here, at the boundary; the store only ever
// sees raw ids.
type RequestView struct {
	mentorship.Request
	Mentee *ParticipantRef `json:"mentee,omitempty"`
	Mentor *ParticipantRef `json:"mentor,omitempty"`
}

type CreateRequestInput struct {
	MentorID      uuid.UUID
	Proposal      string
	PreferredTime time.Time
}

type MentorshipUsecase interface {
	Create(ctx context.Context, caller profile.Profile, in CreateRequestInput) (RequestView, error)
	ListMine(ctx context.Context, caller profile.Profile) ([]RequestView, error)
	Get(ctx context.Context, caller profile.Profile, id uuid.UUID) (RequestView, error)
	Accept(ctx context.Context, caller profile.Profile, id uuid.UUID) (mentorship.Request, error)
	Decline(ctx context.Context, caller profile.Profile, id uuid.UUID) (mentorship.Request, error)
	Cancel(ctx context.Context, caller profile.Profile, id uuid.UUID) error
}

type Mentorship struct {
	requests mentorship.Repository
	profiles profile.Repository
	logger   *zap.Logger
}

func NewMentorshipUsecase(requests mentorship.Repository, profiles profile.Repository, logger *zap.Logger) *Mentorship {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mentorship{requests: requests, profiles: profiles, logger: logger}
}

func (m *Mentorship) Create(ctx context.Context, caller profile.Profile, in CreateRequestInput) (RequestView, error) {
	if !caller.IsMentee() {
		return RequestView{}, ErrForbidden
	}

	mentor, err := m.profiles.GetByID(ctx, in.MentorID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return RequestView{}, ErrMentorNotFound
		}
		return RequestView{}, err
	}
	if !mentor.IsMentor() {
		return RequestView{}, ErrMentorNotFound
	}

	req := mentorship.Request{
		ID:            uuid.New(),
		MenteeID:      caller.ID,
		MentorID:      mentor.ID,
		Proposal:      in.Proposal,
		PreferredTime: in.PreferredTime,
		Status:        mentorship.StatusPending,
	}

	// The unique index on (mentee_id, mentor_id) is the real duplicate
	// guard; no pre-read is needed.
	if err := m.requests.Create(ctx, req); err != nil {
		return RequestView{}, err
	}

	created, err := m.requests.GetByID(ctx, req.ID)
	if err != nil {
		return RequestView{}, err
	}

	m.logger.Info("mentorship request created",
		zap.String("request_id", created.ID.String()),
		zap.String("mentee_id", caller.ID.String()),
		zap.String("mentor_id", mentor.ID.String()),
	)

	return RequestView{
		Request: created,
		Mentor:  &ParticipantRef{ID: mentor.ID, Name: mentor.Name},
	}, nil
}

func (m *Mentorship) ListMine(ctx context.Context, caller profile.Profile) ([]RequestView, error) {
	var (
		reqs []mentorship.Request
		err  error
	)
	if caller.IsMentee() {
		reqs, err = m.requests.ListByMentee(ctx, caller.ID)
	} else {
		reqs, err = m.requests.ListByMentor(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		if caller.IsMentee() {
			ids = append(ids, r.MentorID)
		} else {
			ids = append(ids, r.MenteeID)
		}
	}
	expanded, err := m.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]RequestView, 0, len(reqs))
	for _, r := range reqs {
		v := RequestView{Request: r}
		if caller.IsMentee() {
			if p, ok := expanded[r.MentorID]; ok {
				v.Mentor = &ParticipantRef{ID: p.ID, Name: p.Name, Industries: p.Industries}
			}
		} else {
			if p, ok := expanded[r.MenteeID]; ok {
				v.Mentee = &ParticipantRef{ID: p.ID, Name: p.Name}
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *Mentorship) Get(ctx context.Context, caller profile.Profile, id uuid.UUID) (RequestView, error) {
	req, err := m.requests.GetByID(ctx, id)
	if err != nil {
		return RequestView{}, err
	}
	if !req.IsParticipant(caller.ID) {
		return RequestView{}, ErrForbidden
	}

	expanded, err := m.profiles.GetByIDs(ctx, []uuid.UUID{req.MenteeID, req.MentorID})
	if err != nil {
		return RequestView{}, err
	}

	v := RequestView{Request: req}
	if p, ok := expanded[req.MenteeID]; ok {
		v.Mentee = &ParticipantRef{ID: p.ID, Name: p.Name}
	}
	if p, ok := expanded[req.MentorID]; ok {
		v.Mentor = &ParticipantRef{ID: p.ID, Name: p.Name, Industries: p.Industries}
	}
	return v, nil
}

func (m *Mentorship) Accept(ctx context.Context, caller profile.Profile, id uuid.UUID) (mentorship.Request, error) {
	return m.resolve(ctx, caller, id, mentorship.StatusAccepted)
}

func (m *Mentorship) Decline(ctx context.Context, caller profile.Profile, id uuid.UUID) (mentorship.Request, error) {
	return m.resolve(ctx, caller, id, mentorship.StatusDeclined)
}

func (m *Mentorship) resolve(ctx context.Context, caller profile.Profile, id uuid.UUID, to mentorship.Status) (mentorship.Request, error) {
	req, err := m.requests.GetByID(ctx, id)
	if err != nil {
		return mentorship.Request{}, err
	}
	if req.MentorID != caller.ID {
		return mentorship.Request{}, ErrForbidden
	}

	ok, err := m.requests.SetStatusIfPending(ctx, id, to)
	if err != nil {
		return mentorship.Request{}, err
	}
	if !ok {
		return mentorship.Request{}, mentorship.ErrNotPending
	}

	m.logger.Info("mentorship request resolved",
		zap.String("request_id", id.String()),
		zap.String("status", string(to)),
	)

	req.Status = to
	return req, nil
}

func (m *Mentorship) Cancel(ctx context.Context, caller profile.Profile, id uuid.UUID) error {
	req, err := m.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.MenteeID != caller.ID {
		return ErrForbidden
	}

	ok, err := m.requests.DeleteIfPending(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return mentorship.ErrNotPending
	}

	m.logger.Info("mentorship request cancelled", zap.String("request_id", id.String()))
	return nil
}
