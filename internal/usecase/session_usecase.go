package usecase

import (
	"context"
	"errors"
	"time"

	"mentorlink/internal/domain/mentorship"
	"mentorlink/internal/domain/profile"
	"mentorlink/internal/domain/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidSessionStatus rejects a status outside the flat
// scheduled/completed/cancelled set.
var ErrInvalidSessionStatus = errors.New("invalid session status")

// RequestRef is the expanded parent request carried on session views.
type RequestRef struct {
	ID     uuid.UUID       `json:"id"`
	Mentee *ParticipantRef `json:"mentee,omitempty"`
	Mentor *ParticipantRef `json:"mentor,omitempty"`
}

type SessionView struct {
	session.Session
	Request *RequestRef `json:"request,omitempty"`
}

type CreateSessionInput struct {
	RequestID     uuid.UUID
	MeetingLink   string
	ScheduledTime time.Time
}

type UpdateSessionInput struct {
	MeetingLink   string
	ScheduledTime time.Time
}

type SessionUsecase interface {
	Create(ctx context.Context, caller profile.Profile, in CreateSessionInput) (SessionView, error)
	ListMine(ctx context.Context, caller profile.Profile) ([]SessionView, error)
	Get(ctx context.Context, caller profile.Profile, id uuid.UUID) (SessionView, error)
	Update(ctx context.Context, caller profile.Profile, id uuid.UUID, in UpdateSessionInput) (SessionView, error)
	UpdateStatus(ctx context.Context, caller profile.Profile, id uuid.UUID, status string) (session.Session, error)
	Delete(ctx context.Context, caller profile.Profile, id uuid.UUID) error
}

type Sessions struct {
	sessions session.Repository
	requests mentorship.Repository
	profiles profile.Repository
	logger   *zap.Logger
}

func NewSessionUsecase(sessions session.Repository, requests mentorship.Repository, profiles profile.Repository, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{sessions: sessions, requests: requests, profiles: profiles, logger: logger}
}

func (s *Sessions) Create(ctx context.Context, caller profile.Profile, in CreateSessionInput) (SessionView, error) {
	if !caller.IsMentor() {
		return SessionView{}, ErrForbidden
	}

	req, err := s.requests.GetByID(ctx, in.RequestID)
	if err != nil {
		return SessionView{}, err
	}
	if req.Status != mentorship.StatusAccepted {
		return SessionView{}, session.ErrRequestNotAccepted
	}
	if req.MentorID != caller.ID {
		return SessionView{}, ErrForbidden
	}

	sess := session.Session{
		ID:            uuid.New(),
		RequestID:     req.ID,
		MeetingLink:   in.MeetingLink,
		ScheduledTime: in.ScheduledTime,
		Status:        session.StatusScheduled,
	}

	// The repository re-checks the accepted precondition inside the
	// insert, so a request declined between the read above and the write
	// still cannot gain a session.
	if err := s.sessions.CreateForAcceptedRequest(ctx, sess); err != nil {
		return SessionView{}, err
	}

	created, err := s.sessions.GetByID(ctx, sess.ID)
	if err != nil {
		return SessionView{}, err
	}

	s.logger.Info("session created",
		zap.String("session_id", created.ID.String()),
		zap.String("request_id", req.ID.String()),
	)

	return s.expand(ctx, created, req)
}

func (s *Sessions) ListMine(ctx context.Context, caller profile.Profile) ([]SessionView, error) {
	var (
		sessions []session.Session
		err      error
	)
	if caller.IsMentee() {
		sessions, err = s.sessions.ListByMentee(ctx, caller.ID)
	} else {
		sessions, err = s.sessions.ListByMentor(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}

	reqIDs := make([]uuid.UUID, 0, len(sessions))
	for _, sess := range sessions {
		reqIDs = append(reqIDs, sess.RequestID)
	}
	reqs, err := s.requests.GetByIDs(ctx, reqIDs)
	if err != nil {
		return nil, err
	}

	profIDs := make([]uuid.UUID, 0, 2*len(reqs))
	for _, r := range reqs {
		profIDs = append(profIDs, r.MenteeID, r.MentorID)
	}
	profs, err := s.profiles.GetByIDs(ctx, profIDs)
	if err != nil {
		return nil, err
	}

	out := make([]SessionView, 0, len(sessions))
	for _, sess := range sessions {
		v := SessionView{Session: sess}
		if r, ok := reqs[sess.RequestID]; ok {
			v.Request = requestRef(r, profs)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Sessions) Get(ctx context.Context, caller profile.Profile, id uuid.UUID) (SessionView, error) {
	sess, req, err := s.load(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	if !req.IsParticipant(caller.ID) {
		return SessionView{}, ErrForbidden
	}
	return s.expand(ctx, sess, req)
}

func (s *Sessions) Update(ctx context.Context, caller profile.Profile, id uuid.UUID, in UpdateSessionInput) (SessionView, error) {
	sess, req, err := s.load(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	if req.MentorID != caller.ID {
		return SessionView{}, ErrForbidden
	}

	ok, err := s.sessions.UpdateSchedule(ctx, id, in.MeetingLink, in.ScheduledTime)
	if err != nil {
		return SessionView{}, err
	}
	if !ok {
		return SessionView{}, session.ErrNotFound
	}

	s.logger.Info("session rescheduled", zap.String("session_id", id.String()))

	sess.MeetingLink = in.MeetingLink
	sess.ScheduledTime = in.ScheduledTime
	return s.expand(ctx, sess, req)
}

func (s *Sessions) UpdateStatus(ctx context.Context, caller profile.Profile, id uuid.UUID, status string) (session.Session, error) {
	next := session.Status(status)
	if !next.Valid() {
		return session.Session{}, ErrInvalidSessionStatus
	}

	sess, req, err := s.load(ctx, id)
	if err != nil {
		return session.Session{}, err
	}
	if !req.IsParticipant(caller.ID) {
		return session.Session{}, ErrForbidden
	}

	ok, err := s.sessions.UpdateStatus(ctx, id, next)
	if err != nil {
		return session.Session{}, err
	}
	if !ok {
		return session.Session{}, session.ErrNotFound
	}

	s.logger.Info("session status updated",
		zap.String("session_id", id.String()),
		zap.String("status", string(next)),
	)

	sess.Status = next
	return sess, nil
}

func (s *Sessions) Delete(ctx context.Context, caller profile.Profile, id uuid.UUID) error {
	_, req, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if req.MentorID != caller.ID {
		return ErrForbidden
	}

	ok, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return session.ErrNotFound
	}

	s.logger.Info("session deleted", zap.String("session_id", id.String()))
	return nil
}

func (s *Sessions) load(ctx context.Context, id uuid.UUID) (session.Session, mentorship.Request, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return session.Session{}, mentorship.Request{}, err
	}
	req, err := s.requests.GetByID(ctx, sess.RequestID)
	if err != nil {
		return session.Session{}, mentorship.Request{}, err
	}
	return sess, req, nil
}

func (s *Sessions) expand(ctx context.Context, sess session.Session, req mentorship.Request) (SessionView, error) {
	profs, err := s.profiles.GetByIDs(ctx, []uuid.UUID{req.MenteeID, req.MentorID})
	if err != nil {
		return SessionView{}, err
	}
	return SessionView{Session: sess, Request: requestRef(req, profs)}, nil
}

func requestRef(req mentorship.Request, profs map[uuid.UUID]profile.Profile) *RequestRef {
	ref := &RequestRef{ID: req.ID}
	if p, ok := profs[req.MenteeID]; ok {
		ref.Mentee = &ParticipantRef{ID: p.ID, Name: p.Name}
	}
	if p, ok := profs[req.MentorID]; ok {
		ref.Mentor = &ParticipantRef{ID: p.ID, Name: p.Name, Industries: p.Industries}
	}
	return ref
}
