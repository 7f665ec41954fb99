package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorlink/internal/domain/mentorship"
	"mentorlink/internal/domain/session"

	"github.com/google/uuid"
)

type fakeSessionRepo struct {
	byID     map[uuid.UUID]session.Session
	requests *fakeRequestRepo
}

func newFakeSessionRepo(requests *fakeRequestRepo, sessions ...session.Session) *fakeSessionRepo {
	f := &fakeSessionRepo{byID: make(map[uuid.UUID]session.Session), requests: requests}
	for _, s := range sessions {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSessionRepo) CreateForAcceptedRequest(_ context.Context, s session.Session) error {
	for _, existing := range f.byID {
		if existing.RequestID == s.RequestID {
			return session.ErrAlreadyExists
		}
	}
	req, ok := f.requests.byID[s.RequestID]
	if !ok || req.Status != mentorship.StatusAccepted {
		return session.ErrRequestNotAccepted
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (session.Session, error) {
	s, ok := f.byID[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) ListByMentee(_ context.Context, menteeID uuid.UUID) ([]session.Session, error) {
	var out []session.Session
	for _, s := range f.byID {
		if req, ok := f.requests.byID[s.RequestID]; ok && req.MenteeID == menteeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByMentor(_ context.Context, mentorID uuid.UUID) ([]session.Session, error) {
	var out []session.Session
	for _, s := range f.byID {
		if req, ok := f.requests.byID[s.RequestID]; ok && req.MentorID == mentorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpdateSchedule(_ context.Context, id uuid.UUID, meetingLink string, scheduledTime time.Time) (bool, error) {
	s, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	s.MeetingLink = meetingLink
	s.ScheduledTime = scheduledTime
	f.byID[id] = s
	return true, nil
}

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status session.Status) (bool, error) {
	s, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	s.Status = status
	f.byID[id] = s
	return true, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func TestSessionCreate_RejectsMenteeCaller(t *testing.T) {
	mentee := testMentee()
	uc := NewSessionUsecase(newFakeSessionRepo(newFakeRequestRepo()), newFakeRequestRepo(), newFakeProfileRepo(mentee), nil)

	_, err := uc.Create(context.Background(), mentee, CreateSessionInput{RequestID: uuid.New()})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionCreate_RequestMissing(t *testing.T) {
	mentor := testMentor()
	requests := newFakeRequestRepo()
	uc := NewSessionUsecase(newFakeSessionRepo(requests), requests, newFakeProfileRepo(mentor), nil)

	_, err := uc.Create(context.Background(), mentor, CreateSessionInput{RequestID: uuid.New()})
	if !errors.Is(err, mentorship.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionCreate_RequestNotAccepted(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusPending}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests), requests, newFakeProfileRepo(mentee, mentor), nil)

	_, err := uc.Create(context.Background(), mentor, CreateSessionInput{RequestID: req.ID})
	if !errors.Is(err, session.ErrRequestNotAccepted) {
		t.Fatalf("expected ErrRequestNotAccepted, got %v", err)
	}
}

func TestSessionCreate_OnlyOwningMentor(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	other := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests), requests, newFakeProfileRepo(mentee, mentor, other), nil)

	_, err := uc.Create(context.Background(), other, CreateSessionInput{RequestID: req.ID})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionCreate_Success(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests), requests, newFakeProfileRepo(mentee, mentor), nil)

	view, err := uc.Create(context.Background(), mentor, CreateSessionInput{
		RequestID:     req.ID,
		MeetingLink:   "https://meet.example.com/abc",
		ScheduledTime: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.Status != session.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", view.Status)
	}
	if view.Request == nil || view.Request.ID != req.ID {
		t.Fatalf("expected expanded request ref")
	}
	if view.Request.Mentee == nil || view.Request.Mentor == nil {
		t.Fatalf("expected both participant refs")
	}
}

func TestSessionCreate_OnePerRequest(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests), requests, newFakeProfileRepo(mentee, mentor), nil)

	in := CreateSessionInput{RequestID: req.ID, MeetingLink: "https://meet.example.com/abc", ScheduledTime: time.Now()}
	if _, err := uc.Create(context.Background(), mentor, in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := uc.Create(context.Background(), mentor, in)
	if !errors.Is(err, session.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSessionGet_NonParticipant(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	outsider := testMentee()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	sess := session.Session{ID: uuid.New(), RequestID: req.ID, Status: session.StatusScheduled}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests, sess), requests, newFakeProfileRepo(mentee, mentor, outsider), nil)

	_, err := uc.Get(context.Background(), outsider, sess.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionUpdate_MenteeCannotReschedule(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	sess := session.Session{ID: uuid.New(), RequestID: req.ID, Status: session.StatusScheduled}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests, sess), requests, newFakeProfileRepo(mentee, mentor), nil)

	_, err := uc.Update(context.Background(), mentee, sess.ID, UpdateSessionInput{MeetingLink: "https://meet.example.com/x"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionUpdateStatus_EitherParticipant(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	sess := session.Session{ID: uuid.New(), RequestID: req.ID, Status: session.StatusScheduled}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests, sess), requests, newFakeProfileRepo(mentee, mentor), nil)

	got, err := uc.UpdateStatus(context.Background(), mentee, sess.ID, "completed")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != session.StatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}

	// The status set is flat, so moving back to scheduled is allowed.
	got, err = uc.UpdateStatus(context.Background(), mentor, sess.ID, "scheduled")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != session.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", got.Status)
	}
}

func TestSessionUpdateStatus_InvalidValue(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	sess := session.Session{ID: uuid.New(), RequestID: req.ID, Status: session.StatusScheduled}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests, sess), requests, newFakeProfileRepo(mentee, mentor), nil)

	_, err := uc.UpdateStatus(context.Background(), mentee, sess.ID, "postponed")
	if !errors.Is(err, ErrInvalidSessionStatus) {
		t.Fatalf("expected ErrInvalidSessionStatus, got %v", err)
	}
}

func TestSessionDelete_MenteeForbidden(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	sess := session.Session{ID: uuid.New(), RequestID: req.ID, Status: session.StatusScheduled}
	requests := newFakeRequestRepo(req)
	uc := NewSessionUsecase(newFakeSessionRepo(requests, sess), requests, newFakeProfileRepo(mentee, mentor), nil)

	if err := uc.Delete(context.Background(), mentee, sess.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.Delete(context.Background(), mentor, sess.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestSessionListMine_FiltersByParticipant(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	otherMentee := testMentee()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	otherReq := mentorship.Request{ID: uuid.New(), MenteeID: otherMentee.ID, MentorID: mentor.ID, Status: mentorship.StatusAccepted}
	sess := session.Session{ID: uuid.New(), RequestID: req.ID, Status: session.StatusScheduled}
	otherSess := session.Session{ID: uuid.New(), RequestID: otherReq.ID, Status: session.StatusScheduled}
	requests := newFakeRequestRepo(req, otherReq)
	uc := NewSessionUsecase(newFakeSessionRepo(requests, sess, otherSess), requests, newFakeProfileRepo(mentee, mentor, otherMentee), nil)

	views, err := uc.ListMine(context.Background(), mentee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 session for mentee, got %d", len(views))
	}
	if views[0].ID != sess.ID {
		t.Fatalf("unexpected session id")
	}

	views, err = uc.ListMine(context.Background(), mentor)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 sessions for mentor, got %d", len(views))
	}
}
