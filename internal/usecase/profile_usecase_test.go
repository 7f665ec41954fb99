package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mentorlink/internal/domain/mentorship"
	"mentorlink/internal/domain/profile"

	"github.com/google/uuid"
)

type fakeDirectoryCache struct {
	store   map[string][]byte
	gets    int
	sets    int
	deletes int
}

func newFakeDirectoryCache() *fakeDirectoryCache {
	return &fakeDirectoryCache{store: make(map[string][]byte)}
}

func (f *fakeDirectoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.gets++
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (f *fakeDirectoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeDirectoryCache) Delete(_ context.Context, key string) error {
	f.deletes++
	delete(f.store, key)
	return nil
}

func TestProfileCreate_InvalidRole(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfileRepo(), newFakeRequestRepo(), nil, nil)

	_, err := uc.Create(context.Background(), uuid.New(), CreateProfileInput{Name: "Dina", Role: "admin"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileCreate_MenteeIndustriesDropped(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfileRepo(), newFakeRequestRepo(), nil, nil)

	prof, err := uc.Create(context.Background(), uuid.New(), CreateProfileInput{
		Name:       "Dina",
		Role:       "mentee",
		Industries: []string{"fintech", "fintech"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(prof.Industries) != 0 {
		t.Fatalf("expected empty industries for mentee, got %v", prof.Industries)
	}
}

func TestProfileCreate_MentorIndustriesNormalized(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfileRepo(), newFakeRequestRepo(), nil, nil)

	prof, err := uc.Create(context.Background(), uuid.New(), CreateProfileInput{
		Name:       "Raka",
		Role:       "mentor",
		Industries: []string{" fintech ", "fintech", "", "edtech"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(prof.Industries) != 2 || prof.Industries[0] != "fintech" || prof.Industries[1] != "edtech" {
		t.Fatalf("unexpected industries %v", prof.Industries)
	}
}

func TestProfileCreate_OnePerUser(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfileRepo(), newFakeRequestRepo(), nil, nil)
	userID := uuid.New()

	if _, err := uc.Create(context.Background(), userID, CreateProfileInput{Name: "Dina", Role: "mentee"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := uc.Create(context.Background(), userID, CreateProfileInput{Name: "Dina", Role: "mentor"})
	if !errors.Is(err, profile.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestProfileUpdate_RoleLockedByActiveRequests(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusPending}
	uc := NewProfileUsecase(newFakeProfileRepo(mentee, mentor), newFakeRequestRepo(req), nil, nil)

	_, err := uc.Update(context.Background(), mentee, UpdateProfileInput{Name: mentee.Name, Role: "mentor"})
	if !errors.Is(err, ErrRoleLocked) {
		t.Fatalf("expected ErrRoleLocked, got %v", err)
	}
}

func TestProfileUpdate_RoleChangeAfterDecline(t *testing.T) {
	mentee := testMentee()
	mentor := testMentor()
	req := mentorship.Request{ID: uuid.New(), MenteeID: mentee.ID, MentorID: mentor.ID, Status: mentorship.StatusDeclined}
	uc := NewProfileUsecase(newFakeProfileRepo(mentee, mentor), newFakeRequestRepo(req), nil, nil)

	updated, err := uc.Update(context.Background(), mentee, UpdateProfileInput{
		Name:       mentee.Name,
		Role:       "mentor",
		Industries: []string{"fintech"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Role != profile.RoleMentor {
		t.Fatalf("expected mentor role, got %s", updated.Role)
	}
}

func TestProfileGetMentor_RejectsMentee(t *testing.T) {
	mentee := testMentee()
	uc := NewProfileUsecase(newFakeProfileRepo(mentee), newFakeRequestRepo(), nil, nil)

	_, err := uc.GetMentor(context.Background(), mentee.ID)
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileListMentors_CachesDirectory(t *testing.T) {
	mentor := testMentor()
	repo := newFakeProfileRepo(mentor)
	cache := newFakeDirectoryCache()
	uc := NewProfileUsecase(repo, newFakeRequestRepo(), cache, nil)

	first, err := uc.ListMentors(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 mentor, got %d", len(first))
	}
	if cache.sets != 1 {
		t.Fatalf("expected directory cached, sets=%d", cache.sets)
	}

	// A repo failure on the second call is invisible while the cache holds.
	repo.err = errors.New("db down")
	second, err := uc.ListMentors(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second) != 1 || second[0].ID != mentor.ID {
		t.Fatalf("expected cached mentor list")
	}
}

func TestProfileUpdate_InvalidatesMentorDirectory(t *testing.T) {
	mentor := testMentor()
	cache := newFakeDirectoryCache()
	uc := NewProfileUsecase(newFakeProfileRepo(mentor), newFakeRequestRepo(), cache, nil)

	if _, err := uc.ListMentors(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Update(context.Background(), mentor, UpdateProfileInput{
		Name:       "Raka S.",
		Role:       "mentor",
		Industries: mentor.Industries,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.deletes == 0 {
		t.Fatalf("expected directory invalidated on update")
	}
	if _, ok := cache.store[mentorDirectoryCacheKey]; ok {
		t.Fatalf("expected cache entry removed")
	}
}
