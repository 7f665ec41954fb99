package auth

import (
	"context"
	"errors"
	"testing"

	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), RegisterInput{Email: "  Dina@Example.COM ", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "dina@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "dina@example.com", Password: "12345"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	in := RegisterInput{Email: "dina@example.com", Password: "secret1"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Email: "DINA@example.com", Password: "other-pass"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	registered, err := svc.Register(context.Background(), RegisterInput{Email: "dina@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "dina@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.ID != registered.ID {
		t.Fatalf("unexpected user")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "dina@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{Email: "dina@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "secret1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
