package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mentorlink/internal/domain/mentorship"
	"mentorlink/internal/domain/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRoleLocked rejects a role change while the profile is still tied to
// non-declined mentorship requests; switching sides would orphan them.
var ErrRoleLocked = errors.New("role cannot change while mentorship requests are active")

const (
	mentorDirectoryCacheKey = "profiles:mentors"
	mentorDirectoryCacheTTL = 5 * time.Minute
)

// DirectoryCache is the read cache in front of the public mentor listing.
type DirectoryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type CreateProfileInput struct {
	Name       string
	Role       string
	Industries []string
	About      *string
}

type UpdateProfileInput struct {
	Name       string
	Role       string
	Industries []string
	About      *string
}

type ProfileUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateProfileInput) (profile.Profile, error)
	Update(ctx context.Context, current profile.Profile, in UpdateProfileInput) (profile.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	GetMentor(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	ListMentors(ctx context.Context) ([]profile.Profile, error)
	ListMentees(ctx context.Context) ([]profile.Profile, error)
}

type Profiles struct {
	profiles profile.Repository
	requests mentorship.Repository
	cache    DirectoryCache
	logger   *zap.Logger
}

func NewProfileUsecase(profiles profile.Repository, requests mentorship.Repository, cache DirectoryCache, logger *zap.Logger) *Profiles {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiles{profiles: profiles, requests: requests, cache: cache, logger: logger}
}

func (p *Profiles) Create(ctx context.Context, userID uuid.UUID, in CreateProfileInput) (profile.Profile, error) {
	role := profile.Role(in.Role)
	if !role.Valid() {
		return profile.Profile{}, ErrInvalidInput
	}

	prof := profile.Profile{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       in.Name,
		Role:       role,
		Industries: normalizeIndustries(role, in.Industries),
		About:      in.About,
	}

	if err := p.profiles.Create(ctx, prof); err != nil {
		return profile.Profile{}, err
	}

	created, err := p.profiles.GetByID(ctx, prof.ID)
	if err != nil {
		return profile.Profile{}, err
	}

	p.logger.Info("profile created",
		zap.String("profile_id", created.ID.String()),
		zap.String("role", string(created.Role)),
	)

	p.invalidateDirectory(ctx, created.Role)
	return created, nil
}

func (p *Profiles) Update(ctx context.Context, current profile.Profile, in UpdateProfileInput) (profile.Profile, error) {
	role := profile.Role(in.Role)
	if !role.Valid() {
		return profile.Profile{}, ErrInvalidInput
	}

	if role != current.Role {
		active, err := p.requests.HasActiveForProfile(ctx, current.ID)
		if err != nil {
			return profile.Profile{}, err
		}
		if active {
			return profile.Profile{}, ErrRoleLocked
		}
	}

	next := current
	next.Name = in.Name
	next.Role = role
	next.Industries = normalizeIndustries(role, in.Industries)
	next.About = in.About

	if err := p.profiles.Update(ctx, next); err != nil {
		return profile.Profile{}, err
	}

	updated, err := p.profiles.GetByID(ctx, next.ID)
	if err != nil {
		return profile.Profile{}, err
	}

	p.logger.Info("profile updated", zap.String("profile_id", updated.ID.String()))

	p.invalidateDirectory(ctx, current.Role)
	p.invalidateDirectory(ctx, updated.Role)
	return updated, nil
}

func (p *Profiles) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	return p.profiles.GetByID(ctx, id)
}

func (p *Profiles) GetMentor(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	prof, err := p.profiles.GetByID(ctx, id)
	if err != nil {
		return profile.Profile{}, err
	}
	if !prof.IsMentor() {
		return profile.Profile{}, profile.ErrNotFound
	}
	return prof, nil
}

func (p *Profiles) ListMentors(ctx context.Context) ([]profile.Profile, error) {
	if p.cache != nil {
		var cached []profile.Profile
		if hit, err := p.cache.GetJSON(ctx, mentorDirectoryCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	mentors, err := p.profiles.ListByRole(ctx, profile.RoleMentor)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		_ = p.cache.SetJSON(ctx, mentorDirectoryCacheKey, mentors, mentorDirectoryCacheTTL)
	}
	return mentors, nil
}

func (p *Profiles) ListMentees(ctx context.Context) ([]profile.Profile, error) {
	return p.profiles.ListByRole(ctx, profile.RoleMentee)
}

func (p *Profiles) invalidateDirectory(ctx context.Context, role profile.Role) {
	if p.cache == nil || role != profile.RoleMentor {
		return
	}
	_ = p.cache.Delete(ctx, mentorDirectoryCacheKey)
}

func normalizeIndustries(role profile.Role, industries []string) []string {
	if role != profile.RoleMentor {
		return []string{}
	}
	seen := make(map[string]struct{}, len(industries))
	out := make([]string, 0, len(industries))
	for _, ind := range industries {
		ind = strings.TrimSpace(ind)
		if ind == "" {
			continue
		}
		if _, ok := seen[ind]; ok {
			continue
		}
		seen[ind] = struct{}{}
		out = append(out, ind)
	}
	return out
}
