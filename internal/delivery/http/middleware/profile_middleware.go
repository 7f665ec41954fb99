package middleware

import (
	"mentorlink/internal/domain/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxProfileKey = "profile"

type ProfileMiddleware struct {
	profiles profile.Repository
}

func NewProfileMiddleware(profiles profile.Repository) *ProfileMiddleware {
	return &ProfileMiddleware{profiles: profiles}
}

// RequireProfile resolves the authenticated user's profile and stores it
// in the request context. Missing profile is an entitlement failure, not a
// missing resource.
func (m *ProfileMiddleware) RequireProfile() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "not authorized", nil, nil)
		}

		prof, err := m.profiles.GetByUserID(c.Context(), userID)
		if err != nil {
			return NewAppError(fiber.StatusForbidden, "profile required, complete your profile first", nil, err)
		}

		c.Locals(CtxProfileKey, prof)
		return c.Next()
	}
}

// RequireRole gates a route on the resolved profile's role. It must run
// after RequireProfile.
func RequireRole(role profile.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		prof, ok := c.Locals(CtxProfileKey).(profile.Profile)
		if !ok {
			return NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
		}
		if prof.Role != role {
			return NewAppError(fiber.StatusForbidden, "access denied, "+string(role)+" role required", nil, nil)
		}
		return c.Next()
	}
}

// ProfileFromCtx returns the profile placed by RequireProfile.
func ProfileFromCtx(c fiber.Ctx) (profile.Profile, bool) {
	prof, ok := c.Locals(CtxProfileKey).(profile.Profile)
	return prof, ok
}
