package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists for this user")
)

type Repository interface {
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)

	// GetByIDs returns the found profiles keyed by id; missing ids are
	// simply absent from the map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Profile, error)

	ListByRole(ctx context.Context, role Role) ([]Profile, error)
}
