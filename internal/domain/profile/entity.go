package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

type Profile struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	Industries []string  `json:"industries"`
	About      *string   `json:"about,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p Profile) IsMentor() bool {
	return p.Role == RoleMentor
}

func (p Profile) IsMentee() bool {
	return p.Role == RoleMentee
}
