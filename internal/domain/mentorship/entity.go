package mentorship

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Request is a mentee's proposal to a mentor. It starts pending and moves
// exactly once to accepted or declined; a pending request may instead be
// cancelled (deleted) by its mentee.
type Request struct {
	ID            uuid.UUID `json:"id"`
	MenteeID      uuid.UUID `json:"mentee_id"`
	MentorID      uuid.UUID `json:"mentor_id"`
	Proposal      string    `json:"proposal"`
	PreferredTime time.Time `json:"preferred_time"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsParticipant reports whether the given profile is either side of the
// request.
func (r Request) IsParticipant(profileID uuid.UUID) bool {
	return r.MenteeID == profileID || r.MentorID == profileID
}
