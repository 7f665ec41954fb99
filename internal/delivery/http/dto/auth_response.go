package dto

import (
	"mentorlink/internal/domain/profile"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type AuthResponse struct {
	User         UserResponse     `json:"user"`
	Profile      *profile.Profile `json:"profile,omitempty"`
	AccessToken  string           `json:"access_token,omitempty"`
	RefreshToken string           `json:"refresh_token,omitempty"`
}

func NewAuthResponse(u user.User, p *profile.Profile, access, refresh string) AuthResponse {
	return AuthResponse{
		User:         UserResponse{ID: u.ID, Email: u.Email},
		Profile:      p,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
