package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID     uuid.UUID `json:"id"`
	Handle string    `json:"handle"`
	Email  string    `json:"email,omitempty"`
}

type ProfileResponse struct {
	ID            uuid.UUID           `json:"id"`
	Handle        string              `json:"handle"`
	Bio           string              `json:"bio"`
	Location      string              `json:"location"`
	Latitude      *float64            `json:"latitude"`
	Longitude     *float64            `json:"longitude"`
	OfferedSkills []SkillLinkResponse `json:"offered_skills"`
	WantedSkills  []SkillLinkResponse `json:"wanted_skills"`
	AverageRating float64             `json:"average_rating"`
	ReviewCount   int                 `json:"review_count"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}
