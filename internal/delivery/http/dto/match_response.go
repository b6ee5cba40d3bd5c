package dto

import "github.com/google/uuid"

type MatchResponse struct {
	UserID         uuid.UUID       `json:"user_id"`
	Handle         string          `json:"handle"`
	MatchCount     int             `json:"match_count"`
	MatchingSkills []SkillResponse `json:"matching_skills"`
}

type PerfectMatchResponse struct {
	UserID          uuid.UUID       `json:"user_id"`
	Handle          string          `json:"handle"`
	YouTeachCount   int             `json:"you_teach_count"`
	TheyTeachCount  int             `json:"they_teach_count"`
	TotalScore      int             `json:"total_score"`
	YouTeachSkills  []SkillResponse `json:"you_teach_skills"`
	TheyTeachSkills []SkillResponse `json:"they_teach_skills"`
}

type NearbyUserResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Handle     string    `json:"handle"`
	Location   string    `json:"location"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DistanceKm float64   `json:"distance_km"`
}
