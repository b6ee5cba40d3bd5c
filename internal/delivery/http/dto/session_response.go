package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID          uuid.UUID  `json:"id"`
	FromUserID  uuid.UUID  `json:"from_user_id"`
	ToUserID    uuid.UUID  `json:"to_user_id"`
	SkillID     *uuid.UUID `json:"skill_id"`
	Status      string     `json:"status"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Location    string     `json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SessionCalendarResponse struct {
	GoogleCalendarURL string `json:"google_calendar_url"`
}
