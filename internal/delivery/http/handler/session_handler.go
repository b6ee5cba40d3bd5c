package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/dto"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/middleware"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/response"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
	"github.com/Yassinemathlouthi/skillswap/internal/usecase"
)

type SessionHandler struct {
	uc usecase.SessionUsecase
}

type createSessionRequest struct {
	ToUserID    uuid.UUID  `json:"to_user_id"`
	SkillID     *uuid.UUID `json:"skill_id"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Location    string     `json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Notes       string     `json:"notes"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Patch("/:id/status", h.ChangeStatus)
	r.Get("/:id/calendar.ics", h.CalendarICS)
	r.Get("/:id/calendar", h.CalendarLink)
}

func (h *SessionHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sess, err := h.uc.Create(c.Context(), userID, usecase.CreateSessionInput{
		ToUserID:    req.ToUserID,
		SkillID:     req.SkillID,
		ScheduledAt: req.ScheduledAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, sessionResponse(sess))
}

func (h *SessionHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessions, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	sessions = filterSessionsByTime(sessions, c.Query("when"), time.Now())

	res := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, sessionResponse(s))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// filterSessionsByTime narrows the list to ?when=upcoming or ?when=past.
// Anything else returns the full list.
func filterSessionsByTime(sessions []repository.Session, when string, now time.Time) []repository.Session {
	if when != "upcoming" && when != "past" {
		return sessions
	}
	out := make([]repository.Session, 0, len(sessions))
	for _, s := range sessions {
		upcoming := s.ScheduledAt.After(now)
		if (when == "upcoming") == upcoming {
			out = append(out, s)
		}
	}
	return out
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	userID, sessionID, appErr := sessionParams(c)
	if appErr != nil {
		return appErr
	}

	sess, err := h.uc.Get(c.Context(), userID, sessionID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sessionResponse(sess))
}

func (h *SessionHandler) ChangeStatus(c fiber.Ctx) error {
	userID, sessionID, appErr := sessionParams(c)
	if appErr != nil {
		return appErr
	}

	var req changeStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sess, err := h.uc.ChangeStatus(c.Context(), userID, sessionID, req.Status)
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sessionResponse(sess))
}

// CalendarICS serves the session as a downloadable iCalendar file.
func (h *SessionHandler) CalendarICS(c fiber.Ctx) error {
	userID, sessionID, appErr := sessionParams(c)
	if appErr != nil {
		return appErr
	}

	cal, err := h.uc.Calendar(c.Context(), userID, sessionID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="session.ics"`)
	return c.SendString(cal.ICS)
}

func (h *SessionHandler) CalendarLink(c fiber.Ctx) error {
	userID, sessionID, appErr := sessionParams(c)
	if appErr != nil {
		return appErr
	}

	cal, err := h.uc.Calendar(c.Context(), userID, sessionID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SessionCalendarResponse{
		GoogleCalendarURL: cal.GoogleCalendarURL,
	})
}

func sessionParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return userID, sessionID, nil
}

func sessionResponse(s repository.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:          s.ID,
		FromUserID:  s.FromUserID,
		ToUserID:    s.ToUserID,
		SkillID:     s.SkillID,
		Status:      s.Status,
		ScheduledAt: s.ScheduledAt,
		EndsAt:      s.EndsAt,
		Location:    s.Location,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
	}
}

func mapSessionUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrCannotRequestYourself):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot request a session with yourself", nil, err)
	case errors.Is(err, usecase.ErrInvalidSessionTime):
		return middleware.NewAppError(fiber.StatusBadRequest, "Session must be scheduled in the future", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatusChange):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status change", nil, err)
	case errors.Is(err, usecase.ErrSessionNotConfirmed):
		return middleware.NewAppError(fiber.StatusConflict, "Session not confirmed", nil, err)
	case errors.Is(err, usecase.ErrInvalidCoordinate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid coordinates", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
