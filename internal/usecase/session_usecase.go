package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/domain/geo"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/ics"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidSessionTime    = errors.New("session must be scheduled in the future")
	ErrInvalidStatusChange   = errors.New("invalid status change")
	ErrCannotRequestYourself = errors.New("cannot request a session with yourself")
	ErrSessionNotConfirmed   = errors.New("session not confirmed")
)

type CreateSessionInput struct {
	ToUserID    uuid.UUID
	SkillID     *uuid.UUID
	ScheduledAt time.Time
	EndsAt      *time.Time
	Location    string
	Latitude    *float64
	Longitude   *float64
	Notes       string
}

// SessionCalendar is the exportable form of a confirmed session.
type SessionCalendar struct {
	ICS               string
	GoogleCalendarURL string
}

type SessionUsecase interface {
	Create(ctx context.Context, fromUserID uuid.UUID, in CreateSessionInput) (repository.Session, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (repository.Session, error)
	List(ctx context.Context, userID uuid.UUID) ([]repository.Session, error)
	ChangeStatus(ctx context.Context, userID, sessionID uuid.UUID, status string) (repository.Session, error)
	Calendar(ctx context.Context, userID, sessionID uuid.UUID) (SessionCalendar, error)
}

type Session struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	skills   repository.SkillRepository
	notifier Notifier
	now      func() time.Time
}

func NewSessionUsecase(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	skills repository.SkillRepository,
	notifier Notifier,
) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Session{sessions: sessions, users: users, skills: skills, notifier: notifier, now: time.Now}
}

func (s *Session) Create(ctx context.Context, fromUserID uuid.UUID, in CreateSessionInput) (repository.Session, error) {
	if in.ToUserID == uuid.Nil {
		return repository.Session{}, ErrInvalidInput
	}
	if in.ToUserID == fromUserID {
		return repository.Session{}, ErrCannotRequestYourself
	}
	if !in.ScheduledAt.After(s.now()) {
		return repository.Session{}, ErrInvalidSessionTime
	}
	if in.EndsAt != nil && !in.EndsAt.After(in.ScheduledAt) {
		return repository.Session{}, ErrInvalidInput
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return repository.Session{}, ErrInvalidCoordinate
	}
	if in.Latitude != nil {
		if err := geo.ValidateCoordinates(*in.Latitude, *in.Longitude); err != nil {
			return repository.Session{}, ErrInvalidCoordinate
		}
	}

	if _, err := s.users.GetByID(ctx, in.ToUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.Session{}, ErrUserNotFound
		}
		return repository.Session{}, ErrInternal
	}
	if in.SkillID != nil {
		if _, err := s.skills.GetByID(ctx, *in.SkillID); err != nil {
			if errors.Is(err, repository.ErrSkillNotFound) {
				return repository.Session{}, ErrSkillNotFound
			}
			return repository.Session{}, ErrInternal
		}
	}

	sess := repository.Session{
		ID:          uuid.New(),
		FromUserID:  fromUserID,
		ToUserID:    in.ToUserID,
		SkillID:     in.SkillID,
		Status:      repository.SessionStatusPending,
		ScheduledAt: in.ScheduledAt,
		EndsAt:      in.EndsAt,
		Location:    strings.TrimSpace(in.Location),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return repository.Session{}, ErrInternal
	}

	created, err := s.sessions.GetByID(ctx, sess.ID)
	if err != nil {
		return repository.Session{}, ErrInternal
	}

	s.notifier.Notify(created.ToUserID, EventSessionRequested, created)
	return created, nil
}

func (s *Session) Get(ctx context.Context, userID, sessionID uuid.UUID) (repository.Session, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return repository.Session{}, ErrSessionNotFound
		}
		return repository.Session{}, ErrInternal
	}
	if !isParticipant(sess, userID) {
		return repository.Session{}, ErrForbidden
	}
	return sess, nil
}

func (s *Session) List(ctx context.Context, userID uuid.UUID) ([]repository.Session, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return sessions, nil
}

// ChangeStatus applies the session lifecycle: only the recipient may
// confirm, either side may cancel, and only confirmed sessions complete.
// Canceled and completed are terminal.
func (s *Session) ChangeStatus(ctx context.Context, userID, sessionID uuid.UUID, status string) (repository.Session, error) {
	sess, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return repository.Session{}, err
	}

	if !allowedTransition(sess, userID, status) {
		return repository.Session{}, ErrInvalidStatusChange
	}

	if err := s.sessions.UpdateStatus(ctx, sessionID, status); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return repository.Session{}, ErrSessionNotFound
		}
		return repository.Session{}, ErrInternal
	}

	updated, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return repository.Session{}, ErrInternal
	}

	s.notifier.Notify(otherParticipant(updated, userID), EventSessionStatusChanged, updated)
	return updated, nil
}

// Calendar renders an iCalendar file and a Google Calendar link for one
// session the user participates in.
func (s *Session) Calendar(ctx context.Context, userID, sessionID uuid.UUID) (SessionCalendar, error) {
	sess, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return SessionCalendar{}, err
	}
	if sess.Status != repository.SessionStatusConfirmed {
		return SessionCalendar{}, ErrSessionNotConfirmed
	}

	peer, err := s.users.GetByID(ctx, otherParticipant(sess, userID))
	if err != nil {
		return SessionCalendar{}, ErrInternal
	}

	title := "Skill session with " + peer.Handle
	if sess.SkillID != nil {
		if sk, err := s.skills.GetByID(ctx, *sess.SkillID); err == nil {
			title = fmt.Sprintf("%s: %s", sk.Name, peer.Handle)
		}
	}

	event := ics.Event{
		UID:         sess.ID.String() + "@skillswap",
		Title:       title,
		Description: sess.Notes,
		Location:    sess.Location,
		Start:       sess.ScheduledAt,
	}
	if sess.EndsAt != nil {
		event.End = *sess.EndsAt
	}

	return SessionCalendar{
		ICS:               ics.Render(event),
		GoogleCalendarURL: ics.GoogleCalendarURL(event),
	}, nil
}

func isParticipant(sess repository.Session, userID uuid.UUID) bool {
	return sess.FromUserID == userID || sess.ToUserID == userID
}

func otherParticipant(sess repository.Session, userID uuid.UUID) uuid.UUID {
	if sess.FromUserID == userID {
		return sess.ToUserID
	}
	return sess.FromUserID
}

func allowedTransition(sess repository.Session, userID uuid.UUID, status string) bool {
	switch sess.Status {
	case repository.SessionStatusPending:
		if status == repository.SessionStatusConfirmed {
			return sess.ToUserID == userID
		}
		return status == repository.SessionStatusCanceled
	case repository.SessionStatusConfirmed:
		if status == repository.SessionStatusCompleted {
			return sess.ToUserID == userID
		}
		return status == repository.SessionStatusCanceled
	default:
		return false
	}
}
