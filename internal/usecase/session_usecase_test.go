package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

type mockSessionRepo struct {
	store map[uuid.UUID]repository.Session
	err   error
}

func newMockSessionRepo(sessions ...repository.Session) *mockSessionRepo {
	m := &mockSessionRepo{store: make(map[uuid.UUID]repository.Session)}
	for _, s := range sessions {
		m.store[s.ID] = s
	}
	return m
}

func (m *mockSessionRepo) Create(_ context.Context, s repository.Session) error {
	if m.err != nil {
		return m.err
	}
	m.store[s.ID] = s
	return nil
}
func (m *mockSessionRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Session, error) {
	if m.err != nil {
		return repository.Session{}, m.err
	}
	s, ok := m.store[id]
	if !ok {
		return repository.Session{}, repository.ErrSessionNotFound
	}
	return s, nil
}
func (m *mockSessionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]repository.Session, error) {
	out := make([]repository.Session, 0)
	for _, s := range m.store {
		if s.FromUserID == userID || s.ToUserID == userID {
			out = append(out, s)
		}
	}
	return out, m.err
}
func (m *mockSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s, ok := m.store[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	s.Status = status
	m.store[id] = s
	return nil
}

type recordNotifier struct {
	userIDs []uuid.UUID
	events  []string
}

func (n *recordNotifier) Notify(userID uuid.UUID, event string, _ any) {
	n.userIDs = append(n.userIDs, userID)
	n.events = append(n.events, event)
}

func sessionUsers(from, to uuid.UUID) mockUserRepo {
	return mockUserRepo{users: map[uuid.UUID]repository.User{
		from: {ID: from, Handle: "amir"},
		to:   {ID: to, Handle: "bea"},
	}}
}

func TestSessionUsecase_Create_SelfRequest(t *testing.T) {
	userID := uuid.New()
	uc := NewSessionUsecase(newMockSessionRepo(), sessionUsers(userID, userID), mockSkillRepo{}, nil)

	_, err := uc.Create(context.Background(), userID, CreateSessionInput{
		ToUserID:    userID,
		ScheduledAt: time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrCannotRequestYourself) {
		t.Fatalf("expected ErrCannotRequestYourself, got %v", err)
	}
}

func TestSessionUsecase_Create_PastTime(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	uc := NewSessionUsecase(newMockSessionRepo(), sessionUsers(from, to), mockSkillRepo{}, nil)

	_, err := uc.Create(context.Background(), from, CreateSessionInput{
		ToUserID:    to,
		ScheduledAt: time.Now().Add(-time.Hour),
	})
	if !errors.Is(err, ErrInvalidSessionTime) {
		t.Fatalf("expected ErrInvalidSessionTime, got %v", err)
	}
}

func TestSessionUsecase_Create_NotifiesRecipient(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	notifier := &recordNotifier{}
	uc := NewSessionUsecase(newMockSessionRepo(), sessionUsers(from, to), mockSkillRepo{}, notifier)

	sess, err := uc.Create(context.Background(), from, CreateSessionInput{
		ToUserID:    to,
		ScheduledAt: time.Now().Add(time.Hour),
		Location:    "Cafe",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sess.Status != repository.SessionStatusPending {
		t.Fatalf("expected pending status, got %s", sess.Status)
	}
	if len(notifier.userIDs) != 1 || notifier.userIDs[0] != to {
		t.Fatalf("expected notification to recipient, got %v", notifier.userIDs)
	}
	if notifier.events[0] != EventSessionRequested {
		t.Fatalf("unexpected event: %s", notifier.events[0])
	}
}

func TestSessionUsecase_ChangeStatus_OnlyRecipientConfirms(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status: repository.SessionStatusPending, ScheduledAt: time.Now().Add(time.Hour),
	}
	uc := NewSessionUsecase(newMockSessionRepo(sess), sessionUsers(from, to), mockSkillRepo{}, nil)

	_, err := uc.ChangeStatus(context.Background(), from, sess.ID, repository.SessionStatusConfirmed)
	if !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("requester must not confirm, got %v", err)
	}

	updated, err := uc.ChangeStatus(context.Background(), to, sess.ID, repository.SessionStatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != repository.SessionStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
}

func TestSessionUsecase_ChangeStatus_OnlyRecipientCompletes(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status: repository.SessionStatusConfirmed, ScheduledAt: time.Now().Add(-time.Hour),
	}
	uc := NewSessionUsecase(newMockSessionRepo(sess), sessionUsers(from, to), mockSkillRepo{}, nil)

	_, err := uc.ChangeStatus(context.Background(), from, sess.ID, repository.SessionStatusCompleted)
	if !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("requester must not complete, got %v", err)
	}

	updated, err := uc.ChangeStatus(context.Background(), to, sess.ID, repository.SessionStatusCompleted)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != repository.SessionStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
}

func TestSessionUsecase_ChangeStatus_EitherCancelsConfirmed(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status: repository.SessionStatusConfirmed, ScheduledAt: time.Now().Add(time.Hour),
	}
	uc := NewSessionUsecase(newMockSessionRepo(sess), sessionUsers(from, to), mockSkillRepo{}, nil)

	updated, err := uc.ChangeStatus(context.Background(), from, sess.ID, repository.SessionStatusCanceled)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != repository.SessionStatusCanceled {
		t.Fatalf("expected canceled, got %s", updated.Status)
	}
}

func TestSessionUsecase_ChangeStatus_TerminalStates(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status: repository.SessionStatusCompleted, ScheduledAt: time.Now().Add(-time.Hour),
	}
	uc := NewSessionUsecase(newMockSessionRepo(sess), sessionUsers(from, to), mockSkillRepo{}, nil)

	_, err := uc.ChangeStatus(context.Background(), to, sess.ID, repository.SessionStatusCanceled)
	if !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("completed sessions must be terminal, got %v", err)
	}
}

func TestSessionUsecase_ChangeStatus_NonParticipant(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status: repository.SessionStatusPending, ScheduledAt: time.Now().Add(time.Hour),
	}
	uc := NewSessionUsecase(newMockSessionRepo(sess), sessionUsers(from, to), mockSkillRepo{}, nil)

	_, err := uc.ChangeStatus(context.Background(), uuid.New(), sess.ID, repository.SessionStatusCanceled)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionUsecase_Calendar_PendingRejected(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status: repository.SessionStatusPending, ScheduledAt: time.Now().Add(time.Hour),
	}
	uc := NewSessionUsecase(newMockSessionRepo(sess), sessionUsers(from, to), mockSkillRepo{}, nil)

	_, err := uc.Calendar(context.Background(), from, sess.ID)
	if !errors.Is(err, ErrSessionNotConfirmed) {
		t.Fatalf("expected ErrSessionNotConfirmed, got %v", err)
	}
}

func TestSessionUsecase_Calendar_RendersEvent(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status:      repository.SessionStatusConfirmed,
		ScheduledAt: time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		Location:    "Library",
	}
	uc := NewSessionUsecase(newMockSessionRepo(sess), sessionUsers(from, to), mockSkillRepo{}, nil)

	cal, err := uc.Calendar(context.Background(), from, sess.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cal.ICS == "" || cal.GoogleCalendarURL == "" {
		t.Fatalf("expected both export formats, got %+v", cal)
	}
}
