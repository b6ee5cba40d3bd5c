package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

type mockReviewRepo struct {
	reviews []repository.Review
	summary repository.ReviewSummary
	err     error
}

func (m *mockReviewRepo) Create(_ context.Context, rev repository.Review) error {
	if m.err != nil {
		return m.err
	}
	m.reviews = append(m.reviews, rev)
	return nil
}
func (m *mockReviewRepo) ListByTarget(context.Context, uuid.UUID, int) ([]repository.Review, error) {
	return m.reviews, nil
}
func (m *mockReviewRepo) SummaryByTarget(context.Context, uuid.UUID) (repository.ReviewSummary, error) {
	return m.summary, nil
}

func completedSession(from, to uuid.UUID) repository.Session {
	return repository.Session{
		ID: uuid.New(), FromUserID: from, ToUserID: to,
		Status:      repository.SessionStatusCompleted,
		ScheduledAt: time.Now().Add(-2 * time.Hour),
	}
}

func TestReviewUsecase_Create_RatingOutOfRange(t *testing.T) {
	uc := NewReviewUsecase(&mockReviewRepo{}, newMockSessionRepo())

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Create(context.Background(), uuid.New(), CreateReviewInput{
			SessionID: uuid.New(),
			Rating:    rating,
		})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestReviewUsecase_Create_SessionNotCompleted(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := completedSession(from, to)
	sess.Status = repository.SessionStatusConfirmed
	uc := NewReviewUsecase(&mockReviewRepo{}, newMockSessionRepo(sess))

	_, err := uc.Create(context.Background(), from, CreateReviewInput{SessionID: sess.ID, Rating: 5})
	if !errors.Is(err, ErrSessionNotCompleted) {
		t.Fatalf("expected ErrSessionNotCompleted, got %v", err)
	}
}

func TestReviewUsecase_Create_NonParticipant(t *testing.T) {
	sess := completedSession(uuid.New(), uuid.New())
	uc := NewReviewUsecase(&mockReviewRepo{}, newMockSessionRepo(sess))

	_, err := uc.Create(context.Background(), uuid.New(), CreateReviewInput{SessionID: sess.ID, Rating: 4})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReviewUsecase_Create_TargetsOtherParticipant(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := completedSession(from, to)
	repo := &mockReviewRepo{}
	uc := NewReviewUsecase(repo, newMockSessionRepo(sess))

	rev, err := uc.Create(context.Background(), from, CreateReviewInput{
		SessionID: sess.ID,
		Rating:    5,
		Comment:   "great teacher",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rev.TargetID != to {
		t.Fatalf("expected target %s, got %s", to, rev.TargetID)
	}
	if len(repo.reviews) != 1 {
		t.Fatalf("review not persisted")
	}
}

func TestReviewUsecase_Create_Duplicate(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	sess := completedSession(from, to)
	uc := NewReviewUsecase(&mockReviewRepo{err: repository.ErrReviewExists}, newMockSessionRepo(sess))

	_, err := uc.Create(context.Background(), from, CreateReviewInput{SessionID: sess.ID, Rating: 3})
	if !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
}
