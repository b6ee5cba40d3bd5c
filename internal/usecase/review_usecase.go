package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

var (
	ErrReviewExists        = errors.New("session already reviewed")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrSessionNotCompleted = errors.New("session not completed")
)

type CreateReviewInput struct {
	SessionID uuid.UUID
	Rating    int
	Comment   string
}

type ReviewUsecase interface {
	Create(ctx context.Context, authorID uuid.UUID, in CreateReviewInput) (repository.Review, error)
	ListByUser(ctx context.Context, targetID uuid.UUID, limit int) ([]repository.Review, error)
	Summary(ctx context.Context, targetID uuid.UUID) (repository.ReviewSummary, error)
}

type Review struct {
	reviews  repository.ReviewRepository
	sessions repository.SessionRepository
}

func NewReviewUsecase(reviews repository.ReviewRepository, sessions repository.SessionRepository) *Review {
	return &Review{reviews: reviews, sessions: sessions}
}

// Create records one review per author per completed session. The target
// is always the other participant.
func (r *Review) Create(ctx context.Context, authorID uuid.UUID, in CreateReviewInput) (repository.Review, error) {
	if in.SessionID == uuid.Nil {
		return repository.Review{}, ErrInvalidInput
	}
	if in.Rating < 1 || in.Rating > 5 {
		return repository.Review{}, ErrInvalidRating
	}

	sess, err := r.sessions.GetByID(ctx, in.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return repository.Review{}, ErrSessionNotFound
		}
		return repository.Review{}, ErrInternal
	}
	if !isParticipant(sess, authorID) {
		return repository.Review{}, ErrForbidden
	}
	if sess.Status != repository.SessionStatusCompleted {
		return repository.Review{}, ErrSessionNotCompleted
	}

	rev := repository.Review{
		ID:        uuid.New(),
		SessionID: sess.ID,
		AuthorID:  authorID,
		TargetID:  otherParticipant(sess, authorID),
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	}
	if err := r.reviews.Create(ctx, rev); err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return repository.Review{}, ErrReviewExists
		}
		return repository.Review{}, ErrInternal
	}
	return rev, nil
}

func (r *Review) ListByUser(ctx context.Context, targetID uuid.UUID, limit int) ([]repository.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	reviews, err := r.reviews.ListByTarget(ctx, targetID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return reviews, nil
}

func (r *Review) Summary(ctx context.Context, targetID uuid.UUID) (repository.ReviewSummary, error) {
	summary, err := r.reviews.SummaryByTarget(ctx, targetID)
	if err != nil {
		return repository.ReviewSummary{}, ErrInternal
	}
	return summary, nil
}
