package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
)

var ErrReviewExists = errors.New("review already exists for this session")

type Review struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	AuthorID  uuid.UUID
	TargetID  uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewSummary aggregates the reviews a user has received.
type ReviewSummary struct {
	AverageRating float64
	ReviewCount   int
}

type ReviewRepository interface {
	Create(ctx context.Context, rev Review) error
	ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]Review, error)
	SummaryByTarget(ctx context.Context, targetID uuid.UUID) (ReviewSummary, error)
}

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// Create inserts one review. An author may review a session once; the
// UNIQUE(session_id, author_id) constraint makes a duplicate a no-op
// insert, reported as ErrReviewExists.
func (r *PostgresReviewRepository) Create(ctx context.Context, rev Review) error {
	rowsAffected, err := r.db.Exec(ctx,
		`INSERT INTO reviews (id, session_id, author_id, target_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id, author_id) DO NOTHING`,
		rev.ID, rev.SessionID, rev.AuthorID, rev.TargetID, rev.Rating, rev.Comment,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrReviewExists
	}
	return nil
}

func (r *PostgresReviewRepository) ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, author_id, target_id, rating, comment, created_at
		 FROM reviews
		 WHERE target_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		targetID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.SessionID, &rev.AuthorID, &rev.TargetID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresReviewRepository) SummaryByTarget(ctx context.Context, targetID uuid.UUID) (ReviewSummary, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE target_id = $1`,
		targetID,
	)

	var s ReviewSummary
	if err := row.Scan(&s.AverageRating, &s.ReviewCount); err != nil {
		return ReviewSummary{}, err
	}
	return s, nil
}
