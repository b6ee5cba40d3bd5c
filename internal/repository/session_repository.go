package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSessionNotFound = errors.New("session not found")

// Session statuses. A session starts pending and moves to confirmed,
// canceled, or completed.
const (
	SessionStatusPending   = "pending"
	SessionStatusConfirmed = "confirmed"
	SessionStatusCanceled  = "canceled"
	SessionStatusCompleted = "completed"
)

type Session struct {
	ID          uuid.UUID
	FromUserID  uuid.UUID
	ToUserID    uuid.UUID
	SkillID     *uuid.UUID
	Status      string
	ScheduledAt time.Time
	EndsAt      *time.Time
	Location    string
	Latitude    *float64
	Longitude   *float64
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type PostgresSessionRepository struct {
	db database.DB
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

const sessionColumns = `id, from_user_id, to_user_id, skill_id, status, scheduled_at, ends_at, location, latitude, longitude, notes, created_at, updated_at`

func (r *PostgresSessionRepository) Create(ctx context.Context, s Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (id, from_user_id, to_user_id, skill_id, status, scheduled_at, ends_at, location, latitude, longitude, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.FromUserID, s.ToUserID, s.SkillID, s.Status, s.ScheduledAt, s.EndsAt,
		s.Location, s.Latitude, s.Longitude, s.Notes,
	)
	return err
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (Session, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

// ListByUser returns sessions where the user is either side, newest first.
func (r *PostgresSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE from_user_id = $1 OR to_user_id = $1
		 ORDER BY scheduled_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		s, err := scanSessionRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func scanSession(row database.Row) (Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.FromUserID, &s.ToUserID, &s.SkillID, &s.Status, &s.ScheduledAt, &s.EndsAt,
		&s.Location, &s.Latitude, &s.Longitude, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	return s, nil
}

func scanSessionRows(rows database.Rows) (Session, error) {
	var s Session
	err := rows.Scan(
		&s.ID, &s.FromUserID, &s.ToUserID, &s.SkillID, &s.Status, &s.ScheduledAt, &s.EndsAt,
		&s.Location, &s.Latitude, &s.Longitude, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}
