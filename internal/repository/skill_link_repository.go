package repository

import (
	"context"
	"errors"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
)

var (
	ErrSkillLinkExists   = errors.New("skill link already exists")
	ErrSkillLinkNotFound = errors.New("skill link not found")
)

// SkillLink is one row of the user-offers-skill or user-wants-skill
// association, joined with the skill name.
type SkillLink struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	SkillName string
}

type SkillLinkRepository interface {
	OfferedSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	WantedSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListOffers(ctx context.Context, userID uuid.UUID) ([]SkillLink, error)
	ListWants(ctx context.Context, userID uuid.UUID) ([]SkillLink, error)
	AddOffer(ctx context.Context, userID, skillID uuid.UUID) error
	AddWant(ctx context.Context, userID, skillID uuid.UUID) error
	RemoveOffer(ctx context.Context, userID, skillID uuid.UUID) error
	RemoveWant(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresSkillLinkRepository struct {
	db database.DB
}

func NewPostgresSkillLinkRepository(db database.DB) *PostgresSkillLinkRepository {
	return &PostgresSkillLinkRepository{db: db}
}

func (r *PostgresSkillLinkRepository) OfferedSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.skillIDs(ctx, "skill_offers", userID)
}

func (r *PostgresSkillLinkRepository) WantedSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.skillIDs(ctx, "skill_wants", userID)
}

func (r *PostgresSkillLinkRepository) ListOffers(ctx context.Context, userID uuid.UUID) ([]SkillLink, error) {
	return r.listLinks(ctx, "skill_offers", userID)
}

func (r *PostgresSkillLinkRepository) ListWants(ctx context.Context, userID uuid.UUID) ([]SkillLink, error) {
	return r.listLinks(ctx, "skill_wants", userID)
}

func (r *PostgresSkillLinkRepository) AddOffer(ctx context.Context, userID, skillID uuid.UUID) error {
	return r.addLink(ctx, "skill_offers", userID, skillID)
}

func (r *PostgresSkillLinkRepository) AddWant(ctx context.Context, userID, skillID uuid.UUID) error {
	return r.addLink(ctx, "skill_wants", userID, skillID)
}

func (r *PostgresSkillLinkRepository) RemoveOffer(ctx context.Context, userID, skillID uuid.UUID) error {
	return r.removeLink(ctx, "skill_offers", userID, skillID)
}

func (r *PostgresSkillLinkRepository) RemoveWant(ctx context.Context, userID, skillID uuid.UUID) error {
	return r.removeLink(ctx, "skill_wants", userID, skillID)
}

func (r *PostgresSkillLinkRepository) skillIDs(ctx context.Context, table string, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT skill_id FROM `+table+` WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillLinkRepository) listLinks(ctx context.Context, table string, userID uuid.UUID) ([]SkillLink, error) {
	rows, err := r.db.Query(ctx,
		`SELECT l.id, l.user_id, l.skill_id, s.name
		 FROM `+table+` l
		 JOIN skills s ON s.id = l.skill_id
		 WHERE l.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillLink, 0)
	for rows.Next() {
		var l SkillLink
		if err := rows.Scan(&l.ID, &l.UserID, &l.SkillID, &l.SkillName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// addLink inserts one association. The UNIQUE(user_id, skill_id) constraint
// makes duplicates a no-op insert, reported as ErrSkillLinkExists.
func (r *PostgresSkillLinkRepository) addLink(ctx context.Context, table string, userID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`INSERT INTO `+table+` (id, user_id, skill_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, skill_id) DO NOTHING`,
		uuid.New(), userID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSkillLinkExists
	}
	return nil
}

func (r *PostgresSkillLinkRepository) removeLink(ctx context.Context, table string, userID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM `+table+` WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSkillLinkNotFound
	}
	return nil
}
