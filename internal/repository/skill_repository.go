package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type Skill struct {
	ID   uuid.UUID
	Name string
}

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (Skill, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Skill, error)
	EnsureSkill(ctx context.Context, name string) (Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSkills(rows)
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM skills WHERE id = $1`, id)

	var s Skill
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Skill, error) {
	if len(ids) == 0 {
		return []Skill{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM skills WHERE id = ANY($1::uuid[]) ORDER BY name ASC`,
		uuidStrings(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSkills(rows)
}

// EnsureSkill creates the skill if absent and returns the stored row either
// way. Names are unique; concurrent creates race safely through ON CONFLICT.
func (r *PostgresSkillRepository) EnsureSkill(ctx context.Context, name string) (Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Skill{}, ErrSkillNotFound
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		uuid.New(), name,
	)
	if err != nil {
		return Skill{}, err
	}

	row := r.db.QueryRow(ctx, `SELECT id, name FROM skills WHERE name = $1`, name)
	var s Skill
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		return Skill{}, err
	}
	return s, nil
}

func collectSkills(rows database.Rows) ([]Skill, error) {
	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
