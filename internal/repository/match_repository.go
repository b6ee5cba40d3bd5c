package repository

import (
	"context"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
)

// MatchRow is one candidate from a single-direction matching query.
// MatchingSkillIDs holds the distinct overlapping skill ids.
type MatchRow struct {
	UserID           uuid.UUID
	Handle           string
	MatchCount       int
	MatchingSkillIDs []uuid.UUID
}

// PerfectMatchRow is one candidate qualifying in both directions.
type PerfectMatchRow struct {
	UserID           uuid.UUID
	Handle           string
	YouTeachCount    int
	TheyTeachCount   int
	YouTeachSkillIDs []uuid.UUID
	TheyTeachSkillIDs []uuid.UUID
}

type MatchRepository interface {
	FindTeachers(ctx context.Context, userID uuid.UUID, wantedSkillIDs []uuid.UUID, limit int) ([]MatchRow, error)
	FindStudents(ctx context.Context, userID uuid.UUID, offeredSkillIDs []uuid.UUID, limit int) ([]MatchRow, error)
	FindPerfectMatches(ctx context.Context, userID uuid.UUID, offeredSkillIDs, wantedSkillIDs []uuid.UUID, limit int) ([]PerfectMatchRow, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

// FindTeachers ranks candidates who offer any of the given wanted skills:
// overlap count descending, handle ascending.
func (r *PostgresMatchRepository) FindTeachers(ctx context.Context, userID uuid.UUID, wantedSkillIDs []uuid.UUID, limit int) ([]MatchRow, error) {
	if len(wantedSkillIDs) == 0 {
		return []MatchRow{}, nil
	}
	return r.findDirectional(ctx, "skill_offers", userID, wantedSkillIDs, limit)
}

// FindStudents is the mirror query: candidates who want any of the given
// offered skills.
func (r *PostgresMatchRepository) FindStudents(ctx context.Context, userID uuid.UUID, offeredSkillIDs []uuid.UUID, limit int) ([]MatchRow, error) {
	if len(offeredSkillIDs) == 0 {
		return []MatchRow{}, nil
	}
	return r.findDirectional(ctx, "skill_wants", userID, offeredSkillIDs, limit)
}

func (r *PostgresMatchRepository) findDirectional(ctx context.Context, table string, userID uuid.UUID, skillIDs []uuid.UUID, limit int) ([]MatchRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.handle,
			COUNT(DISTINCT l.skill_id) AS match_count,
			array_agg(DISTINCT l.skill_id::text) AS matching_skill_ids
		 FROM users u
		 JOIN `+table+` l ON l.user_id = u.id
		 WHERE l.skill_id = ANY($1::uuid[])
		   AND u.id <> $2
		 GROUP BY u.id, u.handle
		 ORDER BY COUNT(DISTINCT l.skill_id) DESC, u.handle ASC
		 LIMIT $3`,
		uuidStrings(skillIDs), userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchRow, 0)
	for rows.Next() {
		var m MatchRow
		var rawIDs []string
		if err := rows.Scan(&m.UserID, &m.Handle, &m.MatchCount, &rawIDs); err != nil {
			return nil, err
		}
		m.MatchingSkillIDs, err = parseUUIDs(rawIDs)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindPerfectMatches requires both directions via inner joins: the candidate
// wants something the user offers AND offers something the user wants.
// Ordered by combined overlap descending, handle ascending.
func (r *PostgresMatchRepository) FindPerfectMatches(ctx context.Context, userID uuid.UUID, offeredSkillIDs, wantedSkillIDs []uuid.UUID, limit int) ([]PerfectMatchRow, error) {
	if len(offeredSkillIDs) == 0 || len(wantedSkillIDs) == 0 {
		return []PerfectMatchRow{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.handle,
			COUNT(DISTINCT sw.skill_id) AS you_teach_count,
			COUNT(DISTINCT so.skill_id) AS they_teach_count,
			array_agg(DISTINCT sw.skill_id::text) AS you_teach_skill_ids,
			array_agg(DISTINCT so.skill_id::text) AS they_teach_skill_ids
		 FROM users u
		 JOIN skill_wants sw ON sw.user_id = u.id AND sw.skill_id = ANY($1::uuid[])
		 JOIN skill_offers so ON so.user_id = u.id AND so.skill_id = ANY($2::uuid[])
		 WHERE u.id <> $3
		 GROUP BY u.id, u.handle
		 ORDER BY COUNT(DISTINCT sw.skill_id) + COUNT(DISTINCT so.skill_id) DESC, u.handle ASC
		 LIMIT $4`,
		uuidStrings(offeredSkillIDs), uuidStrings(wantedSkillIDs), userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PerfectMatchRow, 0)
	for rows.Next() {
		var m PerfectMatchRow
		var rawYou, rawThey []string
		if err := rows.Scan(&m.UserID, &m.Handle, &m.YouTeachCount, &m.TheyTeachCount, &rawYou, &rawThey); err != nil {
			return nil, err
		}
		m.YouTeachSkillIDs, err = parseUUIDs(rawYou)
		if err != nil {
			return nil, err
		}
		m.TheyTeachSkillIDs, err = parseUUIDs(rawThey)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
