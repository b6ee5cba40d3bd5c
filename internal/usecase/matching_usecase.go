package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/domain/matching"
	"github.com/Yassinemathlouthi/skillswap/internal/metrics"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

type MatchingUsecase interface {
	FindTeachers(ctx context.Context, userID uuid.UUID, limit int) ([]matching.Match, error)
	FindStudents(ctx context.Context, userID uuid.UUID, limit int) ([]matching.Match, error)
	FindPerfectMatches(ctx context.Context, userID uuid.UUID, limit int) ([]matching.PerfectMatch, error)
}

// Matching queries the store on every call: results must reflect a single
// consistent read, and a candidate's edits change other users' rankings,
// so there is no safe per-user cache key.
type Matching struct {
	links   repository.SkillLinkRepository
	matches repository.MatchRepository
	skills  repository.SkillRepository
	cfg     config.MatchingConfig
}

func NewMatchingUsecase(
	links repository.SkillLinkRepository,
	matches repository.MatchRepository,
	skills repository.SkillRepository,
	cfg config.MatchingConfig,
) *Matching {
	return &Matching{links: links, matches: matches, skills: skills, cfg: cfg}
}

// FindTeachers ranks users who offer skills this user wants, best overlap
// first, ties broken by handle.
func (m *Matching) FindTeachers(ctx context.Context, userID uuid.UUID, limit int) ([]matching.Match, error) {
	metrics.MatchQueriesTotal.WithLabelValues("teachers").Inc()
	limit = m.clampLimit(limit)

	wanted, err := m.links.WantedSkillIDs(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(wanted) == 0 {
		return []matching.Match{}, nil
	}

	rows, err := m.matches.FindTeachers(ctx, userID, wanted, limit)
	if err != nil {
		return nil, ErrInternal
	}

	return m.hydrateMatches(ctx, rows, limit)
}

// FindStudents is the mirror: users who want skills this user offers.
func (m *Matching) FindStudents(ctx context.Context, userID uuid.UUID, limit int) ([]matching.Match, error) {
	metrics.MatchQueriesTotal.WithLabelValues("students").Inc()
	limit = m.clampLimit(limit)

	offered, err := m.links.OfferedSkillIDs(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(offered) == 0 {
		return []matching.Match{}, nil
	}

	rows, err := m.matches.FindStudents(ctx, userID, offered, limit)
	if err != nil {
		return nil, ErrInternal
	}

	return m.hydrateMatches(ctx, rows, limit)
}

// FindPerfectMatches returns users where the exchange works both ways,
// ranked by the combined overlap.
func (m *Matching) FindPerfectMatches(ctx context.Context, userID uuid.UUID, limit int) ([]matching.PerfectMatch, error) {
	metrics.MatchQueriesTotal.WithLabelValues("perfect").Inc()
	limit = m.clampLimit(limit)

	offered, err := m.links.OfferedSkillIDs(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	wanted, err := m.links.WantedSkillIDs(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(offered) == 0 || len(wanted) == 0 {
		return []matching.PerfectMatch{}, nil
	}

	rows, err := m.matches.FindPerfectMatches(ctx, userID, offered, wanted, limit)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0)
	for _, r := range rows {
		ids = append(ids, r.YouTeachSkillIDs...)
		ids = append(ids, r.TheyTeachSkillIDs...)
	}
	names, err := m.skillNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]matching.PerfectMatch, 0, len(rows))
	for _, r := range rows {
		out = append(out, matching.PerfectMatch{
			UserID:          r.UserID,
			Handle:          r.Handle,
			YouTeachCount:   r.YouTeachCount,
			TheyTeachCount:  r.TheyTeachCount,
			YouTeachSkills:  resolveSkills(r.YouTeachSkillIDs, names),
			TheyTeachSkills: resolveSkills(r.TheyTeachSkillIDs, names),
		})
	}
	return matching.SortPerfectMatches(out, limit), nil
}

// hydrateMatches resolves skill names for the overlapping ids and applies
// the canonical ordering.
func (m *Matching) hydrateMatches(ctx context.Context, rows []repository.MatchRow, limit int) ([]matching.Match, error) {
	ids := make([]uuid.UUID, 0)
	for _, r := range rows {
		ids = append(ids, r.MatchingSkillIDs...)
	}
	names, err := m.skillNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]matching.Match, 0, len(rows))
	for _, r := range rows {
		out = append(out, matching.Match{
			UserID:         r.UserID,
			Handle:         r.Handle,
			MatchCount:     r.MatchCount,
			MatchingSkills: resolveSkills(r.MatchingSkillIDs, names),
		})
	}
	return matching.SortMatches(out, limit), nil
}

func (m *Matching) skillNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	set := matching.NewSkillSet(ids)
	unique := make([]uuid.UUID, 0, set.Len())
	for id := range set {
		unique = append(unique, id)
	}

	skills, err := m.skills.GetByIDs(ctx, unique)
	if err != nil {
		return nil, ErrInternal
	}

	names := make(map[uuid.UUID]string, len(skills))
	for _, s := range skills {
		names[s.ID] = s.Name
	}
	return names, nil
}

func resolveSkills(ids []uuid.UUID, names map[uuid.UUID]string) []matching.Skill {
	out := make([]matching.Skill, 0, len(ids))
	for _, id := range ids {
		out = append(out, matching.Skill{ID: id, Name: names[id]})
	}
	return out
}

func (m *Matching) clampLimit(limit int) int {
	if limit <= 0 {
		limit = m.cfg.DefaultLimit
	}
	if m.cfg.MaxLimit > 0 && limit > m.cfg.MaxLimit {
		limit = m.cfg.MaxLimit
	}
	return limit
}
