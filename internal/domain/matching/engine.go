package matching

import (
	"sort"

	"github.com/google/uuid"
)

type Skill struct {
	ID   uuid.UUID
	Name string
}

// Match is a ranked single-direction result: a candidate who offers skills
// the querying user wants (teachers) or wants skills the user offers
// (students).
type Match struct {
	UserID         uuid.UUID
	Handle         string
	MatchCount     int
	MatchingSkills []Skill
}

// PerfectMatch is a candidate qualifying in both directions: at least one
// skill they want that the user offers, and at least one they offer that
// the user wants.
type PerfectMatch struct {
	UserID          uuid.UUID
	Handle          string
	YouTeachCount   int
	TheyTeachCount  int
	YouTeachSkills  []Skill
	TheyTeachSkills []Skill
}

func (m PerfectMatch) TotalScore() int {
	return m.YouTeachCount + m.TheyTeachCount
}

// SkillSet is a set of skill identifiers with O(1) membership tests.
type SkillSet map[uuid.UUID]struct{}

func NewSkillSet(ids []uuid.UUID) SkillSet {
	s := make(SkillSet, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

func (s SkillSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

// Intersect returns the skills whose ids are members of the set, preserving
// the input order.
func Intersect(skills []Skill, set SkillSet) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, sk := range skills {
		if set.Contains(sk.ID) {
			out = append(out, sk)
		}
	}
	return out
}

// SortMatches orders by descending match count, ties broken by ascending
// handle, and truncates to limit. Limit <= 0 means no truncation.
func SortMatches(matches []Match, limit int) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchCount != matches[j].MatchCount {
			return matches[i].MatchCount > matches[j].MatchCount
		}
		return matches[i].Handle < matches[j].Handle
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// SortPerfectMatches orders by descending combined count, ties broken by
// ascending handle, and truncates to limit. Candidates missing either
// direction are dropped.
func SortPerfectMatches(matches []PerfectMatch, limit int) []PerfectMatch {
	qualified := make([]PerfectMatch, 0, len(matches))
	for _, m := range matches {
		if m.YouTeachCount < 1 || m.TheyTeachCount < 1 {
			continue
		}
		qualified = append(qualified, m)
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].TotalScore() != qualified[j].TotalScore() {
			return qualified[i].TotalScore() > qualified[j].TotalScore()
		}
		return qualified[i].Handle < qualified[j].Handle
	})
	if limit > 0 && len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified
}
