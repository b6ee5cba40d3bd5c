package matching

import (
	"testing"

	"github.com/google/uuid"
)

func TestSkillSet_MembershipAndNilFiltering(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	set := NewSkillSet([]uuid.UUID{a, b, uuid.Nil})

	if set.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", set.Len())
	}
	if !set.Contains(a) || !set.Contains(b) {
		t.Fatalf("expected members present")
	}
	if set.Contains(uuid.New()) {
		t.Fatalf("unexpected membership")
	}
}

func TestIntersect_PreservesOrder(t *testing.T) {
	guitar := Skill{ID: uuid.New(), Name: "Guitar"}
	spanish := Skill{ID: uuid.New(), Name: "Spanish"}
	python := Skill{ID: uuid.New(), Name: "Python"}

	set := NewSkillSet([]uuid.UUID{python.ID, guitar.ID})
	got := Intersect([]Skill{guitar, spanish, python}, set)

	if len(got) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(got))
	}
	if got[0].Name != "Guitar" || got[1].Name != "Python" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestSortMatches_OrderingAndTieBreak(t *testing.T) {
	in := []Match{
		{Handle: "zoe", MatchCount: 2},
		{Handle: "amir", MatchCount: 3},
		{Handle: "bea", MatchCount: 3},
		{Handle: "carl", MatchCount: 1},
	}

	out := SortMatches(in, 0)
	wantHandles := []string{"amir", "bea", "zoe", "carl"}
	for i, w := range wantHandles {
		if out[i].Handle != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, out[i].Handle)
		}
	}
}

func TestSortMatches_Truncation(t *testing.T) {
	in := make([]Match, 0, 8)
	handles := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, h := range handles {
		in = append(in, Match{Handle: h, MatchCount: 8 - i})
	}

	out := SortMatches(in, 4)
	if len(out) != 4 {
		t.Fatalf("expected 4 results, got %d", len(out))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if out[i].Handle != want {
			t.Fatalf("expected top-4 by ordering, got %v", out)
		}
	}
}

func TestSortPerfectMatches_RequiresBothDirections(t *testing.T) {
	in := []PerfectMatch{
		{Handle: "teacher-only", YouTeachCount: 0, TheyTeachCount: 3},
		{Handle: "student-only", YouTeachCount: 2, TheyTeachCount: 0},
		{Handle: "mutual", YouTeachCount: 1, TheyTeachCount: 1},
	}

	out := SortPerfectMatches(in, 5)
	if len(out) != 1 {
		t.Fatalf("expected only mutual candidates, got %d", len(out))
	}
	if out[0].Handle != "mutual" {
		t.Fatalf("unexpected candidate: %s", out[0].Handle)
	}
}

func TestSortPerfectMatches_OrderByTotalThenHandle(t *testing.T) {
	in := []PerfectMatch{
		{Handle: "nina", YouTeachCount: 1, TheyTeachCount: 1},
		{Handle: "max", YouTeachCount: 2, TheyTeachCount: 2},
		{Handle: "ada", YouTeachCount: 1, TheyTeachCount: 1},
	}

	out := SortPerfectMatches(in, 0)
	want := []string{"max", "ada", "nina"}
	for i, w := range want {
		if out[i].Handle != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, out[i].Handle)
		}
	}
}
