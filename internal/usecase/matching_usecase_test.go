package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

type mockLinkRepo struct {
	offered []uuid.UUID
	wanted  []uuid.UUID
	offers  []repository.SkillLink
	wants   []repository.SkillLink

	addErr    error
	removeErr error
	err       error
}

func (m mockLinkRepo) OfferedSkillIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.offered, m.err
}
func (m mockLinkRepo) WantedSkillIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.wanted, m.err
}
func (m mockLinkRepo) ListOffers(context.Context, uuid.UUID) ([]repository.SkillLink, error) {
	return m.offers, m.err
}
func (m mockLinkRepo) ListWants(context.Context, uuid.UUID) ([]repository.SkillLink, error) {
	return m.wants, m.err
}
func (m mockLinkRepo) AddOffer(context.Context, uuid.UUID, uuid.UUID) error    { return m.addErr }
func (m mockLinkRepo) AddWant(context.Context, uuid.UUID, uuid.UUID) error     { return m.addErr }
func (m mockLinkRepo) RemoveOffer(context.Context, uuid.UUID, uuid.UUID) error { return m.removeErr }
func (m mockLinkRepo) RemoveWant(context.Context, uuid.UUID, uuid.UUID) error  { return m.removeErr }

type mockMatchRepo struct {
	teachers []repository.MatchRow
	students []repository.MatchRow
	perfect  []repository.PerfectMatchRow
	err      error

	teacherCalls int
}

func (m *mockMatchRepo) FindTeachers(context.Context, uuid.UUID, []uuid.UUID, int) ([]repository.MatchRow, error) {
	m.teacherCalls++
	return m.teachers, m.err
}
func (m *mockMatchRepo) FindStudents(context.Context, uuid.UUID, []uuid.UUID, int) ([]repository.MatchRow, error) {
	return m.students, m.err
}
func (m *mockMatchRepo) FindPerfectMatches(context.Context, uuid.UUID, []uuid.UUID, []uuid.UUID, int) ([]repository.PerfectMatchRow, error) {
	return m.perfect, m.err
}

type mockSkillRepo struct {
	skills []repository.Skill
	err    error
}

func (m mockSkillRepo) GetAllSkills(context.Context) ([]repository.Skill, error) {
	return m.skills, m.err
}
func (m mockSkillRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Skill, error) {
	if m.err != nil {
		return repository.Skill{}, m.err
	}
	for _, s := range m.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return repository.Skill{}, repository.ErrSkillNotFound
}
func (m mockSkillRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]repository.Skill, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]repository.Skill, 0)
	for _, s := range m.skills {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}
func (m mockSkillRepo) EnsureSkill(_ context.Context, name string) (repository.Skill, error) {
	if m.err != nil {
		return repository.Skill{}, m.err
	}
	return repository.Skill{ID: uuid.New(), Name: name}, nil
}

func matchingConfig() config.MatchingConfig {
	return config.MatchingConfig{DefaultLimit: 4, MaxLimit: 50, DefaultRadiusKm: 50}
}

func TestMatchingUsecase_FindTeachers_NoWantedSkills(t *testing.T) {
	repo := &mockMatchRepo{}
	uc := NewMatchingUsecase(mockLinkRepo{}, repo, mockSkillRepo{}, matchingConfig())

	got, err := uc.FindTeachers(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if repo.teacherCalls != 0 {
		t.Fatalf("expected no query when the user wants nothing")
	}
}

func TestMatchingUsecase_FindTeachers_ResolvesSkillNames(t *testing.T) {
	guitar := repository.Skill{ID: uuid.New(), Name: "Guitar"}
	spanish := repository.Skill{ID: uuid.New(), Name: "Spanish"}
	candidate := uuid.New()

	uc := NewMatchingUsecase(
		mockLinkRepo{wanted: []uuid.UUID{guitar.ID, spanish.ID}},
		&mockMatchRepo{teachers: []repository.MatchRow{{
			UserID:           candidate,
			Handle:           "amir",
			MatchCount:       2,
			MatchingSkillIDs: []uuid.UUID{guitar.ID, spanish.ID},
		}}},
		mockSkillRepo{skills: []repository.Skill{guitar, spanish}},
		matchingConfig(),
	)

	got, err := uc.FindTeachers(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].UserID != candidate || got[0].MatchCount != 2 {
		t.Fatalf("unexpected match: %+v", got[0])
	}
	if len(got[0].MatchingSkills) != 2 || got[0].MatchingSkills[0].Name != "Guitar" {
		t.Fatalf("skill names not resolved: %+v", got[0].MatchingSkills)
	}
}

func TestMatchingUsecase_FindTeachers_OrdersByCountThenHandle(t *testing.T) {
	skill := repository.Skill{ID: uuid.New(), Name: "Chess"}

	uc := NewMatchingUsecase(
		mockLinkRepo{wanted: []uuid.UUID{skill.ID}},
		&mockMatchRepo{teachers: []repository.MatchRow{
			{UserID: uuid.New(), Handle: "zoe", MatchCount: 1},
			{UserID: uuid.New(), Handle: "bea", MatchCount: 2},
			{UserID: uuid.New(), Handle: "amir", MatchCount: 2},
		}},
		mockSkillRepo{skills: []repository.Skill{skill}},
		matchingConfig(),
	)

	got, err := uc.FindTeachers(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	handles := []string{got[0].Handle, got[1].Handle, got[2].Handle}
	if handles[0] != "amir" || handles[1] != "bea" || handles[2] != "zoe" {
		t.Fatalf("unexpected ordering: %v", handles)
	}
}

func TestMatchingUsecase_FindStudents_NoOfferedSkills(t *testing.T) {
	uc := NewMatchingUsecase(mockLinkRepo{}, &mockMatchRepo{}, mockSkillRepo{}, matchingConfig())

	got, err := uc.FindStudents(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestMatchingUsecase_FindPerfectMatches_RequiresBothDirections(t *testing.T) {
	offered := uuid.New()
	wanted := uuid.New()

	uc := NewMatchingUsecase(
		mockLinkRepo{offered: []uuid.UUID{offered}, wanted: []uuid.UUID{wanted}},
		&mockMatchRepo{perfect: []repository.PerfectMatchRow{
			{UserID: uuid.New(), Handle: "mutual", YouTeachCount: 1, TheyTeachCount: 1},
			{UserID: uuid.New(), Handle: "one-way", YouTeachCount: 2, TheyTeachCount: 0},
		}},
		mockSkillRepo{},
		matchingConfig(),
	)

	got, err := uc.FindPerfectMatches(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Handle != "mutual" {
		t.Fatalf("expected only mutual candidates, got %+v", got)
	}
}

func TestMatchingUsecase_FindPerfectMatches_MissingOwnSide(t *testing.T) {
	uc := NewMatchingUsecase(
		mockLinkRepo{offered: []uuid.UUID{uuid.New()}},
		&mockMatchRepo{},
		mockSkillRepo{},
		matchingConfig(),
	)

	got, err := uc.FindPerfectMatches(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result without a wanted side, got %d", len(got))
	}
}

func TestMatchingUsecase_RepositoryErrorIsInternal(t *testing.T) {
	uc := NewMatchingUsecase(
		mockLinkRepo{wanted: []uuid.UUID{uuid.New()}},
		&mockMatchRepo{err: errors.New("boom")},
		mockSkillRepo{},
		matchingConfig(),
	)

	_, err := uc.FindTeachers(context.Background(), uuid.New(), 4)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestMatchingUsecase_FindTeachers_ReadsStoreEveryCall(t *testing.T) {
	skillID := uuid.New()
	repo := &mockMatchRepo{}
	uc := NewMatchingUsecase(
		mockLinkRepo{wanted: []uuid.UUID{skillID}},
		repo,
		mockSkillRepo{skills: []repository.Skill{{ID: skillID, Name: "Guitar"}}},
		matchingConfig(),
	)

	got, err := uc.FindTeachers(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}

	// A candidate adding an offer must show up on the very next query.
	repo.teachers = []repository.MatchRow{{
		UserID: uuid.New(), Handle: "zoe", MatchCount: 1,
		MatchingSkillIDs: []uuid.UUID{skillID},
	}}

	got, err = uc.FindTeachers(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Handle != "zoe" {
		t.Fatalf("expected fresh result with new candidate, got %+v", got)
	}
	if repo.teacherCalls != 2 {
		t.Fatalf("expected a store read per call, got %d", repo.teacherCalls)
	}
}
