package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

type mockUserRepo struct {
	users map[uuid.UUID]repository.User
	err   error
}

func (m mockUserRepo) Create(context.Context, repository.User) error { return m.err }
func (m mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	if m.err != nil {
		return repository.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}
func (m mockUserRepo) GetByEmail(context.Context, string) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}
func (m mockUserRepo) GetByHandle(context.Context, string) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}
func (m mockUserRepo) ExistsByEmail(context.Context, string) (bool, error)  { return false, m.err }
func (m mockUserRepo) ExistsByHandle(context.Context, string) (bool, error) { return false, m.err }
func (m mockUserRepo) UpdateBio(context.Context, uuid.UUID, string) error   { return m.err }
func (m mockUserRepo) UpdateLocation(context.Context, uuid.UUID, string, *float64, *float64) error {
	return m.err
}

type mockNearbyRepo struct {
	rows []repository.NearbyRow
	err  error

	gotLat, gotLon, gotRadius float64
	gotLimit                  int
	gotSkillIDs               []uuid.UUID
}

func (m *mockNearbyRepo) FindNearby(_ context.Context, _ uuid.UUID, lat, lon, radiusKm float64, limit int) ([]repository.NearbyRow, error) {
	m.gotLat, m.gotLon, m.gotRadius, m.gotLimit = lat, lon, radiusKm, limit
	return m.rows, m.err
}
func (m *mockNearbyRepo) FindNearbyWithSkills(_ context.Context, _ uuid.UUID, lat, lon, radiusKm float64, skillIDs []uuid.UUID, limit int) ([]repository.NearbyRow, error) {
	m.gotLat, m.gotLon, m.gotRadius, m.gotLimit = lat, lon, radiusKm, limit
	m.gotSkillIDs = skillIDs
	return m.rows, m.err
}

func floatPtr(v float64) *float64 { return &v }

func TestNearbyUsecase_NoStoredLocation(t *testing.T) {
	userID := uuid.New()
	uc := NewNearbyUsecase(
		mockUserRepo{users: map[uuid.UUID]repository.User{userID: {ID: userID, Handle: "amir"}}},
		&mockNearbyRepo{},
		matchingConfig(),
	)

	_, err := uc.FindNearby(context.Background(), userID, NearbyInput{})
	if !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
}

func TestNearbyUsecase_PartialCoordinates(t *testing.T) {
	uc := NewNearbyUsecase(mockUserRepo{}, &mockNearbyRepo{}, matchingConfig())

	_, err := uc.FindNearby(context.Background(), uuid.New(), NearbyInput{Latitude: floatPtr(42.0)})
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestNearbyUsecase_OutOfRangeCoordinates(t *testing.T) {
	uc := NewNearbyUsecase(mockUserRepo{}, &mockNearbyRepo{}, matchingConfig())

	_, err := uc.FindNearby(context.Background(), uuid.New(), NearbyInput{
		Latitude:  floatPtr(91.0),
		Longitude: floatPtr(0.0),
	})
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestNearbyUsecase_NegativeRadius(t *testing.T) {
	uc := NewNearbyUsecase(mockUserRepo{}, &mockNearbyRepo{}, matchingConfig())

	_, err := uc.FindNearby(context.Background(), uuid.New(), NearbyInput{
		Latitude:  floatPtr(42.0),
		Longitude: floatPtr(-71.0),
		RadiusKm:  -5,
	})
	if !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
}

func TestNearbyUsecase_DefaultsRadiusAndLimit(t *testing.T) {
	repo := &mockNearbyRepo{rows: []repository.NearbyRow{{
		UserID: uuid.New(), Handle: "bea", Latitude: 42.1, Longitude: -71.1, DistanceKm: 12.5,
	}}}
	uc := NewNearbyUsecase(mockUserRepo{}, repo, matchingConfig())

	got, err := uc.FindNearby(context.Background(), uuid.New(), NearbyInput{
		Latitude:  floatPtr(42.0),
		Longitude: floatPtr(-71.0),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.gotRadius != 50 {
		t.Fatalf("expected default radius 50, got %v", repo.gotRadius)
	}
	if repo.gotLimit != 4 {
		t.Fatalf("expected default limit 4, got %v", repo.gotLimit)
	}
	if len(got) != 1 || got[0].Handle != "bea" || got[0].DistanceKm != 12.5 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestNearbyUsecase_UsesStoredLocation(t *testing.T) {
	userID := uuid.New()
	repo := &mockNearbyRepo{}
	uc := NewNearbyUsecase(
		mockUserRepo{users: map[uuid.UUID]repository.User{userID: {
			ID: userID, Handle: "amir", Latitude: floatPtr(40.7), Longitude: floatPtr(-74.0),
		}}},
		repo,
		matchingConfig(),
	)

	_, err := uc.FindNearby(context.Background(), userID, NearbyInput{RadiusKm: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.gotLat != 40.7 || repo.gotLon != -74.0 {
		t.Fatalf("expected stored coordinates, got %v,%v", repo.gotLat, repo.gotLon)
	}
	if repo.gotRadius != 10 {
		t.Fatalf("expected radius 10, got %v", repo.gotRadius)
	}
}

func TestNearbyUsecase_SkillFilterPassedThrough(t *testing.T) {
	skillID := uuid.New()
	repo := &mockNearbyRepo{}
	uc := NewNearbyUsecase(mockUserRepo{}, repo, matchingConfig())

	_, err := uc.FindNearby(context.Background(), uuid.New(), NearbyInput{
		Latitude:  floatPtr(42.0),
		Longitude: floatPtr(-71.0),
		SkillIDs:  []uuid.UUID{skillID},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.gotSkillIDs) != 1 || repo.gotSkillIDs[0] != skillID {
		t.Fatalf("skill filter not forwarded: %v", repo.gotSkillIDs)
	}
}
