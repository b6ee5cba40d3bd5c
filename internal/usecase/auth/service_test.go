package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

type mockUsers struct {
	byID     map[uuid.UUID]repository.User
	byEmail  map[string]repository.User
	byHandle map[string]repository.User
	err      error
}

func newMockUsers() *mockUsers {
	return &mockUsers{
		byID:     make(map[uuid.UUID]repository.User),
		byEmail:  make(map[string]repository.User),
		byHandle: make(map[string]repository.User),
	}
}

func (m *mockUsers) add(u repository.User) {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	m.byHandle[u.Handle] = u
}

func (m *mockUsers) Create(_ context.Context, u repository.User) error {
	if m.err != nil {
		return m.err
	}
	m.add(u)
	return nil
}
func (m *mockUsers) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}
func (m *mockUsers) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}
func (m *mockUsers) GetByHandle(_ context.Context, handle string) (repository.User, error) {
	u, ok := m.byHandle[handle]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}
func (m *mockUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, m.err
}
func (m *mockUsers) ExistsByHandle(_ context.Context, handle string) (bool, error) {
	_, ok := m.byHandle[handle]
	return ok, m.err
}
func (m *mockUsers) UpdateBio(context.Context, uuid.UUID, string) error { return m.err }
func (m *mockUsers) UpdateLocation(context.Context, uuid.UUID, string, *float64, *float64) error {
	return m.err
}

func TestRegister_Success(t *testing.T) {
	svc := NewService(newMockUsers())

	u, err := svc.Register(context.Background(), RegisterInput{
		Handle:   "Amir_99",
		Email:    "Amir@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Handle != "amir_99" {
		t.Fatalf("handle not normalized: %q", u.Handle)
	}
	if u.Email != "amir@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := NewService(newMockUsers())

	_, err := svc.Register(context.Background(), RegisterInput{
		Handle:   "amir",
		Email:    "a@b.com",
		Password: "short",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_BadHandle(t *testing.T) {
	svc := NewService(newMockUsers())

	for _, handle := range []string{"", "ab", "has space", "-leading"} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Handle:   handle,
			Email:    "a@b.com",
			Password: "long enough",
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("handle %q: expected ErrInvalidInput, got %v", handle, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newMockUsers()
	users.add(repository.User{ID: uuid.New(), Handle: "bea", Email: "bea@example.com"})
	svc := NewService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Handle:   "other",
		Email:    "bea@example.com",
		Password: "long enough",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_DuplicateHandle(t *testing.T) {
	users := newMockUsers()
	users.add(repository.User{ID: uuid.New(), Handle: "bea", Email: "bea@example.com"})
	svc := NewService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Handle:   "bea",
		Email:    "new@example.com",
		Password: "long enough",
	})
	if !errors.Is(err, ErrHandleAlreadyTaken) {
		t.Fatalf("expected ErrHandleAlreadyTaken, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	users := newMockUsers()
	svc := NewService(users)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Handle:   "amir",
		Email:    "amir@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{
		Email:    "AMIR@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Handle != "amir" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Login(context.Background(), LoginInput{
		Email:    "amir@example.com",
		Password: "wrong password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newMockUsers())

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever!",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
