package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrHandleAlreadyTaken     = errors.New("handle already taken")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

var handlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,31}$`)

type RegisterInput struct {
	Handle   string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns credential handling: password hashing and the uniqueness
// checks on registration.
type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (repository.User, error) {
	handle := strings.ToLower(strings.TrimSpace(in.Handle))
	email := normalizeEmail(in.Email)

	if !handlePattern.MatchString(handle) || email == "" || !isValidPassword(in.Password) {
		return repository.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return repository.User{}, ErrInternal
	}
	if exists {
		return repository.User{}, ErrEmailAlreadyRegistered
	}

	exists, err = s.users.ExistsByHandle(ctx, handle)
	if err != nil {
		return repository.User{}, ErrInternal
	}
	if exists {
		return repository.User{}, ErrHandleAlreadyTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, ErrInternal
	}

	u := repository.User{
		ID:           uuid.New(),
		Handle:       handle,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, u); err != nil {
		// A concurrent registration may have won the unique constraints.
		if exists, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return repository.User{}, ErrEmailAlreadyRegistered
		}
		if exists, exErr := s.users.ExistsByHandle(ctx, handle); exErr == nil && exists {
			return repository.User{}, ErrHandleAlreadyTaken
		}
		return repository.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return repository.User{}, ErrInternal
	}
	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (repository.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return repository.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrInvalidCredentials
		}
		return repository.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return repository.User{}, ErrInvalidCredentials
	}

	return sanitize(u), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitize(u repository.User) repository.User {
	u.PasswordHash = ""
	return u
}
