package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/cache"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSkillNotFound     = errors.New("skill not found")
	ErrSkillLinkExists   = errors.New("skill already linked")
	ErrSkillLinkNotFound = errors.New("skill link not found")
)

// LinkKind selects which side of the skill graph an operation touches.
type LinkKind int

const (
	LinkOffer LinkKind = iota
	LinkWant
)

type UserSkillUsecase interface {
	ListCatalog(ctx context.Context) ([]repository.Skill, error)
	CreateSkill(ctx context.Context, name string) (repository.Skill, error)
	ListLinks(ctx context.Context, userID uuid.UUID, kind LinkKind) ([]repository.SkillLink, error)
	AddLink(ctx context.Context, userID, skillID uuid.UUID, kind LinkKind) error
	RemoveLink(ctx context.Context, userID, skillID uuid.UUID, kind LinkKind) error
}

type UserSkill struct {
	skills repository.SkillRepository
	links  repository.SkillLinkRepository
	cache  *cache.Redis
}

func NewUserSkillUsecase(skills repository.SkillRepository, links repository.SkillLinkRepository, rc *cache.Redis) *UserSkill {
	return &UserSkill{skills: skills, links: links, cache: rc}
}

// ListCatalog returns all skills, served from cache when warm.
func (u *UserSkill) ListCatalog(ctx context.Context) ([]repository.Skill, error) {
	const cacheKey = "skills:catalog"

	var cached []repository.Skill
	if hit, _ := u.cache.GetJSON(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	skills, err := u.skills.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	_ = u.cache.SetJSON(ctx, cacheKey, skills, 0)
	return skills, nil
}

func (u *UserSkill) CreateSkill(ctx context.Context, name string) (repository.Skill, error) {
	s, err := u.skills.EnsureSkill(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.Skill{}, ErrInvalidInput
		}
		return repository.Skill{}, ErrInternal
	}

	_ = u.cache.InvalidateSkillCatalog(ctx)
	return s, nil
}

func (u *UserSkill) ListLinks(ctx context.Context, userID uuid.UUID, kind LinkKind) ([]repository.SkillLink, error) {
	var (
		links []repository.SkillLink
		err   error
	)
	if kind == LinkOffer {
		links, err = u.links.ListOffers(ctx, userID)
	} else {
		links, err = u.links.ListWants(ctx, userID)
	}
	if err != nil {
		return nil, ErrInternal
	}
	return links, nil
}

func (u *UserSkill) AddLink(ctx context.Context, userID, skillID uuid.UUID, kind LinkKind) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}

	if _, err := u.skills.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}

	var err error
	if kind == LinkOffer {
		err = u.links.AddOffer(ctx, userID, skillID)
	} else {
		err = u.links.AddWant(ctx, userID, skillID)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSkillLinkExists):
			return ErrSkillLinkExists
		case isForeignKeyViolation(err):
			return ErrSkillNotFound
		default:
			return ErrInternal
		}
	}

	return nil
}

func (u *UserSkill) RemoveLink(ctx context.Context, userID, skillID uuid.UUID, kind LinkKind) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}

	var err error
	if kind == LinkOffer {
		err = u.links.RemoveOffer(ctx, userID, skillID)
	} else {
		err = u.links.RemoveWant(ctx, userID, skillID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrSkillLinkNotFound) {
			return ErrSkillLinkNotFound
		}
		return ErrInternal
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
