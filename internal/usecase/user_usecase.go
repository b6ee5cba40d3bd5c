package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/domain/geo"
	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/geocoding"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrLocationNotFound  = errors.New("location not found")
)

// Profile is a user's public view: identity, skill lists, and the review
// aggregate.
type Profile struct {
	ID            uuid.UUID
	Handle        string
	Bio           string
	Location      string
	Latitude      *float64
	Longitude     *float64
	OfferedSkills []repository.SkillLink
	WantedSkills  []repository.SkillLink
	AverageRating float64
	ReviewCount   int
}

// UpdateLocationInput sets the user's place either by explicit coordinates
// or by a free-form query resolved through the geocoder. Explicit
// coordinates win when both are present.
type UpdateLocationInput struct {
	Query     string
	Latitude  *float64
	Longitude *float64
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (Profile, error)
	UpdateBio(ctx context.Context, userID uuid.UUID, bio string) error
	UpdateLocation(ctx context.Context, userID uuid.UUID, in UpdateLocationInput) (Profile, error)
}

type User struct {
	users    repository.UserRepository
	links    repository.SkillLinkRepository
	reviews  repository.ReviewRepository
	geocoder geocoding.Geocoder
}

func NewUserUsecase(
	users repository.UserRepository,
	links repository.SkillLinkRepository,
	reviews repository.ReviewRepository,
	geocoder geocoding.Geocoder,
) *User {
	return &User{users: users, links: links, reviews: reviews, geocoder: geocoder}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, ErrInternal
	}
	return u.buildProfile(ctx, usr)
}

func (u *User) GetProfileByHandle(ctx context.Context, handle string) (Profile, error) {
	usr, err := u.users.GetByHandle(ctx, strings.ToLower(strings.TrimSpace(handle)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, ErrInternal
	}
	return u.buildProfile(ctx, usr)
}

func (u *User) UpdateBio(ctx context.Context, userID uuid.UUID, bio string) error {
	if err := u.users.UpdateBio(ctx, userID, strings.TrimSpace(bio)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *User) UpdateLocation(ctx context.Context, userID uuid.UUID, in UpdateLocationInput) (Profile, error) {
	location := strings.TrimSpace(in.Query)
	lat, lon := in.Latitude, in.Longitude

	switch {
	case lat != nil && lon != nil:
		if err := geo.ValidateCoordinates(*lat, *lon); err != nil {
			return Profile{}, ErrInvalidCoordinate
		}
		if location == "" && u.geocoder != nil {
			if res, err := u.geocoder.Reverse(ctx, *lat, *lon); err == nil {
				location = res.DisplayName
			}
		}
	case lat == nil && lon == nil:
		if location == "" {
			return Profile{}, ErrInvalidInput
		}
		if u.geocoder != nil {
			res, err := u.geocoder.Forward(ctx, location)
			if err != nil {
				if errors.Is(err, geocoding.ErrNoResults) {
					return Profile{}, ErrLocationNotFound
				}
				// Keep the label without coordinates when the geocoder is
				// unreachable or disabled.
			} else {
				location = res.DisplayName
				lat, lon = &res.Latitude, &res.Longitude
			}
		}
	default:
		// One coordinate without the other.
		return Profile{}, ErrInvalidCoordinate
	}

	if err := u.users.UpdateLocation(ctx, userID, location, lat, lon); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, ErrInternal
	}

	return u.GetProfile(ctx, userID)
}

func (u *User) buildProfile(ctx context.Context, usr repository.User) (Profile, error) {
	offers, err := u.links.ListOffers(ctx, usr.ID)
	if err != nil {
		return Profile{}, ErrInternal
	}
	wants, err := u.links.ListWants(ctx, usr.ID)
	if err != nil {
		return Profile{}, ErrInternal
	}
	summary, err := u.reviews.SummaryByTarget(ctx, usr.ID)
	if err != nil {
		return Profile{}, ErrInternal
	}

	return Profile{
		ID:            usr.ID,
		Handle:        usr.Handle,
		Bio:           usr.Bio,
		Location:      usr.Location,
		Latitude:      usr.Latitude,
		Longitude:     usr.Longitude,
		OfferedSkills: offers,
		WantedSkills:  wants,
		AverageRating: summary.AverageRating,
		ReviewCount:   summary.ReviewCount,
	}, nil
}
