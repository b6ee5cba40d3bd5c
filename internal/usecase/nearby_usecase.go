package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/domain/geo"
	"github.com/Yassinemathlouthi/skillswap/internal/metrics"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

var (
	ErrNoLocation    = errors.New("user has no location set")
	ErrInvalidRadius = errors.New("invalid radius")
)

// NearbyInput filters the proximity search. Zero values fall back to the
// caller's stored location and the configured default radius.
type NearbyInput struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
	SkillIDs  []uuid.UUID
	Limit     int
}

// NearbyUser is one result with the distance from the search origin.
type NearbyUser struct {
	UserID     uuid.UUID
	Handle     string
	Location   string
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}

type NearbyUsecase interface {
	FindNearby(ctx context.Context, userID uuid.UUID, in NearbyInput) ([]NearbyUser, error)
}

// Nearby hits the store on every call; results are position-sensitive and
// any candidate's move would invalidate them, so they are never cached.
type Nearby struct {
	users  repository.UserRepository
	nearby repository.NearbyRepository
	cfg    config.MatchingConfig
}

func NewNearbyUsecase(users repository.UserRepository, nearby repository.NearbyRepository, cfg config.MatchingConfig) *Nearby {
	return &Nearby{users: users, nearby: nearby, cfg: cfg}
}

// FindNearby returns users inside the radius, closest first. Users exactly
// at the radius boundary are excluded.
func (n *Nearby) FindNearby(ctx context.Context, userID uuid.UUID, in NearbyInput) ([]NearbyUser, error) {
	metrics.NearbyQueriesTotal.Inc()

	var lat, lon float64
	switch {
	case in.Latitude != nil && in.Longitude != nil:
		lat, lon = *in.Latitude, *in.Longitude
	case in.Latitude == nil && in.Longitude == nil:
		usr, err := n.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, ErrInternal
		}
		if !usr.HasCoordinates() {
			return nil, ErrNoLocation
		}
		lat, lon = *usr.Latitude, *usr.Longitude
	default:
		return nil, ErrInvalidCoordinate
	}

	if err := geo.ValidateCoordinates(lat, lon); err != nil {
		return nil, ErrInvalidCoordinate
	}

	radius := in.RadiusKm
	if radius == 0 {
		radius = n.cfg.DefaultRadiusKm
	}
	if radius <= 0 {
		return nil, ErrInvalidRadius
	}

	limit := in.Limit
	if limit <= 0 {
		limit = n.cfg.DefaultLimit
	}
	if n.cfg.MaxLimit > 0 && limit > n.cfg.MaxLimit {
		limit = n.cfg.MaxLimit
	}

	var (
		rows []repository.NearbyRow
		err  error
	)
	if len(in.SkillIDs) > 0 {
		rows, err = n.nearby.FindNearbyWithSkills(ctx, userID, lat, lon, radius, in.SkillIDs, limit)
	} else {
		rows, err = n.nearby.FindNearby(ctx, userID, lat, lon, radius, limit)
	}
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]NearbyUser, 0, len(rows))
	for _, r := range rows {
		out = append(out, NearbyUser{
			UserID:     r.UserID,
			Handle:     r.Handle,
			Location:   r.Location,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			DistanceKm: r.DistanceKm,
		})
	}
	return out, nil
}
