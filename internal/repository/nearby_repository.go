package repository

import (
	"context"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
)

// NearbyRow is one candidate within the search radius, with the computed
// great-circle distance in kilometers.
type NearbyRow struct {
	UserID     uuid.UUID
	Handle     string
	Location   string
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}

type NearbyRepository interface {
	FindNearby(ctx context.Context, selfID uuid.UUID, lat, lon, radiusKm float64, limit int) ([]NearbyRow, error)
	FindNearbyWithSkills(ctx context.Context, selfID uuid.UUID, lat, lon, radiusKm float64, skillIDs []uuid.UUID, limit int) ([]NearbyRow, error)
}

type PostgresNearbyRepository struct {
	db database.DB
}

func NewPostgresNearbyRepository(db database.DB) *PostgresNearbyRepository {
	return &PostgresNearbyRepository{db: db}
}

// The distance alias cannot be referenced in a WHERE clause of the same
// query level, so the haversine expression is computed in a subquery and
// filtered outside it. The comparison is strict: users exactly at the
// radius boundary are excluded. The acos argument is clamped to [-1, 1]:
// rounding can push it just past 1 for identical or antipodal points,
// and Postgres raises "input is out of range" on an unclamped value.
const nearbyBase = `
	SELECT c.id, c.handle, c.location, c.latitude, c.longitude, c.distance_km
	FROM (
		SELECT u.id, u.handle, u.location, u.latitude, u.longitude,
			6371 * acos(LEAST(1, GREATEST(-1,
				cos(radians($1)) * cos(radians(u.latitude)) *
				cos(radians(u.longitude) - radians($2)) +
				sin(radians($1)) * sin(radians(u.latitude))
			))) AS distance_km
		FROM users u
		WHERE u.latitude IS NOT NULL
		  AND u.longitude IS NOT NULL
		  AND u.id <> $3`

func (r *PostgresNearbyRepository) FindNearby(ctx context.Context, selfID uuid.UUID, lat, lon, radiusKm float64, limit int) ([]NearbyRow, error) {
	rows, err := r.db.Query(ctx,
		nearbyBase+`
	) c
	WHERE c.distance_km < $4
	ORDER BY c.distance_km ASC
	LIMIT $5`,
		lat, lon, selfID, radiusKm, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNearby(rows)
}

// FindNearbyWithSkills restricts candidates to users offering or wanting at
// least one of the given skills.
func (r *PostgresNearbyRepository) FindNearbyWithSkills(ctx context.Context, selfID uuid.UUID, lat, lon, radiusKm float64, skillIDs []uuid.UUID, limit int) ([]NearbyRow, error) {
	if len(skillIDs) == 0 {
		return r.FindNearby(ctx, selfID, lat, lon, radiusKm, limit)
	}

	rows, err := r.db.Query(ctx,
		nearbyBase+`
		  AND (
			EXISTS (SELECT 1 FROM skill_offers so WHERE so.user_id = u.id AND so.skill_id = ANY($6::uuid[]))
			OR EXISTS (SELECT 1 FROM skill_wants sw WHERE sw.user_id = u.id AND sw.skill_id = ANY($6::uuid[]))
		  )
	) c
	WHERE c.distance_km < $4
	ORDER BY c.distance_km ASC
	LIMIT $5`,
		lat, lon, selfID, radiusKm, limit, uuidStrings(skillIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNearby(rows)
}

func collectNearby(rows database.Rows) ([]NearbyRow, error) {
	out := make([]NearbyRow, 0)
	for rows.Next() {
		var n NearbyRow
		if err := rows.Scan(&n.UserID, &n.Handle, &n.Location, &n.Latitude, &n.Longitude, &n.DistanceKm); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
