package geo

import (
	"errors"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

var (
	ErrInvalidLatitude  = errors.New("latitude out of range")
	ErrInvalidLongitude = errors.New("longitude out of range")
)

type Point struct {
	Latitude  float64
	Longitude float64
}

func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if lon < -180 || lon > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// DistanceKm returns the great-circle distance between two points in
// kilometers, using the spherical law of cosines. This is the same
// expression the nearby SQL queries evaluate, so Go-side and SQL-side
// distances agree.
func DistanceKm(a, b Point) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	c := math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon) + math.Sin(lat1)*math.Sin(lat2)
	// Rounding can push the cosine a hair outside [-1, 1], which would make
	// Acos return NaN for identical points.
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	return EarthRadiusKm * math.Acos(c)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
