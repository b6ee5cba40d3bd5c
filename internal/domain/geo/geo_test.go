package geo

import (
	"errors"
	"math"
	"testing"
)

func TestValidateCoordinates(t *testing.T) {
	if err := ValidateCoordinates(42.3601, -71.0589); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := ValidateCoordinates(90, 180); err != nil {
		t.Fatalf("boundary values should be valid, got %v", err)
	}
	if err := ValidateCoordinates(90.0001, 0); !errors.Is(err, ErrInvalidLatitude) {
		t.Fatalf("expected ErrInvalidLatitude, got %v", err)
	}
	if err := ValidateCoordinates(0, -180.5); !errors.Is(err, ErrInvalidLongitude) {
		t.Fatalf("expected ErrInvalidLongitude, got %v", err)
	}
}

func TestDistanceKm_BostonNewYork(t *testing.T) {
	boston := Point{Latitude: 42.3601, Longitude: -71.0589}
	newYork := Point{Latitude: 40.7128, Longitude: -74.0060}

	d := DistanceKm(boston, newYork)
	if math.Abs(d-306) > 5 {
		t.Fatalf("expected ~306km Boston-NYC, got %f", d)
	}

	if rev := DistanceKm(newYork, boston); math.Abs(rev-d) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", d, rev)
	}
}

func TestDistanceKm_SamePoint(t *testing.T) {
	p := Point{Latitude: 48.8566, Longitude: 2.3522}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("expected 0 for identical points, got %f", d)
	}
}

func TestDistanceKm_Antipodal(t *testing.T) {
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 0, Longitude: 180}

	d := DistanceKm(a, b)
	want := EarthRadiusKm * math.Pi
	if math.Abs(d-want) > 1 {
		t.Fatalf("expected half circumference ~%f, got %f", want, d)
	}
}
