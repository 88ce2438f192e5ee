package foodpost

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxFoodNameLength  = 200
	MaxFreshnessLength = 200
	MaxServings        = 10_000
	// one week
	MaxDurationMinutes = 7 * 24 * 60

	earthRadiusKm = 6371.0
)

type Location struct {
	Latitude  float64
	Longitude float64
}

func NewLocation(lat, lng float64) (Location, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Location{}, validationErr("latitude %v out of range", lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return Location{}, validationErr("longitude %v out of range", lng)
	}
	return Location{Latitude: lat, Longitude: lng}, nil
}

// DistanceKm returns the great-circle distance using the haversine formula.
func (l Location) DistanceKm(other Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - l.Latitude) * math.Pi / 180
	dLng := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// Draft is the donor-supplied part of a post, before an id and timestamps are assigned.
type Draft struct {
	DonorID         uuid.UUID
	FoodName        string
	Servings        int
	Freshness       string
	Location        *Location
	DurationMinutes int
}

func (d Draft) Validate() error {
	if d.DonorID == uuid.Nil {
		return validationErr("donor id is required")
	}
	name := strings.TrimSpace(d.FoodName)
	if name == "" {
		return validationErr("food name is required")
	}
	if utf8.RuneCountInString(name) > MaxFoodNameLength {
		return validationErr("food name exceeds %d characters", MaxFoodNameLength)
	}
	if d.Servings <= 0 {
		return validationErr("servings must be positive, got %d", d.Servings)
	}
	if d.Servings > MaxServings {
		return validationErr("servings exceeds %d, got %d", MaxServings, d.Servings)
	}
	if utf8.RuneCountInString(d.Freshness) > MaxFreshnessLength {
		return validationErr("freshness exceeds %d characters", MaxFreshnessLength)
	}
	if d.DurationMinutes <= 0 {
		return validationErr("duration must be positive, got %d minutes", d.DurationMinutes)
	}
	if d.DurationMinutes > MaxDurationMinutes {
		return validationErr("duration exceeds %d minutes, got %d", MaxDurationMinutes, d.DurationMinutes)
	}
	if d.Location != nil {
		if _, err := NewLocation(d.Location.Latitude, d.Location.Longitude); err != nil {
			return err
		}
	}
	return nil
}
