package request

import (
	"strconv"
	"strings"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/usecase/queries"

	"github.com/google/uuid"
)

// DefaultDurationMinutes applies when a donor does not say how long the food keeps.
const DefaultDurationMinutes = 90

type LocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

type CreatePostRequest struct {
	FoodName        string           `json:"food_name" binding:"required,max=200"`
	Servings        int              `json:"servings" binding:"required,min=1,max=10000"`
	Freshness       string           `json:"freshness" binding:"max=200"`
	Location        *LocationRequest `json:"location,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" binding:"omitempty,min=1,max=10080"`
}

func (r CreatePostRequest) ToDomain(donorID uuid.UUID) (foodpost.Draft, error) {
	duration := DefaultDurationMinutes
	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}

	draft := foodpost.Draft{
		DonorID:         donorID,
		FoodName:        r.FoodName,
		Servings:        r.Servings,
		Freshness:       strings.TrimSpace(r.Freshness),
		DurationMinutes: duration,
	}
	if r.Location != nil {
		loc, err := foodpost.NewLocation(r.Location.Latitude, r.Location.Longitude)
		if err != nil {
			return foodpost.Draft{}, err
		}
		draft.Location = &loc
	}

	return draft, draft.Validate()
}

type FeedRequest struct {
	Near     string  `form:"near"`
	RadiusKm float64 `form:"radius_km" binding:"omitempty,gt=0"`
	After    string  `form:"after"`
	Limit    int     `form:"limit" binding:"omitempty,min=1,max=200"`
}

// DefaultRadiusKm is used when near is given without radius_km.
const DefaultRadiusKm = 5.0

func (r FeedRequest) ToFilter() (queries.FeedFilter, error) {
	filter := queries.FeedFilter{Limit: r.Limit}
	if r.After != "" {
		filter.After = &queries.Cursor{After: r.After}
	}
	if r.Near == "" {
		return filter, nil
	}

	lat, lng, ok := strings.Cut(r.Near, ",")
	if !ok {
		return queries.FeedFilter{}, foodpost.ErrValidation
	}
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return queries.FeedFilter{}, foodpost.ErrValidation
	}
	lngF, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return queries.FeedFilter{}, foodpost.ErrValidation
	}
	loc, err := foodpost.NewLocation(latF, lngF)
	if err != nil {
		return queries.FeedFilter{}, err
	}

	filter.Near = &loc
	filter.RadiusKm = r.RadiusKm
	if filter.RadiusKm == 0 {
		filter.RadiusKm = DefaultRadiusKm
	}
	return filter, nil
}
