package queries

import (
	"time"

	"food-rescue/internal/domain/foodpost"

	"github.com/google/uuid"
)

// DonorView carries the contact details recipients need to pick food up.
type DonorView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone,omitempty"`
	Address string    `json:"address,omitempty"`
}

type LocationView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PostView struct {
	ID              uuid.UUID     `json:"id"`
	DonorID         uuid.UUID     `json:"donor_id"`
	RecipientID     *uuid.UUID    `json:"recipient_id,omitempty"`
	FoodName        string        `json:"food_name"`
	Servings        int           `json:"servings"`
	Freshness       string        `json:"freshness"`
	Coordinates     *LocationView `json:"location,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	DurationMinutes int           `json:"duration_minutes"`
	ExpiresAt       time.Time     `json:"expires_at"`
	ReservedUntil   *time.Time    `json:"reserved_until,omitempty"`
	Status          string        `json:"status"`
	Version         int64         `json:"version"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Donor           *DonorView    `json:"donor,omitempty"`
	DistanceKm      *float64      `json:"distance_km,omitempty"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewPostView(p foodpost.FoodPost) *PostView {
	s := p.Snapshot()
	view := &PostView{
		ID:              s.ID,
		DonorID:         s.DonorID,
		RecipientID:     s.RecipientID,
		FoodName:        s.FoodName,
		Servings:        s.Servings,
		Freshness:       s.Freshness,
		CreatedAt:       s.CreatedAt,
		DurationMinutes: s.DurationMinutes,
		ExpiresAt:       s.ExpiresAt,
		ReservedUntil:   s.ReservedUntil,
		Status:          s.Status.String(),
		Version:         s.Version,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.Location != nil {
		view.Coordinates = &LocationView{Latitude: s.Location.Latitude, Longitude: s.Location.Longitude}
	}
	return view
}
