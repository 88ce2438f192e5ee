package response

import (
	"time"

	"food-rescue/internal/usecase/commands"
	"food-rescue/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PostResponse struct {
	ID              uuid.UUID             `json:"id"`
	DonorID         uuid.UUID             `json:"donor_id"`
	RecipientID     *uuid.UUID            `json:"recipient_id,omitempty"`
	FoodName        string                `json:"food_name"`
	Servings        int                   `json:"servings"`
	Freshness       string                `json:"freshness"`
	Coordinates     *queries.LocationView `json:"location,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	DurationMinutes int                   `json:"duration_minutes"`
	ExpiresAt       time.Time             `json:"expires_at"`
	ReservedUntil   *time.Time            `json:"reserved_until,omitempty"`
	Status          string                `json:"status"`
	Version         int64                 `json:"version"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Donor           *queries.DonorView    `json:"donor,omitempty"`
	DistanceKm      *float64              `json:"distance_km,omitempty"`
}

type FeedResponse struct {
	Items      []*PostResponse `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

type ReservationResponse struct {
	PostID        uuid.UUID     `json:"post_id"`
	RecipientID   uuid.UUID     `json:"recipient_id"`
	ReservedUntil time.Time     `json:"reserved_until"`
	Post          *PostResponse `json:"post"`
}

type SweepResponse struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func FromPostView(view *queries.PostView) (*PostResponse, error) {
	var res PostResponse
	if err := copier.Copy(&res, view); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromPostViews(views []*queries.PostView) ([]*PostResponse, error) {
	res := make([]*PostResponse, 0, len(views))
	for _, v := range views {
		r, err := FromPostView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func FromPage(page *queries.PostPage) (*FeedResponse, error) {
	items, err := FromPostViews(page.Items)
	if err != nil {
		return nil, err
	}
	res := &FeedResponse{Items: items}
	if page.Next != nil {
		res.NextCursor = page.Next.After
	}
	return res, nil
}

func FromReservation(r *commands.Reservation) (*ReservationResponse, error) {
	post, err := FromPostView(queries.NewPostView(r.Post))
	if err != nil {
		return nil, err
	}
	return &ReservationResponse{
		PostID:        r.PostID,
		RecipientID:   r.RecipientID,
		ReservedUntil: r.ReservedUntil,
		Post:          post,
	}, nil
}

func FromSweepResult(r commands.SweepResult) SweepResponse {
	var res SweepResponse
	_ = copier.Copy(&res, &r)
	return res
}
