//go:build unit || e2e || integration

package builder

import (
	"time"

	"food-rescue/internal/domain/foodpost"
	reqdto "food-rescue/internal/handler/dto/request"

	"github.com/google/uuid"
)

type FoodPostBuilder struct {
	DonorID         uuid.UUID
	FoodName        string
	Servings        int
	Freshness       string
	Location        *foodpost.Location
	DurationMinutes int
	CreatedAt       time.Time
}

func NewFoodPostBuilder() *FoodPostBuilder {
	return &FoodPostBuilder{
		DonorID:         uuid.New(),
		FoodName:        "Vegetable curry",
		Servings:        12,
		Freshness:       "cooked this morning",
		Location:        &foodpost.Location{Latitude: 35.6595, Longitude: 139.7005},
		DurationMinutes: 90,
		CreatedAt:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *FoodPostBuilder) With(mutate func(*FoodPostBuilder)) *FoodPostBuilder {
	mutate(b)
	return b
}

func (b *FoodPostBuilder) WithDonor(id uuid.UUID) *FoodPostBuilder {
	b.DonorID = id
	return b
}

func (b *FoodPostBuilder) WithDuration(minutes int) *FoodPostBuilder {
	b.DurationMinutes = minutes
	return b
}

func (b *FoodPostBuilder) WithLocation(lat, lng float64) *FoodPostBuilder {
	b.Location = &foodpost.Location{Latitude: lat, Longitude: lng}
	return b
}

func (b *FoodPostBuilder) WithoutLocation() *FoodPostBuilder {
	b.Location = nil
	return b
}

func (b *FoodPostBuilder) BuildDraft() foodpost.Draft {
	return foodpost.Draft{
		DonorID:         b.DonorID,
		FoodName:        b.FoodName,
		Servings:        b.Servings,
		Freshness:       b.Freshness,
		Location:        b.Location,
		DurationMinutes: b.DurationMinutes,
	}
}

func (b *FoodPostBuilder) BuildDomain() (foodpost.FoodPost, error) {
	return foodpost.New(b.BuildDraft(), b.CreatedAt)
}

func (b *FoodPostBuilder) MustBuildDomain() foodpost.FoodPost {
	p, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}

func (b *FoodPostBuilder) BuildDTO() reqdto.CreatePostRequest {
	duration := b.DurationMinutes
	req := reqdto.CreatePostRequest{
		FoodName:        b.FoodName,
		Servings:        b.Servings,
		Freshness:       b.Freshness,
		DurationMinutes: &duration,
	}
	if b.Location != nil {
		req.Location = &reqdto.LocationRequest{Latitude: b.Location.Latitude, Longitude: b.Location.Longitude}
	}
	return req
}
