package converter

import (
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// FoodPostRow mirrors a food_posts row with nullable columns in pgtype form.
type FoodPostRow struct {
	ID              uuid.UUID
	DonorID         uuid.UUID
	RecipientID     pgtype.UUID
	FoodName        string
	Servings        int32
	Freshness       string
	Latitude        pgtype.Float8
	Longitude       pgtype.Float8
	CreatedAt       time.Time
	DurationMinutes int32
	ExpiresAt       time.Time
	ReservedUntil   pgtype.Timestamptz
	Status          string
	Version         int64
	UpdatedAt       time.Time
}

// Fields returns scan destinations in column order.
func (r *FoodPostRow) Fields() []any {
	return []any{
		&r.ID, &r.DonorID, &r.RecipientID, &r.FoodName, &r.Servings, &r.Freshness,
		&r.Latitude, &r.Longitude, &r.CreatedAt, &r.DurationMinutes, &r.ExpiresAt,
		&r.ReservedUntil, &r.Status, &r.Version, &r.UpdatedAt,
	}
}

func FoodPostToInfra(p foodpost.FoodPost) FoodPostRow {
	s := p.Snapshot()
	row := FoodPostRow{
		ID:              s.ID,
		DonorID:         s.DonorID,
		RecipientID:     pgconv.UUIDPtrToPgtype(s.RecipientID),
		FoodName:        s.FoodName,
		Servings:        int32(s.Servings),
		Freshness:       s.Freshness,
		CreatedAt:       s.CreatedAt,
		DurationMinutes: int32(s.DurationMinutes),
		ExpiresAt:       s.ExpiresAt,
		ReservedUntil:   pgconv.TimePtrToPgtype(s.ReservedUntil),
		Status:          s.Status.String(),
		Version:         s.Version,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.Location != nil {
		row.Latitude = pgconv.Float64PtrToPgtype(&s.Location.Latitude)
		row.Longitude = pgconv.Float64PtrToPgtype(&s.Location.Longitude)
	}
	return row
}

func FoodPostFromInfra(row FoodPostRow) (foodpost.FoodPost, error) {
	status, err := foodpost.ParseStatus(row.Status)
	if err != nil {
		return foodpost.FoodPost{}, err
	}

	var location *foodpost.Location
	lat, lng := pgconv.Float64PtrFromPgtype(row.Latitude), pgconv.Float64PtrFromPgtype(row.Longitude)
	if lat != nil && lng != nil {
		location = &foodpost.Location{Latitude: *lat, Longitude: *lng}
	}

	return foodpost.FromSnapshot(foodpost.Snapshot{
		ID:              row.ID,
		DonorID:         row.DonorID,
		RecipientID:     pgconv.UUIDPtrFromPgtype(row.RecipientID),
		FoodName:        row.FoodName,
		Servings:        int(row.Servings),
		Freshness:       row.Freshness,
		Location:        location,
		CreatedAt:       row.CreatedAt.UTC(),
		DurationMinutes: int(row.DurationMinutes),
		ExpiresAt:       row.ExpiresAt.UTC(),
		ReservedUntil:   pgconv.TimePtrFromPgtype(row.ReservedUntil),
		Status:          status,
		Version:         row.Version,
		UpdatedAt:       row.UpdatedAt.UTC(),
	}), nil
}
