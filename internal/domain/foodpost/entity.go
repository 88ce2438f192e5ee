package foodpost

import (
	"strings"
	"time"

	"food-rescue/internal/pkg/errs"

	"github.com/google/uuid"
)

// FoodPost is an immutable value. Transition methods return a modified copy and never
// touch the receiver; persisting the copy is the job of a store's compare-and-swap.
type FoodPost struct {
	id              uuid.UUID
	donorID         uuid.UUID
	recipientID     *uuid.UUID
	foodName        string
	servings        int
	freshness       string
	location        *Location
	createdAt       time.Time
	durationMinutes int
	expiresAt       time.Time
	reservedUntil   *time.Time
	status          Status
	version         int64
	updatedAt       time.Time
}

// Snapshot is the flat, exported form of a FoodPost used by stores and read models.
type Snapshot struct {
	ID              uuid.UUID
	DonorID         uuid.UUID
	RecipientID     *uuid.UUID
	FoodName        string
	Servings        int
	Freshness       string
	Location        *Location
	CreatedAt       time.Time
	DurationMinutes int
	ExpiresAt       time.Time
	ReservedUntil   *time.Time
	Status          Status
	Version         int64
	UpdatedAt       time.Time
}

func New(draft Draft, now time.Time) (FoodPost, error) {
	if err := draft.Validate(); err != nil {
		return FoodPost{}, err
	}

	// PostgreSQL keeps microseconds; both stores must order posts identically.
	now = now.UTC().Truncate(time.Microsecond)
	return FoodPost{
		id:              uuid.New(),
		donorID:         draft.DonorID,
		foodName:        strings.TrimSpace(draft.FoodName),
		servings:        draft.Servings,
		freshness:       strings.TrimSpace(draft.Freshness),
		location:        copyLocation(draft.Location),
		createdAt:       now,
		durationMinutes: draft.DurationMinutes,
		expiresAt:       now.Add(time.Duration(draft.DurationMinutes) * time.Minute),
		status:          StatusAvailable,
		version:         0,
		updatedAt:       now,
	}, nil
}

func FromSnapshot(s Snapshot) FoodPost {
	return FoodPost{
		id:              s.ID,
		donorID:         s.DonorID,
		recipientID:     copyUUID(s.RecipientID),
		foodName:        s.FoodName,
		servings:        s.Servings,
		freshness:       s.Freshness,
		location:        copyLocation(s.Location),
		createdAt:       s.CreatedAt,
		durationMinutes: s.DurationMinutes,
		expiresAt:       s.ExpiresAt,
		reservedUntil:   copyTime(s.ReservedUntil),
		status:          s.Status,
		version:         s.Version,
		updatedAt:       s.UpdatedAt,
	}
}

func (p FoodPost) Snapshot() Snapshot {
	return Snapshot{
		ID:              p.id,
		DonorID:         p.donorID,
		RecipientID:     copyUUID(p.recipientID),
		FoodName:        p.foodName,
		Servings:        p.servings,
		Freshness:       p.freshness,
		Location:        copyLocation(p.location),
		CreatedAt:       p.createdAt,
		DurationMinutes: p.durationMinutes,
		ExpiresAt:       p.expiresAt,
		ReservedUntil:   copyTime(p.reservedUntil),
		Status:          p.status,
		Version:         p.version,
		UpdatedAt:       p.updatedAt,
	}
}

// WithVersion is reserved for stores, which own the version counter.
func (p FoodPost) WithVersion(v int64) FoodPost {
	p.version = v
	return p
}

func (p FoodPost) IsZero() bool { return p.id == uuid.Nil }

func (p FoodPost) ID() uuid.UUID             { return p.id }
func (p FoodPost) DonorID() uuid.UUID        { return p.donorID }
func (p FoodPost) RecipientID() *uuid.UUID   { return copyUUID(p.recipientID) }
func (p FoodPost) FoodName() string          { return p.foodName }
func (p FoodPost) Servings() int             { return p.servings }
func (p FoodPost) Freshness() string         { return p.freshness }
func (p FoodPost) Location() *Location       { return copyLocation(p.location) }
func (p FoodPost) CreatedAt() time.Time      { return p.createdAt }
func (p FoodPost) DurationMinutes() int      { return p.durationMinutes }
func (p FoodPost) ExpiresAt() time.Time      { return p.expiresAt }
func (p FoodPost) ReservedUntil() *time.Time { return copyTime(p.reservedUntil) }
func (p FoodPost) Status() Status            { return p.status }
func (p FoodPost) Version() int64            { return p.version }
func (p FoodPost) UpdatedAt() time.Time      { return p.updatedAt }

func (p FoodPost) IsHeldBy(recipientID uuid.UUID) bool {
	return p.recipientID != nil && *p.recipientID == recipientID
}

func (p FoodPost) HasExpired(now time.Time) bool {
	return !now.Before(p.expiresAt)
}

func (p FoodPost) reservationLapsed(now time.Time) bool {
	return p.status == StatusReserved && p.reservedUntil != nil && !now.Before(*p.reservedUntil)
}

// IsDueForExpiry reports whether the sweep should move the post to expired at now.
func (p FoodPost) IsDueForExpiry(now time.Time) bool {
	if p.status != StatusAvailable && p.status != StatusReserved {
		return false
	}
	return p.HasExpired(now) || p.reservationLapsed(now)
}

// Reserve holds the post for recipientID until min(now+ttl, expiresAt).
func (p FoodPost) Reserve(recipientID uuid.UUID, now time.Time, ttl time.Duration) (FoodPost, error) {
	if recipientID == uuid.Nil {
		return FoodPost{}, validationErr("recipient id is required")
	}
	if p.status != StatusAvailable {
		return FoodPost{}, ErrConflict
	}
	if p.HasExpired(now) {
		return FoodPost{}, ErrExpired
	}
	if recipientID == p.donorID {
		return FoodPost{}, ErrForbidden
	}

	until := now.Add(ttl)
	if until.After(p.expiresAt) {
		until = p.expiresAt
	}
	next := p
	next.status = StatusReserved
	next.recipientID = &recipientID
	next.reservedUntil = &until
	next.updatedAt = now
	return next, nil
}

func (p FoodPost) Accept(recipientID uuid.UUID, now time.Time) (FoodPost, error) {
	if p.status != StatusReserved || !p.IsHeldBy(recipientID) || p.reservationLapsed(now) || p.HasExpired(now) {
		return FoodPost{}, ErrNotReserved
	}
	next := p
	next.status = StatusAccepted
	next.reservedUntil = nil
	next.updatedAt = now
	return next, nil
}

// Release returns a reservation to the pool.
func (p FoodPost) Release(recipientID uuid.UUID, now time.Time) (FoodPost, error) {
	if p.status != StatusReserved || !p.IsHeldBy(recipientID) {
		return FoodPost{}, ErrNotReserved
	}
	next := p
	next.status = StatusAvailable
	next.recipientID = nil
	next.reservedUntil = nil
	next.updatedAt = now
	return next, nil
}

func (p FoodPost) Expire(now time.Time) (FoodPost, error) {
	if !p.IsDueForExpiry(now) {
		return FoodPost{}, ErrInvalidTransition
	}
	next := p
	next.status = StatusExpired
	next.recipientID = nil
	next.reservedUntil = nil
	next.updatedAt = now
	return next, nil
}

func (p FoodPost) Cancel(donorID uuid.UUID, now time.Time) (FoodPost, error) {
	if donorID != p.donorID {
		return FoodPost{}, ErrForbidden
	}
	if !p.status.CanTransitionTo(StatusCancelled) {
		return FoodPost{}, ErrConflict
	}
	next := p
	next.status = StatusCancelled
	next.recipientID = nil
	next.reservedUntil = nil
	next.updatedAt = now
	return next, nil
}

// ValidateSuccessor checks that next is a legal replacement for prev: identity and
// creation data unchanged, status moved along an edge of the state machine, and the
// recipient set exactly when the status holds one.
func ValidateSuccessor(prev, next FoodPost) error {
	if next.id != prev.id || next.donorID != prev.donorID ||
		next.foodName != prev.foodName || next.servings != prev.servings ||
		next.freshness != prev.freshness || !next.createdAt.Equal(prev.createdAt) ||
		next.durationMinutes != prev.durationMinutes || !next.expiresAt.Equal(prev.expiresAt) ||
		!sameLocation(prev.location, next.location) {
		return errs.Mark(errs.New("immutable food post field changed"), ErrInvalidTransition)
	}
	if next.status != prev.status && !prev.status.CanTransitionTo(next.status) {
		return errs.Mark(errs.Newf("%s -> %s", prev.status, next.status), ErrInvalidTransition)
	}
	holds := next.status == StatusReserved || next.status == StatusAccepted
	if holds != (next.recipientID != nil) {
		return errs.Mark(errs.Newf("recipient inconsistent with status %s", next.status), ErrInvalidTransition)
	}
	return nil
}

func sameLocation(a, b *Location) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyLocation(l *Location) *Location {
	if l == nil {
		return nil
	}
	v := *l
	return &v
}
