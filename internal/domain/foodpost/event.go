package foodpost

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventReserved  EventType = "reserved"
	EventAccepted  EventType = "accepted"
	EventExpired   EventType = "expired"
	EventCancelled EventType = "cancelled"
	EventReleased  EventType = "released"
)

func (t EventType) String() string {
	return string(t)
}

// Event describes a committed status change.
type Event struct {
	PostID      uuid.UUID
	Type        EventType
	DonorID     uuid.UUID
	RecipientID *uuid.UUID
	Version     int64
	OccurredAt  time.Time
}

// NewEvent builds the event for a committed post. recipientID is passed explicitly because
// some transitions (release, expiry of a reservation) clear it on the post itself.
func NewEvent(t EventType, post FoodPost, recipientID *uuid.UUID) Event {
	return Event{
		PostID:      post.ID(),
		Type:        t,
		DonorID:     post.DonorID(),
		RecipientID: copyUUID(recipientID),
		Version:     post.Version(),
		OccurredAt:  post.UpdatedAt(),
	}
}
