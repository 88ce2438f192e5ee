package shared

import (
	"context"
	"iter"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/domain/user"

	"github.com/google/uuid"
)

// Mutator derives the next state of a post from the stored one. A non-nil error aborts the
// compare-and-swap without writing.
type Mutator func(foodpost.FoodPost) (foodpost.FoodPost, error)

// PostFilter narrows ListByStatus. A nil filter accepts every post.
type PostFilter func(foodpost.FoodPost) bool

// PostStore persists food posts. CompareAndSwap is the only mutation path: it applies the
// mutator to the stored post only when the stored version equals expectedVersion, and the
// store, not the caller, increments the version.
type PostStore interface {
	Create(ctx context.Context, draft foodpost.Draft) (foodpost.FoodPost, error)
	Get(ctx context.Context, id uuid.UUID) (foodpost.FoodPost, error)
	CompareAndSwap(ctx context.Context, id uuid.UUID, expectedVersion int64, mutate Mutator) (foodpost.FoodPost, error)
	ListByStatus(ctx context.Context, status foodpost.Status, filter PostFilter) iter.Seq2[foodpost.FoodPost, error]
}

type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// NotificationGateway is told about every committed transition. Delivery failures are the
// gateway's concern and never reach the caller.
type NotificationGateway interface {
	Notify(ctx context.Context, event foodpost.Event)
}

// Accept is a convenience for composing filters.
func (f PostFilter) Accept(p foodpost.FoodPost) bool {
	return f == nil || f(p)
}
