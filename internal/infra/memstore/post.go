package memstore

import (
	"context"
	"iter"
	"sync"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/usecase/shared"

	"github.com/google/uuid"
)

// PostStore keeps posts in process memory. The version check and the write of a
// compare-and-swap happen under the same write lock.
type PostStore struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]foodpost.FoodPost
	clock clock.Clock
}

func NewPostStore(clk clock.Clock) *PostStore {
	return &PostStore{
		posts: make(map[uuid.UUID]foodpost.FoodPost),
		clock: clk,
	}
}

func (s *PostStore) Create(ctx context.Context, draft foodpost.Draft) (foodpost.FoodPost, error) {
	if err := ctx.Err(); err != nil {
		return foodpost.FoodPost{}, err
	}

	post, err := foodpost.New(draft, s.clock.Now())
	if err != nil {
		return foodpost.FoodPost{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID()] = post
	return post, nil
}

func (s *PostStore) Get(ctx context.Context, id uuid.UUID) (foodpost.FoodPost, error) {
	if err := ctx.Err(); err != nil {
		return foodpost.FoodPost{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return foodpost.FoodPost{}, errs.Wrapf(foodpost.ErrNotFound, "post %s", id)
	}
	return post, nil
}

func (s *PostStore) CompareAndSwap(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	mutate shared.Mutator,
) (foodpost.FoodPost, error) {
	if err := ctx.Err(); err != nil {
		return foodpost.FoodPost{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[id]
	if !ok {
		return foodpost.FoodPost{}, errs.Wrapf(foodpost.ErrNotFound, "post %s", id)
	}
	if current.Version() != expectedVersion {
		return foodpost.FoodPost{}, errs.Wrapf(foodpost.ErrVersionConflict,
			"post %s: expected version %d, stored %d", id, expectedVersion, current.Version())
	}

	next, err := mutate(current)
	if err != nil {
		return foodpost.FoodPost{}, err
	}
	if err := foodpost.ValidateSuccessor(current, next); err != nil {
		return foodpost.FoodPost{}, err
	}

	next = next.WithVersion(current.Version() + 1)
	s.posts[id] = next
	return next, nil
}

// ListByStatus copies the matching posts under the read lock and yields them afterwards,
// so a consumer may call CompareAndSwap while iterating.
func (s *PostStore) ListByStatus(
	ctx context.Context,
	status foodpost.Status,
	filter shared.PostFilter,
) iter.Seq2[foodpost.FoodPost, error] {
	return func(yield func(foodpost.FoodPost, error) bool) {
		s.mu.RLock()
		matched := make([]foodpost.FoodPost, 0, len(s.posts))
		for _, p := range s.posts {
			if p.Status() == status && filter.Accept(p) {
				matched = append(matched, p)
			}
		}
		s.mu.RUnlock()

		for _, p := range matched {
			if err := ctx.Err(); err != nil {
				yield(foodpost.FoodPost{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
