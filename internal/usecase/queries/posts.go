package queries

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/domain/user"
	"food-rescue/internal/infra"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.New("invalid cursor")

type PostCache interface {
	Get(id uuid.UUID) (foodpost.FoodPost, bool)
	// Set reports false when a newer version of the post is already known.
	Set(post foodpost.FoodPost) bool
}

// FeedFilter selects open posts. Near and RadiusKm must be set together.
type FeedFilter struct {
	Near     *foodpost.Location
	RadiusKm float64
	After    *Cursor
	Limit    int
}

type PostPage struct {
	Items []*PostView `json:"items"`
	Next  *Cursor     `json:"next,omitempty"`
}

type PostQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PostView, error)
	// Feed lists available, unexpired posts, newest first.
	Feed(ctx context.Context, filter FeedFilter) (*PostPage, error)
	// Mine lists a donor's own posts, or the posts a recipient holds.
	Mine(ctx context.Context, userID uuid.UUID, role user.Role) ([]*PostView, error)
}

type postQueriesImpl struct {
	posts  shared.PostStore
	users  shared.UserStore
	cache  PostCache
	clock  clock.Clock
	logger *slog.Logger
}

func NewPostQueries(
	posts shared.PostStore,
	users shared.UserStore,
	cache PostCache,
	clk clock.Clock,
	logger *slog.Logger,
) PostQueries {
	return &postQueriesImpl{
		posts:  posts,
		users:  users,
		cache:  cache,
		clock:  clk,
		logger: logger.With(slog.String("component", "post_queries")),
	}
}

func (q *postQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PostView, error) {
	post, ok := q.cache.Get(id)
	if !ok {
		var err error
		post, err = q.posts.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !q.cache.Set(post) {
			q.logger.DebugContext(ctx, "skipped stale cache fill",
				slog.String("post_id", id.String()),
				slog.Int64("version", post.Version()))
		}
	}

	view := NewPostView(post)
	view.Donor = q.newDonorLookup(ctx).find(post.DonorID())
	return view, nil
}

func (q *postQueriesImpl) Feed(ctx context.Context, filter FeedFilter) (*PostPage, error) {
	now := q.clock.Now()
	limit := ValidateLimit(filter.Limit)

	var (
		afterAt time.Time
		afterID uuid.UUID
	)
	hasAfter := filter.After != nil && filter.After.After != ""
	if hasAfter {
		t, id, err := DecodeAfterCursor(filter.After.After)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidCursor)
		}
		afterAt, afterID = t, id
	}

	open := func(p foodpost.FoodPost) bool {
		if p.HasExpired(now) {
			return false
		}
		if filter.Near != nil && p.Location() != nil {
			return filter.Near.DistanceKm(*p.Location()) <= filter.RadiusKm
		}
		return filter.Near == nil
	}

	var matched []foodpost.FoodPost
	for post, err := range q.posts.ListByStatus(ctx, foodpost.StatusAvailable, open) {
		if err != nil {
			return nil, err
		}
		if hasAfter && !olderThan(post, afterAt, afterID) {
			continue
		}
		matched = append(matched, post)
	}
	sortNewestFirst(matched)

	page := &PostPage{Items: make([]*PostView, 0, min(limit, len(matched)))}
	if len(matched) > limit {
		last := matched[limit-1]
		page.Next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		matched = matched[:limit]
	}

	donors := q.newDonorLookup(ctx)
	for _, post := range matched {
		view := NewPostView(post)
		view.Donor = donors.find(post.DonorID())
		if filter.Near != nil && post.Location() != nil {
			d := filter.Near.DistanceKm(*post.Location())
			view.DistanceKm = &d
		}
		page.Items = append(page.Items, view)
	}
	return page, nil
}

func (q *postQueriesImpl) Mine(ctx context.Context, userID uuid.UUID, role user.Role) ([]*PostView, error) {
	var (
		statuses []foodpost.Status
		mine     shared.PostFilter
	)
	switch role {
	case user.RoleDonor:
		statuses = foodpost.AllStatuses()
		mine = func(p foodpost.FoodPost) bool { return p.DonorID() == userID }
	case user.RoleRecipient:
		statuses = []foodpost.Status{foodpost.StatusReserved, foodpost.StatusAccepted}
		mine = func(p foodpost.FoodPost) bool { return p.IsHeldBy(userID) }
	default:
		return nil, errs.Mark(errs.Newf("unknown role %q", role), foodpost.ErrForbidden)
	}

	var matched []foodpost.FoodPost
	for _, status := range statuses {
		for post, err := range q.posts.ListByStatus(ctx, status, mine) {
			if err != nil {
				return nil, err
			}
			matched = append(matched, post)
		}
	}
	sortNewestFirst(matched)

	donors := q.newDonorLookup(ctx)
	views := make([]*PostView, 0, len(matched))
	for _, post := range matched {
		view := NewPostView(post)
		view.Donor = donors.find(post.DonorID())
		views = append(views, view)
	}
	return views, nil
}

// sortNewestFirst orders at cursor precision so pages built from it agree with olderThan.
func sortNewestFirst(posts []foodpost.FoodPost) {
	slices.SortFunc(posts, func(a, b foodpost.FoodPost) int {
		if c := b.CreatedAt().Truncate(time.Microsecond).Compare(a.CreatedAt().Truncate(time.Microsecond)); c != 0 {
			return c
		}
		return cmp.Compare(b.ID().String(), a.ID().String())
	})
}

// olderThan reports whether p sorts after the cursor position in newest-first order.
func olderThan(p foodpost.FoodPost, at time.Time, id uuid.UUID) bool {
	created := p.CreatedAt().Truncate(time.Microsecond)
	if c := created.Compare(at); c != 0 {
		return c < 0
	}
	return p.ID().String() < id.String()
}

// donorLookup memoizes user lookups for the duration of one query.
type donorLookup struct {
	ctx    context.Context
	users  shared.UserStore
	logger *slog.Logger
	seen   map[uuid.UUID]*DonorView
}

func (q *postQueriesImpl) newDonorLookup(ctx context.Context) *donorLookup {
	return &donorLookup{ctx: ctx, users: q.users, logger: q.logger, seen: make(map[uuid.UUID]*DonorView)}
}

func (l *donorLookup) find(id uuid.UUID) *DonorView {
	if v, ok := l.seen[id]; ok {
		return v
	}

	var view *DonorView
	u, err := l.users.FindByID(l.ctx, id)
	switch {
	case err == nil:
		view = &DonorView{
			ID:      u.ID(),
			Name:    u.Profile().Name(),
			Phone:   u.Profile().Phone(),
			Address: u.Profile().Address(),
		}
	case infra.IsKind(err, infra.KindNotFound):
	default:
		l.logger.Warn("failed to load donor", slog.String("donor_id", id.String()), slog.String("error", err.Error()))
	}
	l.seen[id] = view
	return view
}
