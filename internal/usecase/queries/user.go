package queries

import (
	"context"

	"food-rescue/internal/domain/user"
	"food-rescue/internal/infra"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	users shared.UserStore
}

func NewUserQueries(users shared.UserStore) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	u, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserView(u), nil
}

func toUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		Name:      u.Profile().Name(),
		Phone:     u.Profile().Phone(),
		Address:   u.Profile().Address(),
		LastLogin: u.LastLogin(),
		CreatedAt: u.CreatedAt(),
	}
}
