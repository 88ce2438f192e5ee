package commands

import (
	"context"
	"log/slog"
	"time"

	"food-rescue/internal/domain/user"
	reqdto "food-rescue/internal/handler/dto/request"
	"food-rescue/internal/infra"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrInvalidRegistration  = errs.New("invalid registration")
	ErrEmailTaken           = errs.New("email already registered")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
	ExpiresIn   time.Duration
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, error)
	TokenDuration() time.Duration
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	users  shared.UserStore
	tokens TokenIssuer
	hasher PasswordHasher
	clock  clock.Clock
	logger *slog.Logger
}

func NewAuthCommands(
	users shared.UserStore,
	tokens TokenIssuer,
	hasher PasswordHasher,
	clk clock.Clock,
	logger *slog.Logger,
) AuthCommands {
	return &authCommandsImpl{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		clock:  clk,
		logger: logger.With(slog.String("component", "auth")),
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error) {
	input, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRegistration)
	}

	hash, err := a.hasher.Hash(input.Credentials.Password().Value())
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	u := user.NewUser(input.Credentials.Email(), hash, input.Role, input.Profile, a.clock.Now())
	if err := a.users.Create(ctx, u); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Wrap(err, "create user")
	}

	return a.issue(u.ID(), u.Role())
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u, err := a.users.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same answer as a wrong password so accounts cannot be enumerated.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Wrap(err, "find user")
	}

	if err := a.hasher.Compare(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	result, err := a.issue(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}

	if err := a.users.UpdateLastLogin(ctx, u.ID(), a.clock.Now()); err != nil {
		a.logger.Warn("failed to update last login",
			slog.String("user_id", u.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return result, nil
}

func (a *authCommandsImpl) issue(userID uuid.UUID, role user.Role) (*LoginResult, error) {
	token, err := a.tokens.GenerateToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &LoginResult{
		UserID:      userID,
		Role:        role,
		AccessToken: token,
		ExpiresIn:   a.tokens.TokenDuration(),
	}, nil
}
