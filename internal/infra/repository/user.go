package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"food-rescue/internal/domain/user"
	"food-rescue/internal/infra"
	"food-rescue/internal/infra/db"
	"food-rescue/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, password_hash, role, name, phone, address, last_login, created_at, updated_at`

const (
	insertUserSQL = `INSERT INTO users (` + userColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	selectUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	selectUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	updateLastLoginSQL   = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`
)

const pgUniqueViolation = "23505"

type UserRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserRepository(q db.DBTX, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		db:     q,
		logger: logger.With(slog.String("component", "repository.users")),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Role().String(),
		u.Profile().Name(), u.Profile().Phone(), u.Profile().Address(),
		pgconv.TimePtrToPgtype(u.LastLogin()), u.CreatedAt(), u.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "email already registered", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, selectUserByEmailSQL, email)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, updateLastLoginSQL, id, at)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", nil)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		id                   uuid.UUID
		email, hash, role    string
		name, phone, address string
		lastLogin            pgtype.Timestamptz
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id, &email, &hash, &role, &name, &phone, &address, &lastLogin, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find user", err)
	}

	return toDomainUser(id, email, hash, role, name, phone, address, pgconv.TimePtrFromPgtype(lastLogin), createdAt, updatedAt)
}

func toDomainUser(
	id uuid.UUID,
	email, hash, role, name, phone, address string,
	lastLogin *time.Time,
	createdAt, updatedAt time.Time,
) (*user.User, error) {
	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	roleVO, err := user.NewRole(role)
	if err != nil {
		return nil, err
	}
	profile, err := user.NewProfile(name, phone, address)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(id, emailVO, hash, roleVO, profile, lastLogin, createdAt.UTC(), updatedAt.UTC()), nil
}
