package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/userauth-server/internal/model"
)

const userColumns = "id, email, hashed_password, session_id, reset_token, created_at, updated_at"

// querier is the subset of pgxpool.Pool the repository uses. pgxmock
// satisfies it in tests.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db querier
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// AddUser inserts a new user record. The insert is a single statement,
// so a constraint violation leaves the store unchanged.
func (r *UserRepository) AddUser(ctx context.Context, email, hashedPassword string) (model.User, error) {
	query := `INSERT INTO users (id, email, hashed_password, created_at, updated_at)
			  VALUES ($1, $2, $3, now(), now())
			  RETURNING ` + userColumns

	var user model.User
	err := r.db.QueryRow(ctx, query, uuid.New(), email, hashedPassword).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.SessionID, &user.ResetToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.User{}, model.ErrAlreadyRegistered
		}
		return model.User{}, fmt.Errorf("%w: failed to add user: %v", model.ErrStoreFailure, err)
	}

	return user, nil
}

// FindUserBy returns the first user matching every field in filter.
// Every filter key is validated before any SQL is issued.
func (r *UserRepository) FindUserBy(ctx context.Context, filter model.Filter) (model.User, error) {
	fields, err := validateFilter(filter)
	if err != nil {
		return model.User{}, err
	}

	conditions := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		args = append(args, filter[field])
		conditions = append(conditions, fmt.Sprintf("%s = $%d", field, len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` +
		strings.Join(conditions, " AND ") + ` LIMIT 1`

	var user model.User
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.SessionID, &user.ResetToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("%w: failed to find user: %v", model.ErrStoreFailure, err)
	}

	return user, nil
}

// UpdateUser persists every field in fields for the user with id. All
// field names are validated before the update runs, and all values are
// written by one statement, so the change is all-or-nothing.
func (r *UserRepository) UpdateUser(ctx context.Context, id uuid.UUID, fields model.Fields) error {
	names, err := validateFields(fields)
	if err != nil {
		return err
	}

	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, field := range names {
		args = append(args, fields[field])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", field, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s, updated_at = now() WHERE id = $%d`,
		strings.Join(assignments, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: failed to update user: %v", model.ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// validateFilter checks every filter key against the filterable columns
// and returns them in deterministic order.
func validateFilter(filter model.Filter) ([]model.Field, error) {
	if len(filter) == 0 {
		return nil, fmt.Errorf("%w: empty filter", model.ErrInvalidFilter)
	}
	fields := make([]model.Field, 0, len(filter))
	for field := range filter {
		if !field.Filterable() {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidFilter, string(field))
		}
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields, nil
}

// validateFields checks every update key against the mutable columns and
// returns them in deterministic order.
func validateFields(fields model.Fields) ([]model.Field, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty update", model.ErrInvalidField)
	}
	names := make([]model.Field, 0, len(fields))
	for field := range fields {
		if !field.Mutable() {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidField, string(field))
		}
		names = append(names, field)
	}
	slices.Sort(names)
	return names, nil
}
