package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"mtys/internal/utils"
	"mtys/pkg/types"
)

var userColumns = utils.StructTagValues(types.User{}, utils.ColumnTag)

// dummyHash keeps Verify's timing flat when the username does not exist.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Verify checks the password against the stored bcrypt hash and returns the
// user without it. Bad username and bad password are indistinguishable to the
// caller.
func (r *UserRepository) Verify(ctx context.Context, username, password string) (*types.User, error) {

	query, args, err := psql().Select(userColumns...).From(userTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user = new(types.User)
	err = pgxscan.Get(ctx, r.pool, user, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, types.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, types.ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

func (r *UserRepository) All(ctx context.Context) ([]*types.User, error) {

	query, _, err := psql().Select("id", "username", "role").From(userTableName).
		OrderBy("username ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate users query: %w", err)
	}

	var users = make([]*types.User, 0)
	if err := pgxscan.Select(ctx, r.pool, &users, query); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}

// Create validates before touching the store: empty credentials or an unknown
// role never reach Postgres. The password is stored as a bcrypt hash only.
func (r *UserRepository) Create(ctx context.Context, username, password string, role types.Role) (*types.User, error) {

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &types.ValidationError{Field: "username", Message: "username is required"}
	}
	if password == "" {
		return nil, &types.ValidationError{Field: "password", Message: "password is required"}
	}
	if !role.Valid() {
		return nil, &types.ValidationError{Field: "role", Message: "unknown role: " + string(role)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		ID:           utils.NanoID(),
		Username:     username,
		Role:         role,
		PasswordHash: string(hash),
	}

	query, args, err := psql().Insert(userTableName).
		SetMap(utils.StructToMap(user, utils.ColumnTag)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert user query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {

	query, args, err := psql().Delete(userTableName).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete user query for user %s: %w", userID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete user")
}
