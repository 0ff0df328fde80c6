package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merchant-directory-backend/internal/domains/user/model"
	"merchant-directory-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userCacheTTL = 5 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository wires the users table onto the shared pool.
// The cache is used for FindByID, which sits on the hot path of the
// admin middleware.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User

	// Cache-aside: role lookups happen on every admin request
	found, err := r.cache.Get(ctx, userCacheKey(id), &u)
	if err == nil && found {
		return &u, nil
	}

	query := `
		SELECT id, user_type, location, slug, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.UserType,
		&u.Location,
		&u.Slug,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	_ = r.cache.Set(ctx, userCacheKey(id), &u, userCacheTTL)

	return &u, nil
}

func (r *postgresRepository) UpdateUserType(ctx context.Context, id uuid.UUID, userType string) error {
	if !model.IsValidUserType(userType) {
		return model.ErrInvalidUserType
	}

	query := `
		UPDATE users
		SET user_type = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, userType)
	if err != nil {
		return fmt.Errorf("update user type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))

	return nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, id uuid.UUID, location, slug string) error {
	query := `
		UPDATE users
		SET location = $2, slug = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, location, slug)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))

	return nil
}
