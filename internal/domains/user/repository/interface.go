package repository

import (
	"context"

	"merchant-directory-backend/internal/domains/user/model"

	"github.com/google/uuid"
)

// RepositoryInterface is the users table data access contract.
type RepositoryInterface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUserType(ctx context.Context, id uuid.UUID, userType string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, location, slug string) error
}
