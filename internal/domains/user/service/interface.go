package service

import (
	"context"

	"merchant-directory-backend/internal/domains/user/model"

	"github.com/google/uuid"
)

// ServiceInterface exposes the user role and profile operations.
type ServiceInterface interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUserType(ctx context.Context, id uuid.UUID, userType string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, location, slug string) error
}
