package service

import (
	"context"

	"merchant-directory-backend/internal/domains/user/model"
	"merchant-directory-backend/internal/domains/user/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type userService struct {
	repo repository.RepositoryInterface
}

func NewUserService(repo repository.RepositoryInterface) ServiceInterface {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateUserType(ctx context.Context, id uuid.UUID, userType string) error {
	if !model.IsValidUserType(userType) {
		return model.ErrInvalidUserType
	}

	if err := s.repo.UpdateUserType(ctx, id, userType); err != nil {
		return err
	}

	log.Info().
		Str("user_id", id.String()).
		Str("user_type", userType).
		Msg("User type updated")

	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, location, slug string) error {
	if err := s.repo.UpdateProfile(ctx, id, location, slug); err != nil {
		return err
	}

	log.Info().
		Str("user_id", id.String()).
		Str("slug", slug).
		Msg("User profile updated")

	return nil
}
