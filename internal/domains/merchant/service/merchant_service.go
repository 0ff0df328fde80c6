package service

import (
	"context"

	"merchant-directory-backend/internal/domains/merchant/model"
	"merchant-directory-backend/internal/domains/merchant/repository"
)

// DirectoryPageSize is the fixed grid page size of the public listing.
const DirectoryPageSize = 16

type merchantService struct {
	repo repository.RepositoryInterface
}

func NewMerchantService(repo repository.RepositoryInterface) ServiceInterface {
	return &merchantService{repo: repo}
}

// ListActive returns one page of the directory. NextPage is set only
// when a full page came back; a short page means the grid is exhausted.
func (s *merchantService) ListActive(ctx context.Context, page int) (*model.MerchantListResponse, error) {
	if page < 0 {
		page = 0
	}

	items, err := s.repo.ListActive(ctx, page, DirectoryPageSize)
	if err != nil {
		return nil, err
	}

	resp := &model.MerchantListResponse{Merchants: items}
	if len(items) == DirectoryPageSize {
		next := page + 1
		resp.NextPage = &next
	}

	return resp, nil
}

func (s *merchantService) GetBySlug(ctx context.Context, slug string) (*model.Merchant, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *merchantService) SitemapEntries(ctx context.Context) ([]model.SlugLocation, error) {
	return s.repo.ListSlugLocations(ctx)
}
