package repository

import (
	"context"

	"merchant-directory-backend/internal/domains/merchant/model"
)

// RepositoryInterface is the merchants table data access contract.
type RepositoryInterface interface {
	// Upsert inserts or updates a merchant keyed by slug. Only the
	// columns present in record are written; existing values of absent
	// columns are left untouched.
	Upsert(ctx context.Context, record map[string]any) error

	FindBySlug(ctx context.Context, slug string) (*model.Merchant, error)

	// ListActive returns one page of active merchants ordered by name.
	ListActive(ctx context.Context, page, pageSize int) ([]model.MerchantListItem, error)

	// ListSlugLocations returns every merchant's slug and location blob
	// for sitemap generation.
	ListSlugLocations(ctx context.Context) ([]model.SlugLocation, error)
}
