package service

import (
	"context"

	"merchant-directory-backend/internal/domains/merchant/model"
)

// BatchImportServiceInterface runs the admin batch-import pipeline.
type BatchImportServiceInterface interface {
	// ImportManifest validates the raw request body and processes every
	// manifest item in order. The only error it returns is
	// model.ErrInvalidManifest; all per-item and per-asset failures are
	// captured inside the BatchResult instead.
	ImportManifest(ctx context.Context, body []byte) (*model.BatchResult, error)
}

// ServiceInterface exposes the public read side of the directory.
type ServiceInterface interface {
	ListActive(ctx context.Context, page int) (*model.MerchantListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*model.Merchant, error)
	SitemapEntries(ctx context.Context) ([]model.SlugLocation, error)
}
