package service

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"merchant-directory-backend/internal/domains/merchant/model"
	"merchant-directory-backend/internal/domains/merchant/repository"

	"github.com/rs/zerolog/log"
)

// BlobStore is what the asset migrator needs from object storage.
// Satisfied by storage.MinIOStorage; tests inject fakes.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

type batchImportService struct {
	repo       repository.RepositoryInterface
	blob       BlobStore
	downloader Downloader
}

// NewBatchImportService wires the pipeline: downloader and blob store
// for asset migration, repository for the upserts.
func NewBatchImportService(
	repo repository.RepositoryInterface,
	blob BlobStore,
	downloader Downloader,
) BatchImportServiceInterface {
	return &batchImportService{
		repo:       repo,
		blob:       blob,
		downloader: downloader,
	}
}

// ImportManifest processes the batch strictly sequentially: items in
// order, assets within an item in order. No item's failure stops the
// batch; every failure is captured in the item's result instead.
func (s *batchImportService) ImportManifest(ctx context.Context, body []byte) (*model.BatchResult, error) {
	manifest, err := model.ParseManifest(body)
	if err != nil {
		return nil, err
	}

	log.Info().Int("items", len(manifest.Items)).Msg("Starting batch import")

	results := make([]model.ItemResult, 0, len(manifest.Items))
	for idx, item := range manifest.Items {
		results = append(results, s.processItem(ctx, idx, item))
	}

	log.Info().Int("items", len(results)).Msg("Batch import completed")

	return &model.BatchResult{
		Status:  model.BatchStatusDone,
		Results: results,
	}, nil
}

// processItem runs one manifest entry through the whole pipeline:
// resolve slug, migrate assets, map, upsert, record outcome.
func (s *batchImportService) processItem(ctx context.Context, idx int, item model.ManifestItem) model.ItemResult {
	slug := item.ResolveSlug(idx)

	res := model.ItemResult{
		Slug:           slug,
		Uploads:        []model.AssetUploadResult{},
		DatabaseStatus: model.DBStatusNotAttempted,
		Errors:         []string{},
	}

	var assets model.DerivedAssetURLs

	// Sequential filenames keep destination paths deterministic:
	// re-submitting the same manifest overwrites the same objects.
	// Only successfully migrated assets contribute a public URL; the
	// persisted record must never point at a missing object.
	for i, src := range item.Images {
		filename := fmt.Sprintf("image-%d.%s", i+1, fileExtension(src))
		key := fmt.Sprintf("public/%s/images/%s", slug, filename)
		if s.migrateAsset(ctx, &res, src, "images", filename, key) {
			assets.Images = append(assets.Images, s.blob.PublicURL(key))
		}
	}

	for i, src := range item.Thumbnails {
		filename := fmt.Sprintf("thumbnail-%d.%s", i+1, fileExtension(src))
		key := fmt.Sprintf("public/%s/thumbnails/%s", slug, filename)
		if s.migrateAsset(ctx, &res, src, "thumbnails", filename, key) {
			assets.Thumbnails = append(assets.Thumbnails, s.blob.PublicURL(key))
		}
	}

	if item.MainImage != "" {
		filename := assetBasename(item.MainImage, "main-image.jpg")
		key := fmt.Sprintf("public/%s/main-image/%s", slug, filename)
		if s.migrateAsset(ctx, &res, item.MainImage, "main-image", filename, key) {
			assets.MainImage = s.blob.PublicURL(key)
		}
	}

	if item.VideoURL != "" {
		filename := assetBasename(item.VideoURL, "video.mp4")
		key := fmt.Sprintf("public/%s/video/%s", slug, filename)
		if s.migrateAsset(ctx, &res, item.VideoURL, "video", filename, key) {
			assets.VideoURL = s.blob.PublicURL(key)
		}
	}

	record := model.MapToRecord(item, slug, assets)
	res.DatabaseStatus = s.upsertRecord(ctx, record, &res)

	if len(res.Errors) > 0 {
		log.Warn().
			Str("slug", slug).
			Int("errors", len(res.Errors)).
			Str("db", res.DatabaseStatus).
			Msg("Manifest item finished with errors")
	}

	return res
}

// migrateAsset downloads one source URL and re-uploads it to the blob
// store. Single attempt, no retry. Failures are recorded on the item
// result; sibling assets and the database write still proceed. Returns
// whether the asset now exists at key.
func (s *batchImportService) migrateAsset(ctx context.Context, res *model.ItemResult, srcURL, assetType, filename, key string) bool {
	if srcURL == "" {
		return false
	}

	data, err := s.downloader.Download(ctx, srcURL)
	if err != nil {
		res.Uploads = append(res.Uploads, model.AssetUploadResult{
			AssetType: assetType,
			Filename:  filename,
			Path:      key,
			Error:     err.Error(),
		})
		res.Errors = append(res.Errors,
			fmt.Sprintf("Download/upload failed for %s/%s: %v", assetType, filename, err))
		return false
	}

	uploadErr := s.blob.Upload(ctx, key, data, contentTypeFor(filename))

	upload := model.AssetUploadResult{
		AssetType: assetType,
		Filename:  filename,
		Path:      key,
	}
	if uploadErr != nil {
		upload.Error = uploadErr.Error()
		res.Errors = append(res.Errors,
			fmt.Sprintf("Storage upload error for %s/%s: %v", assetType, filename, uploadErr))
	}
	res.Uploads = append(res.Uploads, upload)

	return uploadErr == nil
}

// upsertRecord writes the mapped record and translates the outcome into
// a database status. A panic inside the store client is contained here
// so the batch continues with the next item.
func (s *batchImportService) upsertRecord(ctx context.Context, record map[string]any, res *model.ItemResult) (status string) {
	defer func() {
		if rec := recover(); rec != nil {
			status = model.DBStatusException
			res.Errors = append(res.Errors, fmt.Sprintf("DB upsert exception: %v", rec))
		}
	}()

	if err := s.repo.Upsert(ctx, record); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("DB upsert error: %v", err))
		return err.Error()
	}

	return model.DBStatusOK
}

// fileExtension derives the extension from the URL's last path segment
// after the final dot, with the query string stripped. Defaults to jpg.
func fileExtension(rawURL string) string {
	trimmed := rawURL
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}

	base := path.Base(trimmed)
	if i := strings.LastIndexByte(base, '.'); i >= 0 && i < len(base)-1 {
		return base[i+1:]
	}
	return "jpg"
}

// assetBasename keeps the source filename for single assets (main
// image, video) so re-runs stay idempotent by path.
func assetBasename(rawURL, fallback string) string {
	trimmed := rawURL
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}

	base := path.Base(trimmed)
	if base == "" || base == "." || base == "/" {
		return fallback
	}
	return base
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(path.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
