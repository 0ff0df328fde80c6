package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"merchant-directory-backend/internal/domains/merchant/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type fakeDownloader struct {
	failures map[string]error
	calls    []string
}

func (d *fakeDownloader) Download(_ context.Context, url string) ([]byte, error) {
	d.calls = append(d.calls, url)
	if err, ok := d.failures[url]; ok {
		return nil, err
	}
	return []byte("bytes of " + url), nil
}

type fakeBlobStore struct {
	objects  map[string][]byte
	keys     []string
	failures map[string]error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (b *fakeBlobStore) Upload(_ context.Context, key string, data []byte, _ string) error {
	if err, ok := b.failures[key]; ok {
		return err
	}
	b.objects[key] = data
	b.keys = append(b.keys, key)
	return nil
}

func (b *fakeBlobStore) PublicURL(key string) string {
	return "https://cdn.test/object/public/merchants/" + key
}

type fakeRepository struct {
	records     []map[string]any
	err         error
	panicOnSlug string
}

func (r *fakeRepository) Upsert(_ context.Context, record map[string]any) error {
	if r.panicOnSlug != "" && record["slug"] == r.panicOnSlug {
		panic("connection pool exhausted")
	}
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeRepository) FindBySlug(context.Context, string) (*model.Merchant, error) {
	return nil, model.ErrMerchantNotFound
}

func (r *fakeRepository) ListActive(context.Context, int, int) ([]model.MerchantListItem, error) {
	return nil, nil
}

func (r *fakeRepository) ListSlugLocations(context.Context) ([]model.SlugLocation, error) {
	return nil, nil
}

func newPipeline() (*fakeRepository, *fakeBlobStore, *fakeDownloader, BatchImportServiceInterface) {
	repo := &fakeRepository{}
	blob := newFakeBlobStore()
	dl := &fakeDownloader{}
	return repo, blob, dl, NewBatchImportService(repo, blob, dl)
}

// ========================================
// MANIFEST VALIDATION
// ========================================

func TestImportManifest_RejectsInvalidManifest(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"whitespace body", "   \n"},
		{"not JSON", "not a manifest"},
		{"no items key", `{}`},
		{"items not an array", `{"items": {"name": "Alice"}}`},
		{"empty items", `{"items": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, blob, dl, svc := newPipeline()

			result, err := svc.ImportManifest(context.Background(), []byte(tc.body))

			require.ErrorIs(t, err, model.ErrInvalidManifest)
			assert.Nil(t, result)
			assert.Empty(t, repo.records, "rejection must not reach the database")
			assert.Empty(t, blob.objects, "rejection must not reach storage")
			assert.Empty(t, dl.calls, "rejection must not trigger downloads")
		})
	}
}

// ========================================
// SLUG RESOLUTION
// ========================================

func TestImportManifest_PlaceholderSlugUsesZeroBasedIndex(t *testing.T) {
	repo, _, _, svc := newPipeline()

	body := `{"items": [{"phone": "111"}, {"name": "Jane Doe"}, {"phone": "222"}]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))

	require.NoError(t, err)
	require.Len(t, result.Results, 3)
	assert.Equal(t, "merchant-0", result.Results[0].Slug)
	assert.Equal(t, "jane-doe", result.Results[1].Slug)
	assert.Equal(t, "merchant-2", result.Results[2].Slug)

	require.Len(t, repo.records, 3)
	assert.Equal(t, "merchant-0", repo.records[0]["slug"])
	assert.Equal(t, "jane-doe", repo.records[1]["slug"])
}

func TestImportManifest_ExplicitSlugWins(t *testing.T) {
	_, _, _, svc := newPipeline()

	body := `{"items": [{"slug": "custom-slug", "name": "Jane Doe"}]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))

	require.NoError(t, err)
	assert.Equal(t, "custom-slug", result.Results[0].Slug)
}

// ========================================
// RECORD MAPPING THROUGH THE PIPELINE
// ========================================

func TestImportManifest_MissingPhoneDeactivatesMerchant(t *testing.T) {
	repo, _, _, svc := newPipeline()

	body := `{"items": [{"name": "Alice", "phone": "555-1234"}, {"name": "Bob"}]}`
	_, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)
	require.Len(t, repo.records, 2)

	withPhone := repo.records[0]
	assert.Equal(t, "555-1234", withPhone["phone"])
	assert.NotContains(t, withPhone, "active")

	withoutPhone := repo.records[1]
	assert.NotContains(t, withoutPhone, "phone")
	assert.Equal(t, false, withoutPhone["active"])
}

func TestImportManifest_SparseRecordOmitsAbsentFields(t *testing.T) {
	repo, _, _, svc := newPipeline()

	body := `{"items": [{"name": "Alice", "phone": "1", "location": null, "rates": false, "socialMedia": {}}]}`
	_, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)
	require.Len(t, repo.records, 1)

	record := repo.records[0]
	assert.NotContains(t, record, "location", "null blob must not be written")
	assert.NotContains(t, record, "rates", "false blob must not be written")
	assert.Contains(t, record, "socialmedia", "empty object is present under JS truthiness")
	assert.NotContains(t, record, "description")
	assert.NotContains(t, record, "images")
}

// ========================================
// ASSET MIGRATION
// ========================================

func TestImportManifest_AssetPathsAndPublicURLs(t *testing.T) {
	repo, blob, dl, svc := newPipeline()

	body := `{"items": [{
		"name": "Alice",
		"phone": "1",
		"images": ["https://old.example.com/a/one.png?token=abc", "https://old.example.com/b/two"],
		"thumbnails": ["https://old.example.com/t/small.webp"],
		"mainImage": "https://old.example.com/m/portrait.jpeg",
		"videoUrl": "https://old.example.com/v/intro.mp4?sig=xyz"
	}]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"public/alice/images/image-1.png",
		"public/alice/images/image-2.jpg",
		"public/alice/thumbnails/thumbnail-1.webp",
		"public/alice/main-image/portrait.jpeg",
		"public/alice/video/intro.mp4",
	}, blob.keys)
	assert.Len(t, dl.calls, 5)

	res := result.Results[0]
	require.Len(t, res.Uploads, 5)
	for _, up := range res.Uploads {
		assert.Empty(t, up.Error)
	}
	assert.Empty(t, res.Errors)
	assert.Equal(t, model.DBStatusOK, res.DatabaseStatus)

	record := repo.records[0]
	assert.Equal(t, []string{
		"https://cdn.test/object/public/merchants/public/alice/images/image-1.png",
		"https://cdn.test/object/public/merchants/public/alice/images/image-2.jpg",
	}, record["images"])
	assert.Equal(t, "https://cdn.test/object/public/merchants/public/alice/main-image/portrait.jpeg", record["mainimage"])
	assert.Equal(t, "https://cdn.test/object/public/merchants/public/alice/video/intro.mp4", record["videourl"])
}

func TestImportManifest_RerunOverwritesSamePaths(t *testing.T) {
	_, blob, _, svc := newPipeline()

	body := `{"items": [{"name": "Alice", "phone": "1", "images": ["https://old.example.com/a.png", "https://old.example.com/b.png"]}]}`

	_, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)
	firstRun := append([]string(nil), blob.keys...)

	_, err = svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	assert.Equal(t, firstRun, blob.keys[len(firstRun):], "second run must target the same keys")
	assert.Len(t, blob.objects, 2, "re-run overwrites, never accumulates objects")
}

func TestImportManifest_DownloadFailureRecordedAndUpsertProceeds(t *testing.T) {
	repo, blob, dl, svc := newPipeline()
	dl.failures = map[string]error{
		"https://old.example.com/b.png": errors.New("HTTP 404: 404 Not Found"),
	}

	body := `{"items": [{"name": "Alice", "phone": "1", "images": ["https://old.example.com/a.png", "https://old.example.com/b.png"]}]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	res := result.Results[0]
	require.Len(t, res.Uploads, 2)
	assert.Empty(t, res.Uploads[0].Error)
	assert.Contains(t, res.Uploads[1].Error, "HTTP 404")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Download/upload failed for images/image-2.png")

	assert.Equal(t, model.DBStatusOK, res.DatabaseStatus)
	require.Len(t, repo.records, 1)
	assert.Equal(t, []string{
		"https://cdn.test/object/public/merchants/public/alice/images/image-1.png",
	}, repo.records[0]["images"], "only the migrated URL is persisted")

	assert.NotContains(t, blob.objects, "public/alice/images/image-2.png")
}

func TestImportManifest_StorageFailureRecorded(t *testing.T) {
	repo, blob, _, svc := newPipeline()
	blob.failures = map[string]error{
		"public/alice/main-image/face.jpg": errors.New("bucket quota exceeded"),
	}

	body := `{"items": [{"name": "Alice", "phone": "1", "mainImage": "https://old.example.com/face.jpg"}]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	res := result.Results[0]
	require.Len(t, res.Uploads, 1)
	assert.Equal(t, "bucket quota exceeded", res.Uploads[0].Error)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Storage upload error for main-image/face.jpg")

	assert.Equal(t, model.DBStatusOK, res.DatabaseStatus)
	assert.NotContains(t, repo.records[0], "mainimage")
}

func TestImportManifest_EmptyAssetURLSkipped(t *testing.T) {
	_, blob, dl, svc := newPipeline()

	body := `{"items": [{"name": "Alice", "phone": "1", "images": [""], "mainImage": "", "videoUrl": ""}]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	assert.Empty(t, dl.calls)
	assert.Empty(t, blob.objects)
	assert.Empty(t, result.Results[0].Uploads)
}

// ========================================
// DATABASE OUTCOMES AND ISOLATION
// ========================================

func TestImportManifest_RepositoryErrorBecomesStatus(t *testing.T) {
	repo, _, _, svc := newPipeline()
	repo.err = errors.New(`duplicate key value violates unique constraint "merchants_pkey"`)

	body := `{"items": [{"name": "Alice", "phone": "1"}]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	res := result.Results[0]
	assert.Equal(t, repo.err.Error(), res.DatabaseStatus)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "DB upsert error:")
	assert.Equal(t, model.BatchStatusDone, result.Status)
}

func TestImportManifest_UpsertPanicIsolatedToItem(t *testing.T) {
	repo, _, _, svc := newPipeline()
	repo.panicOnSlug = "merchant-2"

	body := `{"items": [
		{"phone": "1"}, {"phone": "2"}, {"phone": "3"}, {"phone": "4"}, {"phone": "5"}
	]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	require.Len(t, result.Results, 5)
	for i, res := range result.Results {
		if i == 2 {
			assert.Equal(t, model.DBStatusException, res.DatabaseStatus)
			require.Len(t, res.Errors, 1)
			assert.Contains(t, res.Errors[0], "DB upsert exception: connection pool exhausted")
			continue
		}
		assert.Equal(t, model.DBStatusOK, res.DatabaseStatus, "item %d must be unaffected", i)
		assert.Empty(t, res.Errors)
	}

	assert.Len(t, repo.records, 4, "only the panicking item misses its write")
	assert.Equal(t, model.BatchStatusDone, result.Status)
}

// ========================================
// END TO END
// ========================================

func TestImportManifest_TwoItemResultShape(t *testing.T) {
	_, _, _, svc := newPipeline()

	body := `{"items": [
		{"name": "Alice", "phone": "1", "images": ["https://old.example.com/a.png"]},
		{"name": "Bob", "phone": "2"}
	]}`
	result, err := svc.ImportManifest(context.Background(), []byte(body))
	require.NoError(t, err)

	assert.Equal(t, model.BatchStatusDone, result.Status)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "alice", result.Results[0].Slug)
	assert.Equal(t, "bob", result.Results[1].Slug)
	assert.Equal(t, model.DBStatusOK, result.Results[1].DatabaseStatus)

	// The admin console reads these exact JSON keys.
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded struct {
		Status  string `json:"status"`
		Results []struct {
			Slug    string            `json:"slug"`
			Uploads []json.RawMessage `json:"uploads"`
			DB      string            `json:"db"`
			Errors  []string          `json:"errors"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "done", decoded.Status)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "alice", decoded.Results[0].Slug)
	assert.Equal(t, "ok", decoded.Results[1].DB)
	assert.NotNil(t, decoded.Results[1].Uploads)
	assert.NotNil(t, decoded.Results[1].Errors)
}

// ========================================
// FILENAME HELPERS
// ========================================

func TestFileExtension(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://x.test/a/photo.png", "png"},
		{"https://x.test/a/photo.png?token=abc&sz=2", "png"},
		{"https://x.test/a/archive.tar.gz", "gz"},
		{"https://x.test/a/noextension", "jpg"},
		{"https://x.test/a/trailingdot.", "jpg"},
		{"", "jpg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fileExtension(tc.url), "url %q", tc.url)
	}
}

func TestAssetBasename(t *testing.T) {
	cases := []struct {
		url      string
		fallback string
		want     string
	}{
		{"https://x.test/m/portrait.jpeg", "main-image.jpg", "portrait.jpeg"},
		{"https://x.test/v/intro.mp4?sig=s", "video.mp4", "intro.mp4"},
		{"", "video.mp4", "video.mp4"},
		{"/", "main-image.jpg", "main-image.jpg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, assetBasename(tc.url, tc.fallback), "url %q", tc.url)
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFor("image-1.png"))
	assert.Equal(t, "video/mp4", contentTypeFor("intro.mp4"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("blob"))
}
