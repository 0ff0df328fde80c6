package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"merchant-directory-backend/internal/domains/merchant/model"
	"merchant-directory-backend/pkg/cache"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const merchantCacheTTL = 5 * time.Minute

// merchantColumns is the writable column whitelist, in a fixed order so
// generated SQL stays deterministic. Unknown keys in a record are
// silently dropped.
var merchantColumns = []string{
	"name",
	"description",
	"about",
	"phone",
	"active",
	"gender",
	"sexuality",
	"location",
	"last_active",
	"rating",
	"rates",
	"services",
	"images",
	"thumbnails",
	"mainimage",
	"videourl",
	"socialmedia",
	"resolvedsociallinks",
}

// jsonbColumns need an explicit cast because their values arrive as raw
// JSON bytes.
var jsonbColumns = map[string]bool{
	"location":            true,
	"rating":              true,
	"rates":               true,
	"socialmedia":         true,
	"resolvedsociallinks": true,
}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

func merchantCacheKey(slug string) string {
	return fmt.Sprintf("merchant:%s", slug)
}

// Upsert builds INSERT ... ON CONFLICT (slug) DO UPDATE SET for exactly
// the columns present in record. Partial manifests therefore update
// only the fields they carry.
func (r *postgresRepository) Upsert(ctx context.Context, record map[string]any) error {
	slug, ok := record["slug"].(string)
	if !ok || slug == "" {
		return fmt.Errorf("upsert requires a non-empty slug")
	}

	cols := []string{"slug"}
	args := []any{slug}
	placeholders := []string{"$1"}

	for _, col := range merchantColumns {
		v, present := record[col]
		if !present {
			continue
		}

		if raw, isRaw := v.(json.RawMessage); isRaw {
			// Raw JSON goes over the wire as text with a jsonb cast
			v = string(raw)
		}

		cols = append(cols, col)
		args = append(args, v)

		ph := fmt.Sprintf("$%d", len(args))
		if jsonbColumns[col] {
			ph += "::jsonb"
		}
		placeholders = append(placeholders, ph)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO merchants (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if len(cols) == 1 {
		b.WriteString(" ON CONFLICT (slug) DO NOTHING")
	} else {
		updates := make([]string, 0, len(cols))
		for _, col := range cols[1:] {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
		updates = append(updates, "updated_at = NOW()")
		fmt.Fprintf(&b, " ON CONFLICT (slug) DO UPDATE SET %s", strings.Join(updates, ", "))
	}

	if _, err := r.pool.Exec(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("upsert merchant %s: %w", slug, err)
	}

	// Drop stale cache entries for this merchant and the listing pages
	_ = r.cache.Delete(ctx, merchantCacheKey(slug))
	_ = r.cache.DeletePattern(ctx, "merchants:page:*")

	return nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Merchant, error) {
	var m model.Merchant

	found, err := r.cache.Get(ctx, merchantCacheKey(slug), &m)
	if err == nil && found {
		return &m, nil
	}

	query := `
		SELECT
			slug, name, description, about, phone, active,
			gender, sexuality,
			COALESCE(services, '{}'),
			location, rates, rating, socialmedia, resolvedsociallinks,
			COALESCE(images, '{}'), COALESCE(thumbnails, '{}'),
			mainimage, videourl, last_active
		FROM merchants
		WHERE slug = $1
	`

	err = r.pool.QueryRow(ctx, query, slug).Scan(
		&m.Slug,
		&m.Name,
		&m.Description,
		&m.About,
		&m.Phone,
		&m.Active,
		&m.Gender,
		&m.Sexuality,
		&m.Services,
		&m.Location,
		&m.Rates,
		&m.Rating,
		&m.SocialMedia,
		&m.ResolvedSocialLinks,
		&m.Images,
		&m.Thumbnails,
		&m.MainImage,
		&m.VideoURL,
		&m.LastActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMerchantNotFound
		}
		return nil, fmt.Errorf("find merchant by slug: %w", err)
	}

	_ = r.cache.Set(ctx, merchantCacheKey(slug), &m, merchantCacheTTL)

	return &m, nil
}

func (r *postgresRepository) ListActive(ctx context.Context, page, pageSize int) ([]model.MerchantListItem, error) {
	cacheKey := fmt.Sprintf("merchants:page:%d:%d", page, pageSize)

	var cached []model.MerchantListItem
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	query := `
		SELECT
			slug, name, mainimage,
			COALESCE(location, '{}'::jsonb),
			COALESCE(services, '{}'),
			active
		FROM merchants
		WHERE active = true
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, pageSize, page*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	defer rows.Close()

	items := make([]model.MerchantListItem, 0, pageSize)
	for rows.Next() {
		var item model.MerchantListItem
		if err := rows.Scan(
			&item.Slug,
			&item.Name,
			&item.MainImage,
			&item.Location,
			&item.Services,
			&item.Active,
		); err != nil {
			return nil, fmt.Errorf("scan merchant row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, items, merchantCacheTTL)

	return items, nil
}

func (r *postgresRepository) ListSlugLocations(ctx context.Context) ([]model.SlugLocation, error) {
	query := `SELECT slug, COALESCE(location, '{}'::jsonb) FROM merchants`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slug locations: %w", err)
	}
	defer rows.Close()

	var entries []model.SlugLocation
	for rows.Next() {
		var e model.SlugLocation
		if err := rows.Scan(&e.Slug, &e.Location); err != nil {
			return nil, fmt.Errorf("scan slug location: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slug locations: %w", err)
	}

	return entries, nil
}
