package model

// DerivedAssetURLs carries the public URLs of migrated assets. The
// mapped record must reference these, never the manifest's original
// third-party URLs.
type DerivedAssetURLs struct {
	Images     []string
	Thumbnails []string
	MainImage  string
	VideoURL   string
}

// MapToRecord translates a manifest item into the sparse column set of
// the persisted merchant record.
//
// Only fields present on the input are copied; an absent field is never
// written as null or empty over existing data. The one exception is
// phone: a missing phone deactivates the merchant instead of leaving a
// stale number reachable.
func MapToRecord(item ManifestItem, slug string, assets DerivedAssetURLs) map[string]any {
	record := map[string]any{"slug": slug}

	if item.Name != "" {
		record["name"] = item.Name
	}
	if item.Description != "" {
		record["description"] = item.Description
	}
	if item.About != "" {
		record["about"] = item.About
	}
	if item.Phone != "" {
		record["phone"] = item.Phone
	} else {
		record["active"] = false
	}
	if item.Gender != "" {
		record["gender"] = item.Gender
	}
	if item.Sexuality != "" {
		record["sexuality"] = item.Sexuality
	}
	if rawPresent(item.Location) {
		record["location"] = item.Location
	}
	if item.LastActive != "" {
		record["last_active"] = item.LastActive
	}
	if rawPresent(item.Rating) {
		record["rating"] = item.Rating
	}
	if rawPresent(item.Rates) {
		record["rates"] = item.Rates
	}
	if len(item.Services) > 0 {
		record["services"] = item.Services
	}

	if len(assets.Images) > 0 {
		record["images"] = assets.Images
	}
	if len(assets.Thumbnails) > 0 {
		record["thumbnails"] = assets.Thumbnails
	}
	if assets.MainImage != "" {
		record["mainimage"] = assets.MainImage
	}
	if assets.VideoURL != "" {
		record["videourl"] = assets.VideoURL
	}

	if rawPresent(item.SocialMedia) {
		record["socialmedia"] = item.SocialMedia
	}
	if rawPresent(item.ResolvedSocialLinks) {
		record["resolvedsociallinks"] = item.ResolvedSocialLinks
	}

	return record
}
