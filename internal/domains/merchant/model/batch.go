package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"merchant-directory-backend/internal/shared/utils"
)

// ========================================
// MANIFEST (inbound payload)
// ========================================

// Manifest is the batch-import request payload: an ordered sequence of
// merchants to create or update.
type Manifest struct {
	Items []ManifestItem `json:"items"`
}

// ManifestItem describes one merchant. Everything is optional except
// that an item with neither slug nor name falls back to a positional
// placeholder identity. The structured blobs are opaque JSON relayed to
// storage unmodified.
type ManifestItem struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	About       string `json:"about"`
	Gender      string `json:"gender"`
	Sexuality   string `json:"sexuality"`
	Phone       string `json:"phone"`
	LastActive  string `json:"lastActive"`

	Services []string `json:"services"`

	Location            json.RawMessage `json:"location"`
	Rates               json.RawMessage `json:"rates"`
	Rating              json.RawMessage `json:"rating"`
	SocialMedia         json.RawMessage `json:"socialMedia"`
	ResolvedSocialLinks json.RawMessage `json:"resolvedSocialLinks"`

	Images     []string `json:"images"`
	Thumbnails []string `json:"thumbnails"`
	MainImage  string   `json:"mainImage"`
	VideoURL   string   `json:"videoUrl"`
}

// ParseManifest validates and decodes the raw request body. Any shape
// problem (missing body, not an object, items missing, not an array,
// or empty) is reported as ErrInvalidManifest before any side effect.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrInvalidManifest
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ErrInvalidManifest
	}

	if len(m.Items) == 0 {
		return nil, ErrInvalidManifest
	}

	return &m, nil
}

// ResolveSlug picks the identity for an item: explicit slug, then the
// slugified name, then a zero-based positional placeholder.
func (i ManifestItem) ResolveSlug(idx int) string {
	if i.Slug != "" {
		return i.Slug
	}
	if s := utils.GenerateSlug(i.Name); s != "" {
		return s
	}
	return fmt.Sprintf("merchant-%d", idx)
}

// rawPresent mirrors JS truthiness for the opaque blob fields: null,
// false, 0 and "" are absent, everything else (including {} and []) is
// present.
func rawPresent(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// ========================================
// BATCH RESULT (outbound contract)
// ========================================

// Batch-level status values.
const (
	BatchStatusDone  = "done"
	BatchStatusError = "error"
)

// Per-item database status values. A reported store error is recorded
// verbatim instead of these constants.
const (
	DBStatusOK           = "ok"
	DBStatusException    = "exception"
	DBStatusNotAttempted = "not-attempted"
)

// AssetUploadResult records one attempted asset transfer, success or
// failure.
type AssetUploadResult struct {
	AssetType string `json:"type"`
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	Error     string `json:"error,omitempty"`
}

// ItemResult is the per-manifest-item outcome. Errors accumulate and
// never halt processing of the item.
type ItemResult struct {
	Slug           string              `json:"slug"`
	Uploads        []AssetUploadResult `json:"uploads"`
	DatabaseStatus string              `json:"db"`
	Errors         []string            `json:"errors"`
}

// BatchResult is the only output contract the admin console observes.
type BatchResult struct {
	Status  string       `json:"status"`
	Results []ItemResult `json:"results"`
}
