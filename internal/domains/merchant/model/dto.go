package model

import "encoding/json"

// MerchantListItem is one card in the public directory grid.
type MerchantListItem struct {
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	MainImage *string         `json:"mainimage"`
	Location  json.RawMessage `json:"location"`
	Services  []string        `json:"services"`
	Active    bool            `json:"active"`
}

// MerchantListResponse is a page of the directory. NextPage is present
// only when a full page came back, signalling the client to fetch more.
type MerchantListResponse struct {
	Merchants []MerchantListItem `json:"merchants"`
	NextPage  *int               `json:"nextPage,omitempty"`
}
