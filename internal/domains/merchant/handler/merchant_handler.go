package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"merchant-directory-backend/internal/domains/merchant/model"
	"merchant-directory-backend/internal/domains/merchant/service"
	"merchant-directory-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type MerchantHandler struct {
	service     service.ServiceInterface
	siteBaseURL string
}

func NewMerchantHandler(svc service.ServiceInterface, siteBaseURL string) *MerchantHandler {
	return &MerchantHandler{
		service:     svc,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
	}
}

// ListMerchants - GET /api/v1/public/merchants?page=N
// Feeds the infinite-scroll grid: {merchants, nextPage?}.
func (h *MerchantHandler) ListMerchants(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	resp, err := h.service.ListActive(c.Request.Context(), page)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Failed to list merchants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMerchant - GET /api/v1/public/merchants/:slug
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	slug := c.Param("slug")

	m, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, model.ErrMerchantNotFound) {
			response.NotFound(c, "merchant not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to fetch merchant")
		response.InternalServerError(c, "failed to fetch merchant")
		return
	}

	response.Success(c, http.StatusOK, m)
}

// staticRoutes always present in the sitemap.
var staticRoutes = []string{"", "admin", "auth", "user-type-dashboard"}

// Sitemap - GET /sitemap.xml
// Detail pages live at /{city}/{area}/{slug}.
func (h *MerchantHandler) Sitemap(c *gin.Context) {
	entries, err := h.service.SitemapEntries(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build sitemap")
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}

	urls := make([]string, 0, len(staticRoutes)+len(entries))
	for _, route := range staticRoutes {
		urls = append(urls, fmt.Sprintf("%s/%s", h.siteBaseURL, route))
	}
	for _, e := range entries {
		city, area := e.CityArea()
		urls = append(urls, fmt.Sprintf("%s/%s/%s/%s",
			h.siteBaseURL,
			url.PathEscape(city),
			url.PathEscape(area),
			e.Slug,
		))
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, u := range urls {
		fmt.Fprintf(&b, "  <url><loc>%s</loc></url>\n", u)
	}
	b.WriteString("</urlset>")

	c.Data(http.StatusOK, "application/xml", []byte(b.String()))
}

// Robots - GET /robots.txt
func (h *MerchantHandler) Robots(c *gin.Context) {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", h.siteBaseURL)
	c.Data(http.StatusOK, "text/plain", []byte(body))
}
