// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/auxility/site/internal/seo"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	siteURL   string
	robots    string
	startTime time.Time
	logger    *slog.Logger
}

// NewSEOHandler creates an SEO handler. An empty siteURL disables the
// sitemap. Development builds disallow all crawlers.
func NewSEOHandler(siteURL string, isDev bool, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{
		siteURL:   siteURL,
		robots:    seo.Robots(seo.RobotsConfig{SiteURL: siteURL, DisallowAll: isDev}),
		startTime: time.Now(),
		logger:    logger,
	}
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(h.robots))
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, _ *http.Request) {
	if h.siteURL == "" {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	out, err := seo.BuildSitemap(h.siteURL, seo.SiteLanguages(), h.startTime)
	if err != nil {
		h.logger.Error("failed to build sitemap", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(out)
}
