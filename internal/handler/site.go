// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/auxility/site/internal/i18n"
	"github.com/auxility/site/internal/sections"
)

// SiteHandler serves localized site content: languages, copy, sections and
// the assembled home page.
type SiteHandler struct {
	site   *sections.Site
	logger *slog.Logger
}

// NewSiteHandler creates a handler over site.
func NewSiteHandler(site *sections.Site, logger *slog.Logger) *SiteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SiteHandler{site: site, logger: logger}
}

// requestLanguage returns the language set by the language provider. Outside
// the provider it answers 500 and reports false.
func requestLanguage(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (i18n.Language, bool) {
	lang, err := i18n.LanguageFromContext(r.Context())
	if err != nil {
		logger.Error("language provider missing", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return "", false
	}
	return lang, true
}

// Languages handles GET /api/languages.
func (h *SiteHandler) Languages(w http.ResponseWriter, r *http.Request) {
	lang, ok := requestLanguage(w, r, h.logger)
	if !ok {
		return
	}
	writeJSONSuccess(w, map[string]any{
		"languages": i18n.Languages(),
		"current":   lang,
		"default":   i18n.DefaultLanguage,
	})
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

// SetLanguage handles POST /api/language. The choice is kept for the rest
// of the request and persisted in the language cookie.
func (h *SiteHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req setLanguageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	lang, ok := i18n.ParseLanguage(req.Language)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "unsupported language: "+req.Language)
		return
	}

	state, err := i18n.FromContext(r.Context())
	if err != nil {
		h.logger.Error("language provider missing", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if res := state.SetLanguage(r.Context(), lang); !res.OK() {
		// The in-memory switch stands even when the cookie could not be set.
		h.logger.Warn("failed to persist language", "language", lang, "error", res.Err)
	}
	w.Header().Set("Content-Language", lang.String())
	writeJSONSuccess(w, map[string]any{"language": lang})
}

// Copy handles GET /api/copy.
func (h *SiteHandler) Copy(w http.ResponseWriter, r *http.Request) {
	lang, ok := requestLanguage(w, r, h.logger)
	if !ok {
		return
	}
	writeJSONSuccess(w, map[string]any{
		"language": lang,
		"copy":     h.site.Copy().Table(lang).Map(),
	})
}

// Section handles GET /api/sections/{section}.
func (h *SiteHandler) Section(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	sec, ok := sections.Lookup(name)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "section not found: "+name)
		return
	}

	lang, ok := requestLanguage(w, r, h.logger)
	if !ok {
		return
	}
	writeJSONSuccess(w, map[string]any{
		"section":  sec.Name,
		"language": lang,
		"data":     h.site.Section(sec, lang),
	})
}

// Page handles GET /api/page.
func (h *SiteHandler) Page(w http.ResponseWriter, r *http.Request) {
	lang, ok := requestLanguage(w, r, h.logger)
	if !ok {
		return
	}
	writeJSONSuccess(w, map[string]any{
		"page":    h.site.Page(lang),
		"loading": h.site.Loading(),
	})
}

// Status handles GET /api/status.
func (h *SiteHandler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"collections": h.site.Status(),
		"loading":     h.site.Loading(),
	})
}
