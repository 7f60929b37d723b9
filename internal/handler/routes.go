// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/auxility/site/internal/middleware"
)

// Route paths.
const (
	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
	RouteRobots      = "/robots.txt"
	RouteSitemap     = "/sitemap.xml"

	RouteLanguages   = "/languages"
	RouteLanguage    = "/language"
	RouteCopy        = "/copy"
	RouteSection     = "/sections/{section}"
	RoutePage        = "/page"
	RouteStatus      = "/status"
	RouteContact     = "/contact"
	RouteDiagnostics = "/diagnostics"
	RouteEvents      = "/diagnostics/events"
)

// contentMaxAge is how long clients may cache content responses, in seconds.
const contentMaxAge = 60

// RouterConfig wires handlers and HTTP policy into a router.
type RouterConfig struct {
	Health      *HealthHandler
	Site        *SiteHandler
	Contact     *ContactHandler
	Diagnostics *DiagnosticsHandler // nil disables the diagnostics routes
	SEO         *SEOHandler         // nil disables robots.txt and sitemap.xml

	IsDevelopment  bool
	AllowedOrigins []string
	RequestTimeout time.Duration
	ContactLimiter *middleware.RateLimiter // nil disables the contact limit
	RequestLogger  bool
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

// NewRouter builds the HTTP routes of the site API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	if cfg.RequestLogger {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RedirectSlashes)
	r.Use(chimw.Compress(5, "application/json"))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))

	r.Get(RouteHealth, cfg.Health.Health)
	r.Get(RouteHealthLive, cfg.Health.Liveness)
	r.Get(RouteHealthReady, cfg.Health.Readiness)
	if cfg.SEO != nil {
		r.Get(RouteRobots, cfg.SEO.Robots)
		r.Get(RouteSitemap, cfg.SEO.Sitemap)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Use(middleware.CORS(cfg.AllowedOrigins))
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.AllowedOrigins, cfg.IsDevelopment)))
		r.Use(middleware.Language)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(contentMaxAge))
			r.Get(RouteLanguages, cfg.Site.Languages)
			r.Get(RouteCopy, cfg.Site.Copy)
			r.Get(RouteSection, cfg.Site.Section)
			r.Get(RoutePage, cfg.Site.Page)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Get(RouteStatus, cfg.Site.Status)
			r.Post(RouteLanguage, cfg.Site.SetLanguage)

			contactRoute := r.With()
			if cfg.ContactLimiter != nil {
				contactRoute = r.With(cfg.ContactLimiter.Middleware)
			}
			contactRoute.Post(RouteContact, cfg.Contact.Submit)

			if cfg.Diagnostics != nil {
				r.Get(RouteDiagnostics, cfg.Diagnostics.Check)
				r.Get(RouteEvents, cfg.Diagnostics.Events)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
