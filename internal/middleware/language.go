// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the site API: the
// language provider, security headers, CORS, cross-origin protection,
// request timeouts and rate limiting.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/auxility/site/internal/i18n"
)

// SuggestedLanguageHeader carries the best Accept-Language match. It is
// informational only and never changes the visitor's language.
const SuggestedLanguageHeader = "X-Auxility-Suggested-Language"

// languageCookieMaxAge keeps the language choice for one year.
const languageCookieMaxAge = 365 * 24 * 60 * 60

// CookieStore persists the visitor language in the auxility_language cookie.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

// NewCookieStore returns a store reading from r and writing to w.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r, secure: r.TLS != nil}
}

// Load returns the cookie value, or "" when the cookie is absent.
func (s *CookieStore) Load(_ context.Context) (string, error) {
	cookie, err := s.r.Cookie(i18n.StorageKey)
	if errors.Is(err, http.ErrNoCookie) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// Save sets the cookie on the response.
func (s *CookieStore) Save(_ context.Context, value string) error {
	SetLanguageCookie(s.w, value, s.secure)
	return nil
}

// Language provides a per-request i18n.State. The language comes from an
// explicit ?lang= switch, which is persisted, then the cookie, then
// i18n.DefaultLanguage.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state := i18n.NewState(ctx, NewCookieStore(w, r))

		if q := r.URL.Query().Get("lang"); q != "" {
			if lang, ok := i18n.ParseLanguage(q); ok {
				_ = state.SetLanguage(ctx, lang)
			}
		}

		if accept := r.Header.Get("Accept-Language"); accept != "" {
			w.Header().Set(SuggestedLanguageHeader, i18n.MatchLanguage(accept).String())
		}
		w.Header().Set("Content-Language", state.Language().String())
		w.Header().Add("Vary", "Cookie")

		next.ServeHTTP(w, r.WithContext(i18n.WithState(ctx, state)))
	})
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.StorageKey,
		Value:    value,
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
