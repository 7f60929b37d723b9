// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contact validates contact form submissions, stores them in the
// outbox and forwards them to the content endpoint.
package contact

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/auxility/site/internal/i18n"
)

// Copy keys for validation messages.
const (
	ErrKeyRequired = "contact_error_required"
	ErrKeyEmail    = "contact_error_email"
	ErrKeyFailed   = "contact_error_failed"
)

// Field length limits, in runes.
const (
	MaxNameLen    = 200
	MaxEmailLen   = 254
	MaxCompanyLen = 200
	MaxMessageLen = 5000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// stripPolicy removes all markup from submitted text. Its output is
// HTML-escaped and is unescaped again, since submissions are stored as
// plain text.
var stripPolicy = bluemonday.StrictPolicy()

// Form is a contact form submission.
type Form struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Company  string        `json:"company,omitempty"`
	Message  string        `json:"message"`
	Language i18n.Language `json:"language,omitempty"`
}

// ValidationErrors maps a form field to the copy key of its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "invalid contact form: " + strings.Join(parts, ", ")
}

// Clean returns the form with markup stripped, whitespace trimmed, long
// fields truncated and an unsupported language replaced by the default.
func (f Form) Clean() Form {
	lang, ok := i18n.ParseLanguage(string(f.Language))
	if !ok {
		lang = i18n.DefaultLanguage
	}
	return Form{
		Name:     clean(f.Name, MaxNameLen),
		Email:    clean(f.Email, MaxEmailLen),
		Company:  clean(f.Company, MaxCompanyLen),
		Message:  clean(f.Message, MaxMessageLen),
		Language: lang,
	}
}

func clean(s string, limit int) string {
	s = strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
	if r := []rune(s); len(r) > limit {
		s = strings.TrimSpace(string(r[:limit]))
	}
	return s
}

// Validate checks that name, email and message are present and that the
// email looks like an address. It returns nil for a valid form.
func (f Form) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = ErrKeyRequired
	}
	if strings.TrimSpace(f.Message) == "" {
		errs["message"] = ErrKeyRequired
	}
	switch email := strings.TrimSpace(f.Email); {
	case email == "":
		errs["email"] = ErrKeyRequired
	case !emailPattern.MatchString(email):
		errs["email"] = ErrKeyEmail
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
