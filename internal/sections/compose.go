// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sections turns remote collections into the page sections of the
// site. Every section composes the same way: remote rows or compiled-in
// defaults, a stable sort by order, an optional active filter, and
// per-field localization.
package sections

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/i18n"
	"github.com/auxility/site/internal/util"
)

// Section describes one page section backed by a remote collection.
type Section struct {
	Name       string         // route name, lower case
	Collection string         // remote collection name
	Filter     content.Filter // narrows singleton collections such as Hero
	Fields     []string       // localizable base field names
	ActiveOnly bool           // drop rows whose active flag is not set
	Defaults   []content.Row
}

// Params returns the fetch parameters for the section.
func (s Section) Params() content.Params {
	return content.Params{Collection: s.Collection, Filter: s.Filter.Clone()}
}

// Compose runs the section pipeline over rows fetched for it.
func (s Section) Compose(rows []content.Row, lang i18n.Language) []content.Row {
	out := SortByOrder(WithDefaults(rows, s.Defaults))
	if s.ActiveOnly {
		out = FilterActive(out)
	}
	out = ensureIDs(out)
	for i, row := range out {
		out[i] = Localize(row, lang, s.Fields)
	}
	return out
}

// WithDefaults returns rows when there are any, otherwise a copy of defaults.
func WithDefaults(rows, defaults []content.Row) []content.Row {
	src := rows
	if len(src) == 0 {
		src = defaults
	}
	out := make([]content.Row, len(src))
	for i, r := range src {
		out[i] = r.Clone()
	}
	return out
}

// SortByOrder sorts rows ascending by their integer order and keeps the
// relative position of ties. Rows without an order field go after the
// ordered ones, in their original order. A present but non-numeric order
// counts as 0 and so sorts with the ordered rows, ahead of rows without one.
func SortByOrder(rows []content.Row) []content.Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b content.Row) int {
		ah, bh := a.HasOrder(), b.HasOrder()
		switch {
		case ah && !bh:
			return -1
		case !ah && bh:
			return 1
		case !ah:
			return 0
		}
		return cmp.Compare(a.Order(), b.Order())
	})
	return out
}

// FilterActive keeps rows whose active field is TRUE, true or 1.
func FilterActive(rows []content.Row) []content.Row {
	out := make([]content.Row, 0, len(rows))
	for _, r := range rows {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}

// Localize returns a copy of row where each of fields holds its text for
// lang. A field with no text for lang keeps the row's own base value.
func Localize(row content.Row, lang i18n.Language, fields []string) content.Row {
	out := row.Clone()
	for _, f := range fields {
		out[f] = i18n.PickLocalized(row, f, lang, row[f])
	}
	return out
}

// ensureIDs fills missing ids from the base title, author or name.
// Duplicate slugs get a numeric suffix.
func ensureIDs(rows []content.Row) []content.Row {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if id := r.Get("id"); id != "" {
			seen[id] = true
		}
	}

	for i, r := range rows {
		if r.Get("id") != "" {
			continue
		}
		base := util.Slugify(firstNonBlank(r["title"], r["author"], r["name"], r["field"], r["label"]))
		if base == "" {
			base = "item"
		}
		id := base
		for n := 2; seen[id]; n++ {
			id = base + "-" + strconv.Itoa(n)
		}
		seen[id] = true
		r["id"] = id
		rows[i] = r
	}
	return rows
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
