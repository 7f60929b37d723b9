// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content fetches named collections of rows from the remote
// spreadsheet-backed content API and tracks their loading state.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Row is one record of a collection: a flat mapping of field name to value.
//
// Localized fields follow a suffix convention: a base field ("title") holds
// the fallback text and "title_ru", "title_kk" hold per-language variants.
type Row map[string]string

// Clone returns a shallow copy of r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Get returns the trimmed value of field.
func (r Row) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Order returns the integer value of the "order" field, read from its
// leading digits ("2.5" and "2nd" are both 2). Missing or non-numeric
// values order as 0.
func (r Row) Order() int {
	s := strings.TrimSpace(r["order"])
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// HasOrder reports whether the row carries a non-blank "order" field.
func (r Row) HasOrder() bool {
	return r.Get("order") != ""
}

// Active reports whether the "active" field holds a truthy flag.
func (r Row) Active() bool {
	switch strings.TrimSpace(r["active"]) {
	case "TRUE", "true", "1":
		return true
	}
	return false
}

// UnmarshalJSON decodes a JSON object into a Row. Scalars are kept as their
// textual form, nulls are dropped and nested values are stored as compact JSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*r = nil
		return nil
	}

	row, err := rowFromMap(raw)
	if err != nil {
		return err
	}
	*r = row
	return nil
}

func rowFromMap(raw map[string]any) (Row, error) {
	row := make(Row, len(raw))
	for k, v := range raw {
		s, ok, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		if ok {
			row[k] = s
		}
	}
	return row, nil
}

// scalarString renders a decoded JSON value as a field value.
// The boolean result is false for null.
func scalarString(v any) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return val, true, nil
	case json.Number:
		return val.String(), true, nil
	case bool:
		if val {
			return "TRUE", true, nil
		}
		return "FALSE", true, nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false, err
		}
		return string(b), true, nil
	}
}

// Filter is a flat set of field=value constraints sent as query parameters.
type Filter map[string]string

// Key returns a canonical encoding of f. Two filters with the same
// entries produce the same key regardless of map identity.
func (f Filter) Key() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(f[k]))
	}
	return b.String()
}

// Clone returns a copy of f.
func (f Filter) Clone() Filter {
	if f == nil {
		return nil
	}
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
