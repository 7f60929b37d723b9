package copytext

import (
	"strings"

	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/i18n"
)

// Table is the resolved copy for one language.
type Table struct {
	lang    i18n.Language
	entries map[string]string
}

// Build layers remote Copy rows over defaults for lang.
//
// Every default key starts at its lang text, else its English text. Each
// remote row with a non-blank key then overrides that key with the first
// non-blank of its lang column, its en column and its legacy value column.
// Build is pure: equal inputs give equal tables.
func Build(lang i18n.Language, defaults Defaults, rows []content.Row) Table {
	entries := make(map[string]string, len(defaults)+len(rows))

	for key, texts := range defaults {
		v := texts[lang]
		if v == "" {
			v = texts[i18n.English]
		}
		entries[key] = v
	}

	for _, row := range rows {
		key := strings.TrimSpace(row["key"])
		if key == "" {
			continue
		}
		if v := firstNonBlank(row[string(lang)], row[string(i18n.English)], row["value"]); v != "" {
			entries[key] = v
		}
	}

	return Table{lang: lang, entries: entries}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Get returns the text for key, or key itself when the table has no entry.
func (t Table) Get(key string) string {
	if v, ok := t.entries[key]; ok {
		return v
	}
	return key
}

// Lookup returns the text for key and whether the table has it.
func (t Table) Lookup(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Language returns the language the table was built for.
func (t Table) Language() i18n.Language {
	return t.lang
}

// Len returns the number of keys.
func (t Table) Len() int {
	return len(t.entries)
}

// Map returns a copy of the table.
func (t Table) Map() map[string]string {
	out := make(map[string]string, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
