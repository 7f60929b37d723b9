// Package i18n provides the site's language model: the closed set of
// supported languages, localized-field picking and the per-visitor
// language state.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the languages the site is published in.
type Language string

// Supported languages.
const (
	English Language = "en"
	Russian Language = "ru"
	Kazakh  Language = "kk"
)

// DefaultLanguage is used whenever no valid language has been chosen.
const DefaultLanguage = English

// StorageKey names the persisted language value (cookie name, storage key).
const StorageKey = "auxility_language"

// Option describes a language as offered by the language switcher.
type Option struct {
	Code  Language `json:"code"`
	Label string   `json:"label"`
}

// switcherOrder is the order the switcher shows languages in.
var switcherOrder = []Option{
	{Code: Russian, Label: "Рус"},
	{Code: Kazakh, Label: "Қаз"},
	{Code: English, Label: "Eng"},
}

var (
	supportedTags = []language.Tag{language.English, language.Russian, language.Kazakh}
	matcher       = language.NewMatcher(supportedTags)
)

// Languages returns the supported languages in switcher order.
func Languages() []Option {
	out := make([]Option, len(switcherOrder))
	copy(out, switcherOrder)
	return out
}

// IsLanguage reports whether s is exactly one of the supported language codes.
func IsLanguage(s string) bool {
	switch Language(s) {
	case English, Russian, Kazakh:
		return true
	}
	return false
}

// ParseLanguage parses a language code, accepting surrounding whitespace and
// any letter case. The second result is false for unsupported codes.
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !IsLanguage(s) {
		return DefaultLanguage, false
	}
	return Language(s), true
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// MatchLanguage finds the best supported language for an Accept-Language
// header or a single language tag. Unknown input yields DefaultLanguage.
func MatchLanguage(acceptLang string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLanguage
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supportedTags) {
		return DefaultLanguage
	}

	base, _ := supportedTags[idx].Base()
	return Language(base.String())
}

// PickLocalized resolves a localized field from a row.
//
// Rows carry a base field (title) and optional language variants (title_ru,
// title_kk). A present variant for lang is the value; the base field is only
// consulted when the variant column is absent. An empty result yields
// fallback, so an empty title_ru does not fall through to title.
func PickLocalized(row map[string]string, base string, lang Language, fallback string) string {
	if row == nil {
		return fallback
	}
	v, ok := row[base+"_"+string(lang)]
	if !ok {
		v = row[base]
	}
	if v == "" {
		return fallback
	}
	return v
}
