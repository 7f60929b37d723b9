// Package copytext resolves UI copy: a compiled-in default table per
// language, overridden row by row from the remote Copy collection.
package copytext

import (
	"embed"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/auxility/site/internal/i18n"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

// Defaults maps a copy key to its text per language.
type Defaults map[string]map[i18n.Language]string

// LoadDefaults reads the embedded message files.
func LoadDefaults() (Defaults, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	defaults := make(Defaults)
	for _, opt := range i18n.Languages() {
		file := fmt.Sprintf("locales/active.%s.toml", opt.Code)
		mf, err := bundle.LoadMessageFileFS(localeFS, file)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
		for _, msg := range mf.Messages {
			texts, ok := defaults[msg.ID]
			if !ok {
				texts = make(map[i18n.Language]string, 3)
				defaults[msg.ID] = texts
			}
			texts[opt.Code] = msg.Other
		}
	}
	return defaults, nil
}

// MustLoadDefaults is like LoadDefaults but panics on error. The files are
// embedded, so a failure is a build defect.
func MustLoadDefaults() Defaults {
	d, err := LoadDefaults()
	if err != nil {
		panic(err)
	}
	return d
}
