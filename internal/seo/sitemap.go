// Package seo builds crawler-facing documents for the localized landing
// page: robots.txt and a sitemap with hreflang alternates.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/auxility/site/internal/i18n"
)

// Sitemap XML namespaces.
const (
	XMLNamespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
)

// xDefault is the hreflang value for the language-neutral URL.
const xDefault = "x-default"

// Alternate links one language variant of a URL.
type Alternate struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Alternates []Alternate `xml:"xhtml:link"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr"`
	URLs       []SitemapURL `xml:"url"`
}

// LanguageURL returns the landing page URL for lang. The default language
// uses the bare site URL.
func LanguageURL(siteURL string, lang i18n.Language) string {
	base := strings.TrimSuffix(siteURL, "/") + "/"
	if lang == i18n.DefaultLanguage {
		return base
	}
	return base + "?" + url.Values{"lang": {string(lang)}}.Encode()
}

// BuildSitemap generates a sitemap with one entry per language. Every entry
// lists all language variants and the x-default URL. A zero lastMod is
// omitted.
func BuildSitemap(siteURL string, langs []i18n.Language, lastMod time.Time) ([]byte, error) {
	alternates := make([]Alternate, 0, len(langs)+1)
	for _, lang := range langs {
		alternates = append(alternates, Alternate{Rel: "alternate", HrefLang: string(lang), Href: LanguageURL(siteURL, lang)})
	}
	alternates = append(alternates, Alternate{Rel: "alternate", HrefLang: xDefault, Href: LanguageURL(siteURL, i18n.DefaultLanguage)})

	sitemap := Sitemap{XMLNS: XMLNamespace, XMLNSXHTML: XHTMLNamespace}
	for _, lang := range langs {
		u := SitemapURL{
			Loc:        LanguageURL(siteURL, lang),
			ChangeFreq: "weekly",
			Priority:   "1.0",
			Alternates: alternates,
		}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.UTC().Format(time.RFC3339)
		}
		sitemap.URLs = append(sitemap.URLs, u)
	}

	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}

// SiteLanguages returns the supported languages with the default first.
func SiteLanguages() []i18n.Language {
	langs := []i18n.Language{i18n.DefaultLanguage}
	for _, opt := range i18n.Languages() {
		if opt.Code != i18n.DefaultLanguage {
			langs = append(langs, opt.Code)
		}
	}
	return langs
}
