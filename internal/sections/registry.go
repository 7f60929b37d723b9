// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sections

import (
	"strings"

	"github.com/auxility/site/internal/content"
)

// Section names used in routes.
const (
	NameHero         = "hero"
	NameStats        = "stats"
	NameServices     = "services"
	NameTestimonials = "testimonials"
	NameCases        = "cases"
	NameOfferings    = "offerings"
	NameWhyUs        = "whyus"
	NameContact      = "contact"
	NameSEO          = "seo"
)

var (
	Hero = Section{
		Name:       NameHero,
		Collection: content.CollectionHero,
		Filter:     content.Filter{"field": content.HeroField},
		Fields: []string{
			"badge_text", "title", "subtitle", "cta_primary_text", "cta_secondary_text",
			"stats_value_1", "stats_label_1", "stats_value_2", "stats_label_2", "stats_value_3", "stats_label_3",
		},
		Defaults: defaultHero,
	}
	Stats = Section{
		Name:       NameStats,
		Collection: content.CollectionStats,
		Fields:     []string{"value", "label"},
		Defaults:   defaultStats,
	}
	Services = Section{
		Name:       NameServices,
		Collection: content.CollectionServices,
		Fields:     []string{"title", "description", "feature_1", "feature_2", "feature_3", "feature_4"},
		Defaults:   defaultServices,
	}
	Testimonials = Section{
		Name:       NameTestimonials,
		Collection: content.CollectionTestimonials,
		Fields:     []string{"quote", "author", "role", "company"},
		ActiveOnly: true,
		Defaults:   defaultTestimonials,
	}
	Cases = Section{
		Name:       NameCases,
		Collection: content.CollectionCases,
		Fields:     []string{"title", "category", "description", "body", "tag_1", "tag_2", "tag_3", "tag_4"},
		Defaults:   defaultCases,
	}
	Offerings = Section{
		Name:       NameOfferings,
		Collection: content.CollectionOfferings,
		Fields:     []string{"title", "description"},
		Defaults:   defaultOfferings,
	}
	WhyUs = Section{
		Name:       NameWhyUs,
		Collection: content.CollectionWhyUs,
		Fields:     []string{"title", "description"},
		Defaults:   defaultWhyUs,
	}
	Contact = Section{
		Name:       NameContact,
		Collection: content.CollectionContact,
		Fields:     []string{"value"},
		Defaults:   defaultContact,
	}
	SEO = Section{
		Name:       NameSEO,
		Collection: content.CollectionSEO,
		Fields:     []string{"value"},
		Defaults:   defaultSEO,
	}
)

// All lists every section in page order.
func All() []Section {
	return []Section{Hero, Stats, Services, Testimonials, Cases, Offerings, WhyUs, Contact, SEO}
}

// Lookup finds a section by route name or collection name, ignoring case.
func Lookup(name string) (Section, bool) {
	name = strings.TrimSpace(name)
	for _, s := range All() {
		if strings.EqualFold(s.Name, name) || strings.EqualFold(s.Collection, name) {
			return s, true
		}
	}
	return Section{}, false
}
