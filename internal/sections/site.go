// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sections

import (
	"log/slog"

	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/copytext"
	"github.com/auxility/site/internal/i18n"
)

// Page is everything the home page needs for one language.
type Page struct {
	Language     i18n.Language     `json:"language"`
	Copy         map[string]string `json:"copy"`
	Hero         HeroView          `json:"hero"`
	Stats        []StatView        `json:"stats"`
	Services     []ServiceView     `json:"services"`
	Testimonials []TestimonialView `json:"testimonials"`
	Cases        []CaseView        `json:"cases"`
	Offerings    []OfferingView    `json:"offerings"`
	WhyUs        []WhyUsView       `json:"why_us"`
	Contact      ContactInfo       `json:"contact"`
	SEO          SEOInfo           `json:"seo"`
}

// Status reports the fetch state of one collection.
type Status struct {
	Section       string `json:"section"`
	Collection    string `json:"collection"`
	Loading       bool   `json:"loading"`
	Error         string `json:"error,omitempty"`
	Rows          int    `json:"rows"`
	UsingDefaults bool   `json:"using_defaults"`
}

// Site watches every section collection plus the Copy collection.
type Site struct {
	copy     *copytext.Resolver
	sections []Section
	watchers map[string]*content.CollectionWatcher
	logger   *slog.Logger
}

// NewSite starts fetching every section from src.
func NewSite(src content.Source, defaults copytext.Defaults, logger *slog.Logger) *Site {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Site{
		copy:     copytext.NewResolver(src, defaults, logger),
		sections: All(),
		watchers: make(map[string]*content.CollectionWatcher),
		logger:   logger,
	}
	for _, sec := range s.sections {
		w := content.NewCollectionWatcher(src, logger.With("section", sec.Name))
		w.Update(sec.Params())
		s.watchers[sec.Name] = w
	}
	return s
}

// Copy returns the copy resolver.
func (s *Site) Copy() *copytext.Resolver {
	return s.copy
}

// Rows returns the composed rows of a section for lang.
func (s *Site) Rows(sec Section, lang i18n.Language) []content.Row {
	var rows []content.Row
	if w, ok := s.watchers[sec.Name]; ok {
		rows = w.State().Data
	}
	return sec.Compose(rows, lang)
}

// Hero returns the hero block for lang.
func (s *Site) Hero(lang i18n.Language) HeroView {
	return HeroFrom(s.Rows(Hero, lang))
}

// Stats returns the headline figures for lang.
func (s *Site) Stats(lang i18n.Language) []StatView {
	return StatsFrom(s.Rows(Stats, lang))
}

// Services returns the service cards for lang.
func (s *Site) Services(lang i18n.Language) []ServiceView {
	return ServicesFrom(s.Rows(Services, lang))
}

// Testimonials returns the active testimonials for lang.
func (s *Site) Testimonials(lang i18n.Language) []TestimonialView {
	return TestimonialsFrom(s.Rows(Testimonials, lang))
}

// Cases returns the case studies for lang.
func (s *Site) Cases(lang i18n.Language) []CaseView {
	return CasesFrom(s.Rows(Cases, lang))
}

// Offerings returns the offering cards for lang.
func (s *Site) Offerings(lang i18n.Language) []OfferingView {
	return CardsFrom(s.Rows(Offerings, lang))
}

// WhyUs returns the why-us reasons for lang.
func (s *Site) WhyUs(lang i18n.Language) []WhyUsView {
	return CardsFrom(s.Rows(WhyUs, lang))
}

// Contact returns the contact details for lang.
func (s *Site) Contact(lang i18n.Language) ContactInfo {
	return FieldsFrom(s.Rows(Contact, lang))
}

// SEO returns page metadata for lang, falling back to the copy table.
func (s *Site) SEO(lang i18n.Language) SEOInfo {
	table := s.copy.Table(lang)
	title, _ := table.Lookup("seo_index_title")
	desc, _ := table.Lookup("seo_index_description")
	return SEOFrom(s.Rows(SEO, lang), title, desc)
}

// Section returns the typed view of one section, for JSON encoding.
func (s *Site) Section(sec Section, lang i18n.Language) any {
	switch sec.Name {
	case NameHero:
		return s.Hero(lang)
	case NameStats:
		return s.Stats(lang)
	case NameServices:
		return s.Services(lang)
	case NameTestimonials:
		return s.Testimonials(lang)
	case NameCases:
		return s.Cases(lang)
	case NameOfferings:
		return s.Offerings(lang)
	case NameWhyUs:
		return s.WhyUs(lang)
	case NameContact:
		return s.Contact(lang)
	case NameSEO:
		return s.SEO(lang)
	}
	return s.Rows(sec, lang)
}

// Page assembles the home page for lang.
func (s *Site) Page(lang i18n.Language) Page {
	return Page{
		Language:     lang,
		Copy:         s.copy.Table(lang).Map(),
		Hero:         s.Hero(lang),
		Stats:        s.Stats(lang),
		Services:     s.Services(lang),
		Testimonials: s.Testimonials(lang),
		Cases:        s.Cases(lang),
		Offerings:    s.Offerings(lang),
		WhyUs:        s.WhyUs(lang),
		Contact:      s.Contact(lang),
		SEO:          s.SEO(lang),
	}
}

// Status reports every section collection, Copy last.
func (s *Site) Status() []Status {
	out := make([]Status, 0, len(s.sections)+1)
	for _, sec := range s.sections {
		st := s.watchers[sec.Name].State()
		out = append(out, Status{
			Section:       sec.Name,
			Collection:    sec.Collection,
			Loading:       st.Loading,
			Error:         st.Error,
			Rows:          len(st.Data),
			UsingDefaults: len(st.Data) == 0,
		})
	}
	cs := s.copy.State()
	out = append(out, Status{
		Section:       "copy",
		Collection:    content.CollectionCopy,
		Loading:       cs.Loading,
		Error:         cs.Error,
		Rows:          len(cs.Data),
		UsingDefaults: len(cs.Data) == 0,
	})
	return out
}

// Loading reports whether any collection is still fetching.
func (s *Site) Loading() bool {
	for _, st := range s.Status() {
		if st.Loading {
			return true
		}
	}
	return false
}

// Refresh re-fetches every collection. The returned channel closes once all
// of them have settled.
func (s *Site) Refresh() <-chan struct{} {
	waits := make([]<-chan struct{}, 0, len(s.watchers)+1)
	for _, sec := range s.sections {
		if ch := s.watchers[sec.Name].Refresh(); ch != nil {
			waits = append(waits, ch)
		}
	}
	if ch := s.copy.Refresh(); ch != nil {
		waits = append(waits, ch)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, ch := range waits {
			<-ch
		}
	}()
	return done
}

// Close stops every watcher.
func (s *Site) Close() {
	for _, w := range s.watchers {
		w.Close()
	}
	s.copy.Close()
}
