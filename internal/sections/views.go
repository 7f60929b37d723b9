// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sections

import (
	"bytes"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/auxility/site/internal/content"
)

// bodySanitizer cleans rendered case study bodies. Bodies come from the
// spreadsheet, so they are treated as user-generated content.
var bodySanitizer = bluemonday.UGCPolicy()

// Link is a call to action.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// HeroView is the top of the home page.
type HeroView struct {
	Badge     string     `json:"badge"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Primary   Link       `json:"primary"`
	Secondary Link       `json:"secondary"`
	Stats     []StatView `json:"stats"`
}

// StatView is one headline figure.
type StatView struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// ServiceView is one industry the consultancy serves.
type ServiceView struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Icon        string   `json:"icon,omitempty"`
}

// TestimonialView is one client quote.
type TestimonialView struct {
	ID      string `json:"id"`
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// CaseView is one case study.
type CaseView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Color       string   `json:"color"`
	ImageURL    string   `json:"image_url,omitempty"`
	BodyHTML    string   `json:"body_html,omitempty"`
}

// CardView is a titled card with an icon, used by Offerings and WhyUs.
type CardView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// OfferingView is one offered service line.
type OfferingView = CardView

// WhyUsView is one reason to choose the consultancy.
type WhyUsView = CardView

// ContactInfo maps contact fields (email, phone, address) to values.
type ContactInfo map[string]string

// SEOInfo holds page metadata.
type SEOInfo struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	SiteName    string            `json:"site_name"`
	Image       string            `json:"image"`
	URL         string            `json:"url,omitempty"`
	Fields      map[string]string `json:"fields"`
}

// HeroFrom builds the hero from the first composed row.
func HeroFrom(rows []content.Row) HeroView {
	if len(rows) == 0 {
		return HeroView{Stats: []StatView{}}
	}
	r := rows[0]
	h := HeroView{
		Badge:     r.Get("badge_text"),
		Title:     r.Get("title"),
		Subtitle:  r.Get("subtitle"),
		Primary:   Link{Text: r.Get("cta_primary_text"), Href: r.Get("cta_primary_link")},
		Secondary: Link{Text: r.Get("cta_secondary_text"), Href: r.Get("cta_secondary_link")},
		Stats:     make([]StatView, 0, 3),
	}
	for i := 1; i <= 3; i++ {
		n := strconv.Itoa(i)
		v, l := r.Get("stats_value_"+n), r.Get("stats_label_"+n)
		if v == "" && l == "" {
			continue
		}
		h.Stats = append(h.Stats, StatView{Value: v, Label: l})
	}
	return h
}

// StatsFrom builds stat views from composed rows.
func StatsFrom(rows []content.Row) []StatView {
	out := make([]StatView, 0, len(rows))
	for _, r := range rows {
		out = append(out, StatView{ID: r.Get("id"), Value: r.Get("value"), Label: r.Get("label"), Icon: r.Get("icon")})
	}
	return out
}

// ServicesFrom builds service views with up to four features each.
func ServicesFrom(rows []content.Row) []ServiceView {
	out := make([]ServiceView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ServiceView{
			ID:          r.Get("id"),
			Category:    r.Get("category"),
			Title:       r.Get("title"),
			Description: r.Get("description"),
			Features:    numbered(r, "feature_", 4),
			Icon:        r.Get("icon"),
		})
	}
	return out
}

// TestimonialsFrom builds testimonial views from composed rows.
func TestimonialsFrom(rows []content.Row) []TestimonialView {
	out := make([]TestimonialView, 0, len(rows))
	for _, r := range rows {
		out = append(out, TestimonialView{
			ID:      r.Get("id"),
			Quote:   r.Get("quote"),
			Author:  r.Get("author"),
			Role:    r.Get("role"),
			Company: r.Get("company"),
		})
	}
	return out
}

// CasesFrom builds case views. Markdown bodies are rendered to sanitised HTML.
func CasesFrom(rows []content.Row) []CaseView {
	out := make([]CaseView, 0, len(rows))
	for _, r := range rows {
		out = append(out, CaseView{
			ID:          r.Get("id"),
			Title:       r.Get("title"),
			Category:    r.Get("category"),
			Description: r.Get("description"),
			Tags:        numbered(r, "tag_", 4),
			Color:       r.Get("color"),
			ImageURL:    r.Get("image_url"),
			BodyHTML:    RenderMarkdown(r.Get("body")),
		})
	}
	return out
}

// CardsFrom builds the card views shared by offerings and why-us reasons.
func CardsFrom(rows []content.Row) []CardView {
	out := make([]CardView, 0, len(rows))
	for _, r := range rows {
		out = append(out, CardView{
			ID:          r.Get("id"),
			Title:       r.Get("title"),
			Description: r.Get("description"),
			Icon:        r.Get("icon"),
		})
	}
	return out
}

// FieldsFrom collapses field/value rows into a map. Later rows win.
func FieldsFrom(rows []content.Row) map[string]string {
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		if f := r.Get("field"); f != "" {
			out[f] = r.Get("value")
		}
	}
	return out
}

// SEOFrom builds page metadata. title and description are used when the SEO
// collection has no title or description field.
func SEOFrom(rows []content.Row, title, description string) SEOInfo {
	fields := FieldsFrom(rows)
	info := SEOInfo{
		Title:       fields["title"],
		Description: fields["description"],
		SiteName:    fields["site_name"],
		Image:       fields["image"],
		URL:         fields["url"],
		Fields:      fields,
	}
	if info.SiteName == "" {
		info.SiteName = "Auxility"
	}
	if info.Title == "" {
		info.Title = title
	}
	if info.Description == "" {
		info.Description = description
	}
	if info.Title == "" {
		info.Title = info.SiteName
	} else if info.Title != info.SiteName {
		info.Title += " | " + info.SiteName
	}
	return info
}

// RenderMarkdown converts markdown to sanitised HTML. Blank input or a
// conversion failure yields "".
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return bodySanitizer.Sanitize(buf.String())
}

func numbered(r content.Row, prefix string, n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if v := r.Get(prefix + strconv.Itoa(i)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
