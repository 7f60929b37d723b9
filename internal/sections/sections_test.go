// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sections

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/copytext"
	"github.com/auxility/site/internal/i18n"
)

func ids(rows []content.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["id"]
	}
	return out
}

func TestSortByOrder(t *testing.T) {
	tests := []struct {
		name string
		rows []content.Row
		want []string
	}{
		{
			name: "missing order goes last",
			rows: []content.Row{{"id": "a", "order": "2"}, {"id": "b", "order": "1"}, {"id": "c"}},
			want: []string{"b", "a", "c"},
		},
		{
			name: "ties keep source order",
			rows: []content.Row{{"id": "a", "order": "1"}, {"id": "b", "order": "1"}, {"id": "c", "order": "0"}},
			want: []string{"c", "a", "b"},
		},
		{
			name: "non-numeric order is zero",
			rows: []content.Row{{"id": "a", "order": "1"}, {"id": "b", "order": "x"}},
			want: []string{"b", "a"},
		},
		{
			name: "non-numeric order sorts ahead of missing order",
			rows: []content.Row{{"id": "a"}, {"id": "b", "order": "2"}, {"id": "c", "order": "soon"}},
			want: []string{"c", "b", "a"},
		},
		{
			name: "no orders keeps insertion order",
			rows: []content.Row{{"id": "z"}, {"id": "y"}, {"id": "x"}},
			want: []string{"z", "y", "x"},
		},
		{
			name: "numeric not lexical",
			rows: []content.Row{{"id": "ten", "order": "10"}, {"id": "two", "order": "2"}},
			want: []string{"two", "ten"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]content.Row, len(tt.rows))
			copy(in, tt.rows)
			assert.Equal(t, tt.want, ids(SortByOrder(tt.rows)))
			assert.Equal(t, ids(in), ids(tt.rows), "input must not be reordered")
		})
	}
}

func TestFilterActive(t *testing.T) {
	rows := []content.Row{
		{"id": "a", "active": "TRUE"},
		{"id": "b", "active": "FALSE"},
		{"id": "c", "active": "1"},
		{"id": "d"},
		{"id": "e", "active": "true"},
	}
	assert.Equal(t, []string{"a", "c", "e"}, ids(FilterActive(rows)))
}

func TestWithDefaults(t *testing.T) {
	defaults := []content.Row{{"id": "d"}}

	got := WithDefaults(nil, defaults)
	require.Len(t, got, 1)
	got[0]["id"] = "mutated"
	assert.Equal(t, "d", defaults[0]["id"], "defaults must be copied")

	assert.Equal(t, []string{"r"}, ids(WithDefaults([]content.Row{{"id": "r"}}, defaults)))
}

func TestLocalize(t *testing.T) {
	row := content.Row{"title": "Default", "title_ru": "Заголовок", "description": "Desc", "icon": "Globe"}

	ru := Localize(row, i18n.Russian, []string{"title", "description"})
	assert.Equal(t, "Заголовок", ru["title"])
	assert.Equal(t, "Desc", ru["description"])
	assert.Equal(t, "Globe", ru["icon"])

	kk := Localize(row, i18n.Kazakh, []string{"title"})
	assert.Equal(t, "Default", kk["title"])

	assert.Equal(t, "Default", row["title"], "input must not change")
}

func TestCompose(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		rows := Offerings.Compose(nil, i18n.English)
		require.Len(t, rows, len(defaultOfferings))
		assert.Equal(t, "web", rows[0]["id"])
	})

	t.Run("remote rows replace defaults entirely", func(t *testing.T) {
		rows := Offerings.Compose([]content.Row{{"id": "only", "title": "Only"}}, i18n.English)
		assert.Equal(t, []string{"only"}, ids(rows))
	})

	t.Run("testimonials drop inactive rows", func(t *testing.T) {
		rows := Testimonials.Compose([]content.Row{
			{"id": "1", "quote": "q1", "active": "TRUE"},
			{"id": "2", "quote": "q2", "active": "FALSE"},
		}, i18n.English)
		assert.Equal(t, []string{"1"}, ids(rows))
	})

	t.Run("default testimonials are active", func(t *testing.T) {
		assert.Len(t, Testimonials.Compose(nil, i18n.English), len(defaultTestimonials))
	})

	t.Run("incomplete remote row falls back to its own base value", func(t *testing.T) {
		rows := WhyUs.Compose([]content.Row{
			{"id": "x", "title": "Remote", "title_ru": "Удалённый", "description": "Only english"},
		}, i18n.Russian)
		require.Len(t, rows, 1)
		assert.Equal(t, "Удалённый", rows[0]["title"])
		assert.Equal(t, "Only english", rows[0]["description"])
	})

	t.Run("missing ids come from the title", func(t *testing.T) {
		rows := Cases.Compose([]content.Row{
			{"title": "Telemedicine Portal"},
			{"title": "Telemedicine Portal"},
			{"title": "Система ОРИТ"},
			{},
		}, i18n.English)
		require.Len(t, rows, 4)
		assert.Equal(t, "telemedicine-portal", rows[0]["id"])
		assert.Equal(t, "telemedicine-portal-2", rows[1]["id"])
		assert.NotEmpty(t, rows[2]["id"])
		assert.Equal(t, "item", rows[3]["id"])
	})
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"hero", "Hero", " whyus ", "WhyUs", "SEO"} {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := Lookup("Copy")
	assert.False(t, ok)
}

func TestViews(t *testing.T) {
	hero := HeroFrom(Hero.Compose(nil, i18n.English))
	assert.Equal(t, "Powered by Innovation, Committed to Efficiency", hero.Title)
	assert.Equal(t, "Start Your Project", hero.Primary.Text)
	require.Len(t, hero.Stats, 3)
	assert.Equal(t, StatView{Value: "98%", Label: "Client Satisfaction"}, hero.Stats[1])

	assert.Empty(t, HeroFrom(nil).Stats)

	services := ServicesFrom(Services.Compose(nil, i18n.English))
	require.Len(t, services, 2)
	assert.Len(t, services[0].Features, 4)

	cases := CasesFrom(Cases.Compose(nil, i18n.English))
	require.Len(t, cases, 4)
	assert.Equal(t, []string{"React Native", "Microservices", "Security"}, cases[1].Tags)

	contact := FieldsFrom(Contact.Compose(nil, i18n.English))
	assert.Equal(t, "hello@auxility.ca", contact["email"])
}

func TestSEOFrom(t *testing.T) {
	info := SEOFrom(nil, "Software for FinTech", "desc")
	assert.Equal(t, "Software for FinTech | Auxility", info.Title)
	assert.Equal(t, "desc", info.Description)

	info = SEOFrom([]content.Row{{"field": "title", "value": "Remote"}, {"field": "site_name", "value": "Aux"}}, "ignored", "")
	assert.Equal(t, "Remote | Aux", info.Title)

	info = SEOFrom(nil, "", "")
	assert.Equal(t, "Auxility", info.Title)
}

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))

	html := RenderMarkdown("# Result\n\n**40%** faster <script>alert(1)</script>")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>40%</strong>")
	assert.NotContains(t, html, "<script>")
}

func newTestSite(t *testing.T, handler http.HandlerFunc) *Site {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := content.NewClient(content.ClientOptions{BaseURL: srv.URL, Logger: logger})
	site := NewSite(client, copytext.MustLoadDefaults(), logger)
	t.Cleanup(site.Close)

	deadline := time.Now().Add(2 * time.Second)
	for site.Loading() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.False(t, site.Loading(), "site did not settle")
	return site
}

func TestSite(t *testing.T) {
	site := newTestSite(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("path") {
		case "/api/Hero":
			assert.Equal(t, "main", r.URL.Query().Get("field"))
			_, _ = io.WriteString(w, `{"rows":[{"field":"main","title":"Remote hero","title_ru":"Удалённый герой"}]}`)
		case "/api/Stats":
			_, _ = io.WriteString(w, `[{"id":"a","value":"1","label":"A","order":"2"},{"id":"b","value":"2","label":"B","order":1},{"id":"c","value":"3","label":"C"}]`)
		case "/api/Testimonials":
			_, _ = io.WriteString(w, `{"error":"Sheet not found"}`)
		default:
			_, _ = io.WriteString(w, `{"rows":[]}`)
		}
	})

	assert.Equal(t, "Удалённый герой", site.Hero(i18n.Russian).Title)
	assert.Equal(t, "Remote hero", site.Hero(i18n.Kazakh).Title)

	stats := site.Stats(i18n.English)
	require.Len(t, stats, 3)
	assert.Equal(t, "b", stats[0].ID)
	assert.Equal(t, "a", stats[1].ID)
	assert.Equal(t, "c", stats[2].ID)

	assert.Len(t, site.Testimonials(i18n.English), len(defaultTestimonials), "failed fetch serves defaults")

	page := site.Page(i18n.Russian)
	assert.Equal(t, i18n.Russian, page.Language)
	assert.Equal(t, "Кейсы", page.Copy["nav_cases"])
	assert.Len(t, page.Cases, len(defaultCases))

	var failed *Status
	statuses := site.Status()
	for i := range statuses {
		if statuses[i].Collection == content.CollectionTestimonials {
			failed = &statuses[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "Sheet not found", failed.Error)
	assert.True(t, failed.UsingDefaults)
	assert.Equal(t, "copy", statuses[len(statuses)-1].Section)

	select {
	case <-site.Refresh():
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not settle")
	}
}

func TestSite_SectionDispatch(t *testing.T) {
	site := newTestSite(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	for _, sec := range All() {
		v := site.Section(sec, i18n.English)
		assert.NotNil(t, v, sec.Name)
	}
	seo := site.SEO(i18n.English)
	assert.True(t, strings.HasSuffix(seo.Title, "| Auxility"), seo.Title)
}
