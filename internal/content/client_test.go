// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAPI serves body for every request and counts calls.
func newTestAPI(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_CollectionURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		coll     string
		filter   Filter
		expected string
	}{
		{"plain", "https://script.example.com/exec", "Hero", nil,
			"https://script.example.com/exec?path=/api/Hero"},
		{"filter", "https://script.example.com/exec", "Hero", Filter{"field": "main"},
			"https://script.example.com/exec?path=/api/Hero&field=main"},
		{"filter keys sorted and escaped", "https://x/exec", "Copy", Filter{"lang": "ru", "key": "a b"},
			"https://x/exec?path=/api/Copy&key=a+b&lang=ru"},
		{"base with query", "https://x/exec?v=2", "Stats", nil,
			"https://x/exec?v=2&path=/api/Stats"},
		{"name with query metacharacters", "https://x/exec", "Q&A=1+2", nil,
			"https://x/exec?path=/api/Q%26A%3D1%2B2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(ClientOptions{BaseURL: tt.base})
			assert.Equal(t, tt.expected, c.CollectionURL(tt.coll, tt.filter))
		})
	}
}

func TestClient_ItemURL(t *testing.T) {
	c := NewClient(ClientOptions{BaseURL: "https://x/exec"})
	assert.Equal(t, "https://x/exec?path=/api/Cases/halyk", c.ItemURL("Cases", "halyk"))
	assert.Equal(t, "https://x/exec?path=/api/Cases/a%26b%3Dc%2Bd", c.ItemURL("Cases", "a&b=c+d"))

	u, err := url.Parse(c.ItemURL("Cases", "a&b=c+d"))
	require.NoError(t, err)
	assert.Equal(t, "/api/Cases/a&b=c+d", u.Query().Get("path"))
	assert.Len(t, u.Query(), 1)
}

func TestClient_Collection_ResponseShapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []Row
	}{
		{"rows envelope", `{"rows":[{"id":"1","title":"A"},{"id":"2","title":"B"}]}`,
			[]Row{{"id": "1", "title": "A"}, {"id": "2", "title": "B"}}},
		{"bare array", `[{"id":"1"}]`, []Row{{"id": "1"}}},
		{"single object", `{"field":"main","title":"Hello"}`, []Row{{"field": "main", "title": "Hello"}}},
		{"empty rows", `{"rows":[]}`, []Row{}},
		{"scalars coerced", `[{"order":2,"active":true,"price":1.50,"note":null,"tags":["a"]}]`,
			[]Row{{"order": "2", "active": "TRUE", "price": "1.50", "tags": `["a"]`}}},
		{"non-object items skipped", `[{"id":"1"}, "junk", 3]`, []Row{{"id": "1"}}},
		{"falsy error ignored", `{"error":"","rows":[{"id":"1"}]}`, []Row{{"id": "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestAPI(t, http.StatusOK, tt.body)
			c := NewClient(ClientOptions{BaseURL: srv.URL, Logger: testLogger()})

			rows, err := c.Collection(context.Background(), "Services", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rows)
		})
	}
}

func TestClient_Collection_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		check   func(t *testing.T, err error)
	}{
		{"remote error", http.StatusOK, `{"error":"Sheet not found: Nope"}`, "Sheet not found: Nope",
			func(t *testing.T, err error) {
				var re *RemoteError
				assert.True(t, errors.As(err, &re))
			}},
		{"remote error on 4xx", http.StatusBadRequest, `{"error":"bad"}`, "failed to fetch data: Bad Request",
			func(t *testing.T, err error) {
				var he *HTTPError
				require.True(t, errors.As(err, &he))
				assert.Equal(t, http.StatusBadRequest, he.StatusCode)
			}},
		{"server error", http.StatusInternalServerError, `oops`, "failed to fetch data: Internal Server Error", nil},
		{"malformed json", http.StatusOK, `{"rows": [`, "", nil},
		{"scalar body", http.StatusOK, `42`, "unexpected response shape json.Number", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestAPI(t, tt.status, tt.body)
			c := NewClient(ClientOptions{BaseURL: srv.URL, Logger: testLogger()})

			rows, err := c.Collection(context.Background(), "Hero", nil)
			require.Error(t, err)
			assert.Nil(t, rows)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(ClientOptions{BaseURL: "  "})
	assert.False(t, c.Configured())

	_, err := c.Collection(context.Background(), "Hero", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.Item(context.Background(), "Cases", "1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.Write(context.Background(), "Contacts", map[string]string{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_RequestShape(t *testing.T) {
	var gotPath, gotField, gotMethod, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Query().Get("path")
		gotField = r.URL.Query().Get("field")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := c.Collection(context.Background(), "Hero", Filter{"field": "main"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/api/Hero", gotPath)
	assert.Equal(t, "main", gotField)
	assert.Empty(t, gotContentType, "GET must not carry a Content-Type header")
}

func TestClient_Item(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		srv, _ := newTestAPI(t, http.StatusOK, `{"id":"halyk","title":"Halyk"}`)
		c := NewClient(ClientOptions{BaseURL: srv.URL})
		row, err := c.Item(context.Background(), "Cases", "halyk")
		require.NoError(t, err)
		assert.Equal(t, Row{"id": "halyk", "title": "Halyk"}, row)
	})

	t.Run("empty array", func(t *testing.T) {
		srv, _ := newTestAPI(t, http.StatusOK, `[]`)
		c := NewClient(ClientOptions{BaseURL: srv.URL})
		row, err := c.Item(context.Background(), "Cases", "missing")
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("empty id short-circuits", func(t *testing.T) {
		srv, calls := newTestAPI(t, http.StatusOK, `{}`)
		c := NewClient(ClientOptions{BaseURL: srv.URL})
		_, err := c.Item(context.Background(), "Cases", "")
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Zero(t, calls.Load())
	})
}

func TestClient_Write(t *testing.T) {
	t.Run("posts json", func(t *testing.T) {
		var got map[string]string
		var method, path, contentType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			path = r.URL.Query().Get("path")
			contentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = io.WriteString(w, `{"success":true}`)
		}))
		defer srv.Close()

		c := NewClient(ClientOptions{BaseURL: srv.URL})
		res, err := c.Write(context.Background(), "Contacts", map[string]string{"name": "Aigerim"})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.False(t, res.Opaque)
		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "/api/Contacts", path)
		assert.Equal(t, "application/json", contentType)
		assert.Equal(t, "Aigerim", got["name"])
	})

	t.Run("unreadable body is optimistic success", func(t *testing.T) {
		srv, _ := newTestAPI(t, http.StatusOK, `<html>Moved</html>`)
		c := NewClient(ClientOptions{BaseURL: srv.URL})
		res, err := c.Write(context.Background(), "Contacts", struct{}{})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.True(t, res.Opaque)
	})

	t.Run("remote error", func(t *testing.T) {
		srv, _ := newTestAPI(t, http.StatusOK, `{"success":false,"error":"quota"}`)
		c := NewClient(ClientOptions{BaseURL: srv.URL})
		_, err := c.Write(context.Background(), "Contacts", struct{}{})
		var re *RemoteError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, "quota", re.Message)
	})

	t.Run("http error", func(t *testing.T) {
		srv, _ := newTestAPI(t, http.StatusBadGateway, ``)
		c := NewClient(ClientOptions{BaseURL: srv.URL})
		_, err := c.Write(context.Background(), "Contacts", struct{}{})
		var he *HTTPError
		require.True(t, errors.As(err, &he))
		assert.Equal(t, http.StatusBadGateway, he.StatusCode)
	})
}
