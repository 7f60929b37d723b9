package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auxility/site/internal/i18n"
)

func serveLanguage(t *testing.T, req *http.Request) (i18n.Language, *httptest.ResponseRecorder) {
	t.Helper()
	var got i18n.Language
	handler := Language(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, err := i18n.LanguageFromContext(r.Context())
		require.NoError(t, err)
		got = lang
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return got, rec
}

func languageCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == i18n.StorageKey {
			return c
		}
	}
	return nil
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		cookie     string
		accept     string
		want       i18n.Language
		wantCookie string
	}{
		{name: "default", target: "/", want: i18n.English},
		{name: "cookie", target: "/", cookie: "kk", want: i18n.Kazakh},
		{name: "invalid cookie", target: "/", cookie: "de", want: i18n.English},
		{name: "query switch persists", target: "/?lang=ru", want: i18n.Russian, wantCookie: "ru"},
		{name: "query beats cookie", target: "/?lang=KK", cookie: "ru", want: i18n.Kazakh, wantCookie: "kk"},
		{name: "invalid query ignored", target: "/?lang=fr", cookie: "ru", want: i18n.Russian},
		{name: "accept-language never overrides", target: "/", accept: "ru-RU,ru;q=0.9", want: i18n.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: i18n.StorageKey, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			got, rec := serveLanguage(t, req)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), rec.Header().Get("Content-Language"))

			c := languageCookie(rec)
			if tt.wantCookie == "" {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			assert.Equal(t, tt.wantCookie, c.Value)
			assert.Equal(t, 365*24*60*60, c.MaxAge)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.True(t, c.HttpOnly)
		})
	}
}

func TestLanguage_SuggestedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "kk-KZ,kk;q=0.9,en;q=0.5")
	_, rec := serveLanguage(t, req)
	assert.Equal(t, "kk", rec.Header().Get(SuggestedLanguageHeader))

	_, rec = serveLanguage(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Header().Get(SuggestedLanguageHeader))
}

func TestLanguage_HandlerCanSwitch(t *testing.T) {
	handler := Language(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := i18n.MustFromContext(r.Context())
		res := state.SetLanguage(r.Context(), i18n.Russian)
		assert.True(t, res.OK())
		assert.Equal(t, i18n.Russian, state.Language())
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/language", nil))

	c := languageCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, "ru", c.Value)
}

func TestLanguageFromContext_OutsideProvider(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := i18n.LanguageFromContext(req.Context())
	assert.ErrorIs(t, err, i18n.ErrNoLanguageState)
}

func TestCookieStore(t *testing.T) {
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	store := NewCookieStore(rec, req)

	v, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Save(ctx, "kk"))
	c := languageCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, "kk", c.Value)
	assert.False(t, c.Secure)

	req.AddCookie(&http.Cookie{Name: i18n.StorageKey, Value: "ru"})
	v, err = NewCookieStore(httptest.NewRecorder(), req).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ru", v)
}
