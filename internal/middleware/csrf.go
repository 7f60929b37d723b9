package middleware

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"net/url"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for cross-origin protection.
// filippo.io/csrf/gorilla checks Fetch metadata and Origin headers; the key
// only satisfies the gorilla-compatible API.
type CSRFConfig struct {
	AuthKey []byte

	// TrustedOrigins are host[:port] values allowed to send unsafe requests.
	TrustedOrigins []string

	ErrorHandler http.Handler
}

// DefaultCSRFConfig trusts the hosts of allowedOrigins, which are full
// origins such as https://auxility.com. Development also trusts the local
// dev server.
func DefaultCSRFConfig(allowedOrigins []string, isDev bool) CSRFConfig {
	cfg := CSRFConfig{AuthKey: make([]byte, 32)}
	_, _ = rand.Read(cfg.AuthKey)

	for _, origin := range allowedOrigins {
		if host := originHost(origin); host != "" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, host)
		}
	}
	if isDev {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, "localhost:8080", "127.0.0.1:8080", "localhost:5173")
	}
	return cfg
}

// originHost returns the host[:port] part of an origin, the form the csrf
// library expects.
func originHost(origin string) string {
	if origin == "*" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

// CSRF rejects cross-origin unsafe requests from untrusted origins.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler))}
	if cfg.ErrorHandler != nil {
		opts[0] = csrf.ErrorHandler(cfg.ErrorHandler)
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("cross-origin request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	writeJSONError(w, http.StatusForbidden, "cross-origin request rejected")
}
