package middleware

import (
	"net/http"
	"strings"

	"school-cms/pkg/security/csp"
)

// SecurityHeadersConfig selects the CSP for each request path.
type SecurityHeadersConfig struct {
	Enabled bool
	// Default applies when no entry of Paths matches.
	Default *csp.Policy
	// Paths maps a path prefix to its policy; the longest prefix wins.
	Paths map[string]*csp.Policy
	// ReportOnly sends every policy as Content-Security-Policy-Report-Only.
	ReportOnly bool
}

// DefaultSecurityHeadersConfig locks down API responses and relaxes the
// policy for Swagger UI.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		Enabled: true,
		Default: csp.APIPolicy(),
		Paths: map[string]*csp.Policy{
			"/swagger/": csp.SwaggerUIPolicy(),
		},
	}
}

type renderedPolicy struct {
	prefix string
	header string
	value  string
}

// SecurityHeaders sets Content-Security-Policy, X-Content-Type-Options and
// Referrer-Policy on every response. Policies are rendered once.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	render := func(prefix string, p *csp.Policy) renderedPolicy {
		if cfg.ReportOnly {
			p = p.ReportOnly()
		}
		return renderedPolicy{prefix: prefix, header: p.HeaderName(), value: p.String()}
	}

	var def *renderedPolicy
	if cfg.Default != nil {
		rp := render("", cfg.Default)
		def = &rp
	}
	paths := make([]renderedPolicy, 0, len(cfg.Paths))
	for prefix, p := range cfg.Paths {
		if p != nil {
			paths = append(paths, render(prefix, p))
		}
	}

	selectPolicy := func(path string) *renderedPolicy {
		var best *renderedPolicy
		for i := range paths {
			if strings.HasPrefix(path, paths[i].prefix) && (best == nil || len(paths[i].prefix) > len(best.prefix)) {
				best = &paths[i]
			}
		}
		if best != nil {
			return best
		}
		return def
	}

	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			if p := selectPolicy(r.URL.Path); p != nil && p.value != "" {
				h.Set(p.header, p.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
