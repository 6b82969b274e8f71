// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Policy is an ordered set of CSP directives. Directives are emitted in the
// order they were first set. Policy is not safe for concurrent mutation;
// build it once at startup.
type Policy struct {
	order      []string
	directives map[string][]string
	reportOnly bool
}

// New returns an empty policy.
func New() *Policy {
	return &Policy{directives: make(map[string][]string)}
}

// Set replaces the sources of a directive. A directive with no sources is
// emitted bare (e.g. "upgrade-insecure-requests").
func (p *Policy) Set(directive string, sources ...string) *Policy {
	directive = strings.ToLower(strings.TrimSpace(directive))
	if directive == "" {
		return p
	}
	if _, ok := p.directives[directive]; !ok {
		p.order = append(p.order, directive)
	}
	p.directives[directive] = sources
	return p
}

func (p *Policy) DefaultSrc(sources ...string) *Policy { return p.Set("default-src", sources...) }
func (p *Policy) ScriptSrc(sources ...string) *Policy  { return p.Set("script-src", sources...) }
func (p *Policy) StyleSrc(sources ...string) *Policy   { return p.Set("style-src", sources...) }
func (p *Policy) ImgSrc(sources ...string) *Policy     { return p.Set("img-src", sources...) }
func (p *Policy) FontSrc(sources ...string) *Policy    { return p.Set("font-src", sources...) }
func (p *Policy) ConnectSrc(sources ...string) *Policy { return p.Set("connect-src", sources...) }
func (p *Policy) ObjectSrc(sources ...string) *Policy  { return p.Set("object-src", sources...) }
func (p *Policy) BaseURI(sources ...string) *Policy    { return p.Set("base-uri", sources...) }
func (p *Policy) FormAction(sources ...string) *Policy { return p.Set("form-action", sources...) }

func (p *Policy) FrameAncestors(sources ...string) *Policy {
	return p.Set("frame-ancestors", sources...)
}

// ReportOnly returns a copy of the policy that is sent in report-only mode.
func (p *Policy) ReportOnly() *Policy {
	cp := &Policy{
		order:      append([]string(nil), p.order...),
		directives: make(map[string][]string, len(p.directives)),
		reportOnly: true,
	}
	for k, v := range p.directives {
		cp.directives[k] = v
	}
	return cp
}

// HeaderName is the response header the policy belongs in.
func (p *Policy) HeaderName() string {
	if p.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// String renders the header value, e.g. "default-src 'none'; frame-ancestors 'none'".
func (p *Policy) String() string {
	parts := make([]string, 0, len(p.order))
	for _, d := range p.order {
		srcs := p.directives[d]
		if len(srcs) == 0 {
			parts = append(parts, d)
			continue
		}
		parts = append(parts, d+" "+strings.Join(srcs, " "))
	}
	return strings.Join(parts, "; ")
}

// APIPolicy is for JSON and feed responses: nothing may be loaded or framed.
func APIPolicy() *Policy {
	return New().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}

// SwaggerUIPolicy allows the inline bootstrap and assets Swagger UI needs.
func SwaggerUIPolicy() *Policy {
	return New().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		ObjectSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'self'")
}
