package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		addr    string
		want    string
		wantErr bool
	}{
		{"192.168.1.1:54321", "192.168.1.1", false},
		{"[2001:db8::1]:8080", "2001:db8::1", false},
		{"127.0.0.1", "127.0.0.1", false},
		{"not-an-address", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.addr

			got, err := (&RemoteAddrExtractor{}).ExtractIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	cfg, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.168.1.1 ", "", "2001:db8::/32"})
	require.NoError(t, err)
	require.Len(t, cfg.AllowedCIDRs, 3)
	assert.Equal(t, 32, cfg.AllowedCIDRs[1].Bits())

	assert.True(t, cfg.IsTrusted("10.1.2.3:80"))
	assert.True(t, cfg.IsTrusted("192.168.1.1:80"))
	assert.False(t, cfg.IsTrusted("192.168.1.2:80"))

	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)
}

func TestTrustedProxyExtractor(t *testing.T) {
	cfg, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	e := NewTrustedProxyExtractor(cfg)

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"trusted proxy with XFF", "10.0.0.5:443", "203.0.113.7, 10.0.0.5", "", "203.0.113.7"},
		{"trusted proxy with X-Real-IP", "10.0.0.5:443", "", "198.51.100.2", "198.51.100.2"},
		{"trusted proxy without headers", "10.0.0.5:443", "", "", "10.0.0.5"},
		{"untrusted peer spoofing XFF", "203.0.113.9:5000", "1.2.3.4", "", "203.0.113.9"},
		{"garbage XFF falls through", "10.0.0.5:443", "unknown", "", "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/contact", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			got, err := e.ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
