package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:54321",
			expected:   "203.0.113.7",
		},
		{
			name:       "forwarded-for takes precedence",
			remoteAddr: "10.0.0.1:443",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4"},
			expected:   "198.51.100.4",
		},
		{
			name:       "forwarded-for chain uses first entry",
			remoteAddr: "10.0.0.1:443",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.2, 10.0.0.3"},
			expected:   "198.51.100.4",
		},
		{
			name:       "real-ip fallback",
			remoteAddr: "10.0.0.1:443",
			headers:    map[string]string{"X-Real-IP": "192.0.2.9"},
			expected:   "192.0.2.9",
		},
		{
			name:       "ipv6 loopback normalized",
			remoteAddr: "[::1]:8080",
			expected:   "127.0.0.1",
		},
		{
			name:       "missing port returned as-is",
			remoteAddr: "192.0.2.1",
			expected:   "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, FromRequest(r))
		})
	}
}
