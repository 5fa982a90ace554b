package clientip

import (
	"net"
	"net/http"
	"strings"
)

// forwarded headers checked in order of preference
var headers = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
}

// FromRequest extracts the origin address of a request. A forwarded-for
// header takes precedence over the transport-level peer address, so the
// value is spoofable when the service is exposed without a trusted proxy.
func FromRequest(r *http.Request) string {
	for _, header := range headers {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For can carry a comma-separated chain, the first
		// entry is the original client.
		if idx := strings.IndexByte(value, ','); idx != -1 {
			value = value[:idx]
		}
		if ip := strings.TrimSpace(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if host == "::1" {
		return "127.0.0.1"
	}
	return host
}
