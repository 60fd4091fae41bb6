// Package http builds the outbound HTTP client used for third-party APIs.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client with explicit dial, TLS and overall timeouts.
// http.DefaultClient has no timeout, so outbound calls always go through this.
// When userAgent is non-empty it is set on every request that lacks one.
func NewHTTPClient(timeout time.Duration, userAgent string) *http.Client {
	var t http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	if userAgent != "" {
		t = &userAgentTransport{next: t, userAgent: userAgent}
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", u.userAgent)
	return u.next.RoundTrip(clone)
}
