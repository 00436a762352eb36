package httpclient

import (
	"net/http"
	"time"
)

const appVersion = "1.0"

// DefaultHeaders returns headers applied to all outbound HTTP requests.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent": "Arena Stats Service/V" + appVersion,
		"Accept":     "application/json",
	}
}

// ApplyDefaultHeaders applies the default headers to the given HTTP request.
// Headers already present are not overwritten.
func ApplyDefaultHeaders(req *http.Request) {
	for key, value := range DefaultHeaders() {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
}

// TunedTransport returns an HTTP transport configured for long-running API polling.
func TunedTransport() *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
}
