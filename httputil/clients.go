package httputil

import (
	"net"
	"net/http"
	"time"
)

// Clients holds the HTTP clients the browser talks to the API with.
type Clients struct {
	API     *http.Client // list and detail requests
	Suggest *http.Client // autocomplete, short-lived and frequently cancelled
}

func NewClients(timeout time.Duration) *Clients {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}

	suggestTimeout := timeout
	if suggestTimeout > 5*time.Second {
		suggestTimeout = 5 * time.Second
	}

	return &Clients{
		API:     &http.Client{Timeout: timeout, Transport: transport},
		Suggest: &http.Client{Timeout: suggestTimeout, Transport: transport},
	}
}
