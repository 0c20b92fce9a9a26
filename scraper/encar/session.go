package encar

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoCookies means no usable cookie bundle is available. The cycle has
// nothing to do without one; the next cycle re-reads the file.
var ErrNoCookies = errors.New("no usable cookie bundle")

// Cookie is one browser cookie descriptor from the capture file.
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
	Secure bool   `json:"secure"`
}

// CookieBundle is the credential input produced by the external browser
// capture step: a timestamp, the session cookies and a header snapshot
// (user-agent, referer).
type CookieBundle struct {
	SavedAt float64           `json:"saved_at"`
	Cookies []Cookie          `json:"cookies"`
	Headers map[string]string `json:"headers"`
}

// LoadCookieBundle reads the capture file. A missing or malformed file, or
// one with an empty cookie list, yields ErrNoCookies.
func LoadCookieBundle(path string) (*CookieBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNoCookies, path, err)
	}

	var bundle CookieBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrNoCookies, path, err)
	}
	if len(bundle.Cookies) == 0 {
		return nil, fmt.Errorf("%w: %s has no cookies", ErrNoCookies, path)
	}

	return &bundle, nil
}

// NewSession builds an authenticated HTTP client from the bundle: captured
// cookies and headers applied, proxy environment ignored, fixed timeout.
func NewSession(bundle *CookieBundle, timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.RemoveProxy()

	for name, value := range bundle.Headers {
		client.SetHeader(name, value)
	}

	for _, c := range bundle.Cookies {
		if c.Name == "" {
			continue
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		client.SetCookie(&http.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   path,
			Secure: c.Secure,
		})
	}

	return client
}
